package admin

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zestro/zestro-go/internal/admin"
	"github.com/zestro/zestro-go/internal/cli"
)

func newContentCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Manage storefront content: categories, banners, events",
	}
	cmd.AddCommand(newCategoriesCmd(rt), newBannersCmd(rt), newEventsCmd(rt))
	return cmd
}

func newCategoriesCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage product categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cats, err := cli.Unwrap(admin.NewClient(rt.API).Categories(c.Context()))
			if err != nil {
				return err
			}
			for _, cat := range *cats {
				fmt.Printf("%s  %s  active=%t\n", cat.ID, cat.Name, cat.Active)
			}
			return nil
		},
	}

	var imageURL string
	var inactive bool
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cat, err := cli.Unwrap(admin.NewClient(rt.API).AddCategory(c.Context(), admin.CategoryInput{
				Name:     args[0],
				ImageURL: imageURL,
				Active:   !inactive,
			}))
			if err != nil {
				return err
			}
			fmt.Printf("Created category %s (%s).\n", cat.Name, cat.ID)
			return nil
		},
	}
	add.Flags().StringVar(&imageURL, "image-url", "", "Category image URL")
	add.Flags().BoolVar(&inactive, "inactive", false, "Create the category hidden from the storefront")

	del := &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if _, err := cli.Unwrap(admin.NewClient(rt.API).DeleteCategory(c.Context(), args[0])); err != nil {
				return err
			}
			fmt.Println("Category deleted.")
			return nil
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}

func newBannersCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banners",
		Short: "Manage promotional banners",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all banners",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			banners, err := cli.Unwrap(admin.NewClient(rt.API).Banners(c.Context()))
			if err != nil {
				return err
			}
			for _, b := range *banners {
				fmt.Printf("%s  %s  active=%t\n", b.ID, b.Title, b.Active)
			}
			return nil
		},
	}

	var imageURL, linkURL string
	var inactive bool
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a banner",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			b, err := cli.Unwrap(admin.NewClient(rt.API).AddBanner(c.Context(), admin.BannerInput{
				Title:    args[0],
				ImageURL: imageURL,
				LinkURL:  linkURL,
				Active:   !inactive,
			}))
			if err != nil {
				return err
			}
			fmt.Printf("Created banner %s (%s).\n", b.Title, b.ID)
			return nil
		},
	}
	add.Flags().StringVar(&imageURL, "image-url", "", "Banner image URL")
	add.Flags().StringVar(&linkURL, "link-url", "", "Banner target link")
	add.Flags().BoolVar(&inactive, "inactive", false, "Create the banner hidden from the storefront")

	del := &cobra.Command{
		Use:   "delete <banner-id>",
		Short: "Delete a banner",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if _, err := cli.Unwrap(admin.NewClient(rt.API).DeleteBanner(c.Context(), args[0])); err != nil {
				return err
			}
			fmt.Println("Banner deleted.")
			return nil
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}

func newEventsCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage promotional events",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			events, err := cli.Unwrap(admin.NewClient(rt.API).Events(c.Context()))
			if err != nil {
				return err
			}
			for _, e := range *events {
				fmt.Printf("%s  %s  %s -> %s  active=%t\n",
					e.ID, e.Title, e.StartsAt.Format("2006-01-02"), e.EndsAt.Format("2006-01-02"), e.Active)
			}
			return nil
		},
	}

	var starts, ends string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Schedule an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			startsAt, err := time.Parse("2006-01-02", starts)
			if err != nil {
				return fmt.Errorf("invalid --starts: %w", err)
			}
			endsAt, err := time.Parse("2006-01-02", ends)
			if err != nil {
				return fmt.Errorf("invalid --ends: %w", err)
			}
			e, err := cli.Unwrap(admin.NewClient(rt.API).AddEvent(c.Context(), admin.EventInput{
				Title:    args[0],
				StartsAt: startsAt,
				EndsAt:   endsAt,
				Active:   true,
			}))
			if err != nil {
				return err
			}
			fmt.Printf("Scheduled event %s (%s).\n", e.Title, e.ID)
			return nil
		},
	}
	add.Flags().StringVar(&starts, "starts", "", "Start date (YYYY-MM-DD)")
	add.Flags().StringVar(&ends, "ends", "", "End date (YYYY-MM-DD)")
	_ = add.MarkFlagRequired("starts")
	_ = add.MarkFlagRequired("ends")

	del := &cobra.Command{
		Use:   "delete <event-id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if _, err := cli.Unwrap(admin.NewClient(rt.API).DeleteEvent(c.Context(), args[0])); err != nil {
				return err
			}
			fmt.Println("Event deleted.")
			return nil
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}
