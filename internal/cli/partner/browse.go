package partner

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zestro/zestro-go/internal/catalog"
	"github.com/zestro/zestro-go/internal/cli"
)

// browse exposes the public storefront, mostly useful for checking what
// customers see while out on delivery.
func newBrowseCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the public storefront",
	}
	cmd.AddCommand(newBrowseProductsCmd(rt), newBrowseCategoriesCmd(rt), newBrowseBannersCmd(rt))
	return cmd
}

func newBrowseProductsCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List storefront products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, limit := pagingFlags(cmd)
			result, err := cli.Unwrap(catalog.NewClient(rt.API).Products(cmd.Context(), page, limit))
			if err != nil {
				return err
			}
			if len(result.Data) == 0 {
				fmt.Println("No products.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tIN STOCK")
			for _, p := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", p.ID, p.Name, cli.Money(p.Price), p.InStock)
			}
			w.Flush()
			return nil
		},
	}
	addPagingFlags(cmd)
	return cmd
}

func newBrowseCategoriesCmd(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List active categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := cli.Unwrap(catalog.NewClient(rt.API).Categories(cmd.Context()))
			if err != nil {
				return err
			}
			for _, c := range *cats {
				fmt.Printf("%s  %s\n", c.ID, c.Name)
			}
			return nil
		},
	}
}

func newBrowseBannersCmd(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "banners",
		Short: "List active promotional banners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			banners, err := cli.Unwrap(catalog.NewClient(rt.API).Banners(cmd.Context()))
			if err != nil {
				return err
			}
			for _, b := range *banners {
				fmt.Printf("%s  %s\n", b.ID, b.Title)
			}
			return nil
		},
	}
}
