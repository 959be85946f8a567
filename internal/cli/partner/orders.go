package partner

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zestro/zestro-go/internal/api"
	"github.com/zestro/zestro-go/internal/cli"
	"github.com/zestro/zestro-go/internal/orders"
)

func newOrdersCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Browse and work delivery orders",
	}
	cmd.AddCommand(
		newOrderListCmd(rt, "available", "List orders open for acceptance", func(c *orders.Client, cmd *cobra.Command, page, limit int) api.Envelope[api.Page[orders.Order]] {
			return c.Available(cmd.Context(), page, limit)
		}),
		newOrderListCmd(rt, "active", "List your in-flight orders", func(c *orders.Client, cmd *cobra.Command, page, limit int) api.Envelope[api.Page[orders.Order]] {
			return c.Active(cmd.Context(), page, limit)
		}),
		newOrderListCmd(rt, "history", "List your completed deliveries", func(c *orders.Client, cmd *cobra.Command, page, limit int) api.Envelope[api.Page[orders.Order]] {
			return c.History(cmd.Context(), page, limit)
		}),
		newOrderShowCmd(rt),
		newOrderActionCmd(rt, "accept", "Accept an available order", func(c *orders.Client, cmd *cobra.Command, id string) api.Envelope[orders.ActionResult] {
			return c.Accept(cmd.Context(), id)
		}),
		newOrderActionCmd(rt, "pickup", "Start pickup; the vendor receives an OTP", func(c *orders.Client, cmd *cobra.Command, id string) api.Envelope[orders.ActionResult] {
			return c.InitiatePickup(cmd.Context(), id)
		}),
		newOrderOTPCmd(rt, "confirm-pickup", "Confirm pickup with the vendor's OTP", func(c *orders.Client, cmd *cobra.Command, id, otp string) api.Envelope[orders.ActionResult] {
			return c.VerifyPickupOTP(cmd.Context(), id, otp)
		}),
		newOrderActionCmd(rt, "deliver", "Start delivery; the customer receives an OTP", func(c *orders.Client, cmd *cobra.Command, id string) api.Envelope[orders.ActionResult] {
			return c.InitiateDelivery(cmd.Context(), id)
		}),
		newOrderOTPCmd(rt, "confirm-delivery", "Confirm delivery with the customer's OTP", func(c *orders.Client, cmd *cobra.Command, id, otp string) api.Envelope[orders.ActionResult] {
			return c.VerifyDeliveryOTP(cmd.Context(), id, otp)
		}),
	)
	return cmd
}

type orderLister func(c *orders.Client, cmd *cobra.Command, page, limit int) api.Envelope[api.Page[orders.Order]]

func newOrderListCmd(rt *cli.Runtime, use, short string, list orderLister) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, limit := pagingFlags(cmd)
			result, err := cli.Unwrap(list(orders.NewClient(rt.API), cmd, page, limit))
			if err != nil {
				return err
			}
			printOrderTable(*result)
			return nil
		},
	}
	addPagingFlags(cmd)
	return cmd
}

func printOrderTable(page api.Page[orders.Order]) {
	if len(page.Data) == 0 {
		fmt.Println("No orders.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tVENDOR\tDROP\tFEE")
	for _, o := range page.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			o.ID, o.Status, o.VendorName, o.DropAddress, cli.Money(o.DeliveryFee))
	}
	w.Flush()
	fmt.Printf("Page %d, %d total", page.Page, page.Total)
	if page.HasMore {
		fmt.Print(" (more available)")
	}
	fmt.Println()
}

func newOrderShowCmd(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := cli.Unwrap(orders.NewClient(rt.API).Get(cmd.Context(), args[0]))
			if err != nil {
				return err
			}
			fmt.Printf("Order %s  [%s]\n", o.ID, o.Status)
			fmt.Println("Vendor:  ", o.VendorName)
			fmt.Println("Pickup:  ", o.PickupAddress)
			fmt.Println("Drop:    ", o.DropAddress)
			fmt.Printf("Customer: %s %s\n", o.CustomerName, o.CustomerPhone)
			for _, it := range o.Items {
				fmt.Printf("  %dx %s  %s\n", it.Quantity, it.Name, cli.Money(it.Price))
			}
			fmt.Println("Amount:  ", cli.Money(o.Amount))
			fmt.Println("Fee:     ", cli.Money(o.DeliveryFee))
			if o.Distance > 0 {
				fmt.Printf("Distance: %.1f km\n", o.Distance)
			}
			return nil
		},
	}
}

type orderAction func(c *orders.Client, cmd *cobra.Command, id string) api.Envelope[orders.ActionResult]

func newOrderActionCmd(rt *cli.Runtime, use, short string, act orderAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <order-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := cli.Unwrap(act(orders.NewClient(rt.API), cmd, args[0]))
			if err != nil {
				return err
			}
			fmt.Printf("Order %s is now %s.\n", res.OrderID, res.Status)
			return nil
		},
	}
}

type orderOTPAction func(c *orders.Client, cmd *cobra.Command, id, otp string) api.Envelope[orders.ActionResult]

func newOrderOTPCmd(rt *cli.Runtime, use, short string, act orderOTPAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <order-id> <otp>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := cli.Unwrap(act(orders.NewClient(rt.API), cmd, args[0], args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("Order %s is now %s.\n", res.OrderID, res.Status)
			return nil
		},
	}
}
