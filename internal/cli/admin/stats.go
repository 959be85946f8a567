package admin

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zestro/zestro-go/internal/admin"
	"github.com/zestro/zestro-go/internal/cli"
)

func newStatsCmd(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard headline counters",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			s, err := cli.Unwrap(admin.NewClient(rt.API).Stats(c.Context()))
			if err != nil {
				return err
			}
			fmt.Println("Users:       ", s.Users)
			fmt.Println("Vendors:     ", s.Vendors)
			fmt.Println("Partners:    ", s.Partners)
			fmt.Println("Orders:      ", s.Orders)
			fmt.Println("Revenue:     ", cli.Money(s.Revenue))
			fmt.Println("Pending KYC: ", s.PendingKYC)
			return nil
		},
	}
}

func newAnalyticsCmd(rt *cli.Runtime) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show the daily order/revenue series",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			series, err := cli.Unwrap(admin.NewClient(rt.API).Analytics(c.Context(), days))
			if err != nil {
				return err
			}
			if len(*series) == 0 {
				fmt.Println("No data for the selected range.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tORDERS\tREVENUE")
			for _, p := range *series {
				fmt.Fprintf(w, "%s\t%d\t%s\n", p.Date, p.Orders, cli.Money(p.Revenue))
			}
			w.Flush()
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "Number of trailing days")
	return cmd
}
