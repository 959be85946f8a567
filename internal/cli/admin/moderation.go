package admin

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zestro/zestro-go/internal/admin"
	"github.com/zestro/zestro-go/internal/cli"
)

func newUsersCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Moderate customer accounts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List customer accounts",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			page, limit := pagingFlags(c)
			result, err := cli.Unwrap(admin.NewClient(rt.API).Users(c.Context(), page, limit))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPHONE\tBLOCKED")
			for _, u := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", u.ID, u.Name, u.Phone, u.Blocked)
			}
			w.Flush()
			return nil
		},
	}
	addPagingFlags(list)

	block := func(use string, blocked bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <user-id>",
			Short: use + " a customer account",
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				u, err := cli.Unwrap(admin.NewClient(rt.API).SetUserBlocked(c.Context(), args[0], blocked))
				if err != nil {
					return err
				}
				fmt.Printf("%s blocked=%t\n", u.Name, u.Blocked)
				return nil
			},
		}
	}

	cmd.AddCommand(list, block("block", true), block("unblock", false))
	return cmd
}

func newVendorsCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "Manage vendor accounts and KYC",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List vendor accounts",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			page, limit := pagingFlags(c)
			result, err := cli.Unwrap(admin.NewClient(rt.API).Vendors(c.Context(), page, limit))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPHONE\tKYC\tOPEN")
			for _, v := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", v.ID, v.Name, v.Phone, v.KYCStatus, v.Open)
			}
			w.Flush()
			return nil
		},
	}
	addPagingFlags(list)

	kyc := &cobra.Command{
		Use:   "kyc <vendor-id> <pending|approved|rejected>",
		Short: "Adjudicate a vendor's KYC status",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			v, err := cli.Unwrap(admin.NewClient(rt.API).SetVendorKYC(c.Context(), args[0], args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s.\n", v.Name, v.KYCStatus)
			return nil
		},
	}

	cmd.AddCommand(list, kyc)
	return cmd
}

func newPartnersCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partners",
		Short: "Manage delivery partner accounts and KYC",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List delivery partner accounts",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			page, limit := pagingFlags(c)
			result, err := cli.Unwrap(admin.NewClient(rt.API).Partners(c.Context(), page, limit))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPHONE\tKYC\tONLINE")
			for _, p := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", p.ID, p.Name, p.Phone, p.KYCStatus, p.IsOnline)
			}
			w.Flush()
			return nil
		},
	}
	addPagingFlags(list)

	kyc := &cobra.Command{
		Use:   "kyc <partner-id> <pending|approved|rejected>",
		Short: "Adjudicate a partner's KYC status",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			p, err := cli.Unwrap(admin.NewClient(rt.API).SetPartnerKYC(c.Context(), args[0], args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s.\n", p.Name, p.KYCStatus)
			return nil
		},
	}

	cmd.AddCommand(list, kyc)
	return cmd
}
