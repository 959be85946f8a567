package partner

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zestro/zestro-go/internal/cli"
	"github.com/zestro/zestro-go/internal/earnings"
	"github.com/zestro/zestro-go/internal/wallet"
)

func newEarningsCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "earnings",
		Short: "Show the earnings summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := cli.Unwrap(earnings.NewClient(rt.API).Get(cmd.Context()))
			if err != nil {
				return err
			}
			fmt.Println("Today:     ", cli.Money(s.Today))
			fmt.Println("This week: ", cli.Money(s.ThisWeek))
			fmt.Println("This month:", cli.Money(s.ThisMonth))
			fmt.Println("Lifetime:  ", cli.Money(s.Lifetime))
			fmt.Println("Deliveries:", s.Deliveries)
			return nil
		},
	}
	cmd.AddCommand(newEarningsHistoryCmd(rt))
	return cmd
}

func newEarningsHistoryCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List credited deliveries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, limit := pagingFlags(cmd)
			result, err := cli.Unwrap(earnings.NewClient(rt.API).History(cmd.Context(), page, limit))
			if err != nil {
				return err
			}
			if len(result.Data) == 0 {
				fmt.Println("No earnings yet.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ORDER\tAMOUNT\tDATE")
			for _, e := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.OrderID, cli.Money(e.Amount), e.CreatedAt.Format("2006-01-02 15:04"))
			}
			w.Flush()
			return nil
		},
	}
	addPagingFlags(cmd)
	return cmd
}

func newWalletCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet balance, transactions, and withdrawals",
	}
	cmd.AddCommand(
		newWalletBalanceCmd(rt),
		newWalletTransactionsCmd(rt),
		newWalletWithdrawCmd(rt),
		newWalletWithdrawalsCmd(rt),
	)
	return cmd
}

func newWalletBalanceCmd(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the available balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := cli.Unwrap(wallet.NewClient(rt.API).Balance(cmd.Context()))
			if err != nil {
				return err
			}
			fmt.Printf("Balance: %s (as of %s)\n", cli.Money(b.Amount), b.AsOf.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newWalletTransactionsCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List wallet movements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, limit := pagingFlags(cmd)
			result, err := cli.Unwrap(wallet.NewClient(rt.API).Transactions(cmd.Context(), page, limit))
			if err != nil {
				return err
			}
			if len(result.Data) == 0 {
				fmt.Println("No transactions.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tAMOUNT\tREFERENCE\tDATE")
			for _, tx := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					tx.Kind, cli.Money(tx.Amount), tx.Reference, tx.CreatedAt.Format("2006-01-02 15:04"))
			}
			w.Flush()
			return nil
		},
	}
	addPagingFlags(cmd)
	return cmd
}

func newWalletWithdrawCmd(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <amount>",
		Short: "Request a payout (amount in minor units)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || amount <= 0 {
				return fmt.Errorf("amount must be a positive integer in minor units")
			}
			wd, err := cli.Unwrap(wallet.NewClient(rt.API).Withdraw(cmd.Context(), amount))
			if err != nil {
				return err
			}
			fmt.Printf("Withdrawal %s for %s is %s (ref %s).\n", wd.ID, cli.Money(wd.Amount), wd.Status, wd.Reference)
			return nil
		},
	}
}

func newWalletWithdrawalsCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdrawals",
		Short: "List past payout requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, limit := pagingFlags(cmd)
			result, err := cli.Unwrap(wallet.NewClient(rt.API).Withdrawals(cmd.Context(), page, limit))
			if err != nil {
				return err
			}
			if len(result.Data) == 0 {
				fmt.Println("No withdrawals.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tAMOUNT\tSTATUS\tDATE")
			for _, wd := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					wd.ID, cli.Money(wd.Amount), wd.Status, wd.CreatedAt.Format("2006-01-02 15:04"))
			}
			w.Flush()
			return nil
		},
	}
	addPagingFlags(cmd)
	return cmd
}
