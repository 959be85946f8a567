// Package partner implements the delivery partner command-line app.
package partner

import (
	"github.com/spf13/cobra"

	"github.com/zestro/zestro-go/internal/cli"
	"github.com/zestro/zestro-go/internal/credentials"
)

// NewRootCmd builds the partnerctl command tree.
func NewRootCmd() *cobra.Command {
	rt := &cli.Runtime{}

	root := &cobra.Command{
		Use:           "partnerctl",
		Short:         "Zestro delivery partner app",
		Long:          "Command-line app for Zestro delivery partners: login, orders, earnings, and wallet.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.Init(credentials.PartnerKeys(), "partner.db", "Run 'partnerctl login' to start a new session.")
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			rt.Close()
		},
	}

	root.AddCommand(
		newLoginCmd(rt),
		newVerifyCmd(rt),
		newLogoutCmd(rt),
		newMeCmd(rt),
		newProfileCmd(rt),
		newOnlineCmd(rt),
		newOrdersCmd(rt),
		newEarningsCmd(rt),
		newWalletCmd(rt),
		newBrowseCmd(rt),
	)
	return root
}

func addPagingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("limit", 10, "Items per page")
}

func pagingFlags(cmd *cobra.Command) (int, int) {
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")
	return page, limit
}
