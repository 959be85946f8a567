// Package admin implements the dashboard operator command-line app.
package admin

import (
	"github.com/spf13/cobra"

	"github.com/zestro/zestro-go/internal/cli"
	"github.com/zestro/zestro-go/internal/credentials"
)

// NewRootCmd builds the adminctl command tree.
func NewRootCmd() *cobra.Command {
	rt := &cli.Runtime{}

	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "Zestro admin dashboard app",
		Long:          "Command-line app for Zestro operators: moderation, KYC, content, and analytics.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.Init(credentials.AdminKeys(), "admin.db", "Run 'adminctl login' to start a new session.")
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			rt.Close()
		},
	}

	root.AddCommand(
		newLoginCmd(rt),
		newLogoutCmd(rt),
		newMeCmd(rt),
		newUsersCmd(rt),
		newVendorsCmd(rt),
		newPartnersCmd(rt),
		newContentCmd(rt),
		newStatsCmd(rt),
		newAnalyticsCmd(rt),
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
