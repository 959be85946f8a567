package admin

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zestro/zestro-go/internal/admin"
	"github.com/zestro/zestro-go/internal/cli"
)

func newLoginCmd(rt *cli.Runtime) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}
			res, err := cli.Unwrap(admin.NewClient(rt.API).Login(cmd.Context(), email, password))
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s).\n", res.Admin.Name, res.Admin.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Admin email")
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	return cmd
}

func newLogoutCmd(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored admin session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			admin.NewClient(rt.API).Logout()
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newMeCmd(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := cli.Unwrap(admin.NewClient(rt.API).Me(cmd.Context()))
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s>  role=%s\n", a.Name, a.Email, a.Role)
			return nil
		},
	}
}
