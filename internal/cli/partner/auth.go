package partner

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zestro/zestro-go/internal/cli"
	"github.com/zestro/zestro-go/internal/partnerauth"
)

func newLoginCmd(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <phone>",
		Short: "Request a login OTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			auth := partnerauth.NewClient(rt.API)
			pending, err := cli.Unwrap(auth.Login(cmd.Context(), args[0]))
			if err != nil {
				return err
			}
			fmt.Printf("OTP sent to %s (valid for %ds).\n", pending.Phone, pending.ExpiresIn)
			fmt.Println("Complete login with: partnerctl verify", pending.Phone, "<otp>")
			return nil
		},
	}
	return cmd
}

func newVerifyCmd(rt *cli.Runtime) *cobra.Command {
	var resend bool
	cmd := &cobra.Command{
		Use:   "verify <phone> [otp]",
		Short: "Exchange a login OTP for a session",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			auth := partnerauth.NewClient(rt.API)
			if resend || len(args) == 1 {
				pending, err := cli.Unwrap(auth.ResendOTP(cmd.Context(), args[0]))
				if err != nil {
					return err
				}
				fmt.Printf("OTP re-sent to %s (valid for %ds).\n", pending.Phone, pending.ExpiresIn)
				return nil
			}
			verified, err := cli.Unwrap(auth.VerifyOTP(cmd.Context(), args[0], args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s). KYC: %s\n",
				verified.Partner.Name, verified.Partner.Phone, verified.Partner.KYCStatus)
			return nil
		},
	}
	cmd.Flags().BoolVar(&resend, "resend", false, "Re-send the OTP instead of verifying")
	return cmd
}

func newLogoutCmd(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth := partnerauth.NewClient(rt.API)
			env := auth.Logout(cmd.Context())
			// Local credentials are gone either way; only report the server's
			// side of it.
			if !env.Success {
				fmt.Println("Logged out locally (server logout failed:", env.Message+")")
				return nil
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newMeCmd(rt *cli.Runtime) *cobra.Command {
	var cached bool
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the partner profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth := partnerauth.NewClient(rt.API)
			var p partnerauth.Partner
			if cached {
				stored, ok := auth.CachedProfile()
				if !ok {
					return fmt.Errorf("no cached profile; log in first")
				}
				p = stored
			} else {
				fresh, err := cli.Unwrap(auth.Me(cmd.Context()))
				if err != nil {
					return err
				}
				p = *fresh
			}
			printPartner(p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&cached, "cached", false, "Show the locally cached profile without a network call")
	return cmd
}

func printPartner(p partnerauth.Partner) {
	fmt.Printf("%s  (%s)\n", p.Name, p.Phone)
	if p.Email != "" {
		fmt.Println("Email:   ", p.Email)
	}
	if p.VehicleType != "" {
		fmt.Printf("Vehicle:  %s %s\n", p.VehicleType, p.VehicleNumber)
	}
	fmt.Println("KYC:     ", p.KYCStatus)
	online := "offline"
	if p.IsOnline {
		online = "online"
	}
	fmt.Println("Status:  ", online)
	if p.Rating > 0 {
		fmt.Printf("Rating:   %.1f\n", p.Rating)
	}
}

func newProfileCmd(rt *cli.Runtime) *cobra.Command {
	var update partnerauth.ProfileUpdate
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if update == (partnerauth.ProfileUpdate{}) {
				return fmt.Errorf("nothing to update; pass at least one flag")
			}
			auth := partnerauth.NewClient(rt.API)
			p, err := cli.Unwrap(auth.UpdateProfile(cmd.Context(), update))
			if err != nil {
				return err
			}
			printPartner(*p)
			return nil
		},
	}
	cmd.Flags().StringVar(&update.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&update.Email, "email", "", "Contact email")
	cmd.Flags().StringVar(&update.VehicleType, "vehicle-type", "", "Vehicle type (bike, scooter, ...)")
	cmd.Flags().StringVar(&update.VehicleNumber, "vehicle-number", "", "Vehicle registration number")
	return cmd
}

func newOnlineCmd(rt *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "online",
		Short: "Toggle availability for new orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth := partnerauth.NewClient(rt.API)
			status, err := cli.Unwrap(auth.ToggleOnline(cmd.Context()))
			if err != nil {
				return err
			}
			if status.IsOnline {
				fmt.Println("You are now online and visible for orders.")
			} else {
				fmt.Println("You are now offline.")
			}
			return nil
		},
	}
}
