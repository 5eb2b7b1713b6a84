package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dailyhustle/hustle/internal/client/guard"
	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/client/validate"
	"github.com/dailyhustle/hustle/internal/filex"
)

func (a *App) onboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Complete your profile after the first sign-in",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Onboarding, func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u := a.session.UserData()
			f := models.OnboardingForm{
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Username:  u.Username,
				Phone:     u.Phone,
				Country:   u.Country,
			}
			if f.Country == "" {
				f.Country = models.DefaultCountry
			}

			var err error
			if f.FirstName, err = GetTextDefault(a.reader, "First name", f.FirstName, a.out); err != nil {
				return err
			}
			if f.LastName, err = GetTextDefault(a.reader, "Last name", f.LastName, a.out); err != nil {
				return err
			}
			for {
				if f.Username, err = GetTextDefault(a.reader, "Username", f.Username, a.out); err != nil {
					return err
				}
				if !validate.UsernameCheckable(f.Username) {
					a.printf("Usernames need at least 3 characters.\n")
					continue
				}
				free, err := a.session.CheckUsername(ctx, f.Username)
				if err != nil {
					return err
				}
				if free {
					a.printf("✓ %s is available\n", f.Username)
					break
				}
				a.printf("✗ %s is taken\n", f.Username)
				f.Username = ""
			}
			if f.Phone, err = GetTextDefault(a.reader, "Phone", f.Phone, a.out); err != nil {
				return err
			}
			if f.Country, err = GetTextDefault(a.reader, "Country", f.Country, a.out); err != nil {
				return err
			}
			a.printf("Job categories: %s\n", strings.Join(models.JobCategories, ", "))
			if f.PreferredJobCategories, err = GetList(a.reader, "Pick at least one", a.out); err != nil {
				return err
			}
			if f.ReferralCode, err = getSimpleText(a.reader, "Referral code (optional)", a.out); err != nil {
				return err
			}

			return reported(a.session.CompleteOnboarding(ctx, f))
		}),
	}
}

func (a *App) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit your profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Dashboard, func(*cobra.Command, []string) error {
			u := a.session.UserData()
			a.printf("Name:       %s %s\n", u.FirstName, u.LastName)
			a.printf("Username:   %s\n", u.Username)
			a.printf("Email:      %s\n", u.Email)
			a.printf("Phone:      %s\n", u.Phone)
			a.printf("Country:    %s\n", u.Country)
			a.printf("Categories: %s\n", strings.Join(u.PreferredJobCategories, ", "))
			a.printf("Referral:   %s\n", u.ReferralCode)
			a.printf("KYC:        %s\n", kycLabel(u.KYC))
			a.printf("Badges:     worker=%t advertiser=%t\n", u.VerifiedWorker, u.VerifiedAdvertiser)
			return nil
		}),
	}

	var upd models.ProfileUpdate
	update := &cobra.Command{
		Use:   "update",
		Short: "Change name or phone",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, _ []string) error {
			return reported(a.session.UpdateProfile(cmd.Context(), upd))
		}),
	}
	update.Flags().StringVar(&upd.FirstName, "first-name", "", "first name")
	update.Flags().StringVar(&upd.LastName, "last-name", "", "last name")
	update.Flags().StringVar(&upd.Phone, "phone", "", "phone number")

	avatar := &cobra.Command{
		Use:   "avatar FILE",
		Short: "Upload a new profile picture",
		Args:  cobra.ExactArgs(1),
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, args []string) error {
			up, err := filex.OpenUpload(args[0])
			if err != nil {
				return err
			}
			defer up.Reader.Close()
			return reported(a.session.UpdateAvatar(cmd.Context(), up))
		}),
	}

	badgeCmd := &cobra.Command{
		Use:       "badge worker|advertiser",
		Short:     "Request a verification badge",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"worker", "advertiser"},
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, args []string) error {
			if args[0] != "worker" && args[0] != "advertiser" {
				return fmt.Errorf("unknown badge %q", args[0])
			}
			if err := a.remote.RequestBadge(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printf("Badge request sent.\n")
			return nil
		}),
	}

	cmd.AddCommand(show, update, avatar, badgeCmd)
	return cmd
}

func (a *App) kycCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kyc",
		Short: "Identity verification",
	}

	var (
		f   models.KYCForm
		doc string
	)
	submit := &cobra.Command{
		Use:   "submit",
		Short: "Submit your identity document",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.KYC, func(cmd *cobra.Command, _ []string) error {
			var up *filex.Upload
			if doc != "" {
				var err error
				if up, err = filex.OpenUpload(doc); err != nil {
					return err
				}
				defer up.Reader.Close()
			}
			return reported(a.session.SubmitKYC(cmd.Context(), f, up))
		}),
	}
	submit.Flags().StringVar(&f.FullName, "full-name", "", "full legal name")
	submit.Flags().StringVar(&f.DOB, "dob", "", "date of birth (YYYY-MM-DD)")
	submit.Flags().StringVar(&f.IdentificationNumber, "id-number", "", "identification number")
	submit.Flags().StringVar(&f.ResidentialAddress, "address", "", "residential address")
	submit.Flags().StringVar(&doc, "document", "", "image of the ID document")

	cmd.AddCommand(submit)
	return cmd
}
