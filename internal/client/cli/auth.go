package cli

import (
	"github.com/spf13/cobra"

	"github.com/dailyhustle/hustle/internal/client/guard"
	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/client/validate"
	"github.com/dailyhustle/hustle/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [username-or-email]",
		Short: "Sign in with username or email and password",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.guarded(guard.Login, func(cmd *cobra.Command, args []string) error {
			var identifier string
			if len(args) == 1 {
				identifier = args[0]
			} else {
				var err error
				if identifier, err = getSimpleText(a.reader, "Username or email", a.out); err != nil {
					return err
				}
			}
			pw, err := getPassword(a.reader, "Password", a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(pw)

			if err := a.session.Login(cmd.Context(), identifier, string(pw)); err != nil {
				return reported(err)
			}
			a.printStatus()
			return nil
		}),
	}
}

func (a *App) registerCmd() *cobra.Command {
	var referral string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and confirm it with the emailed code",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Signup, func(cmd *cobra.Command, _ []string) error {
			f := models.RegisterForm{ReferralCode: referral}
			prompts := []struct {
				label string
				dst   *string
			}{
				{"First name", &f.FirstName},
				{"Last name", &f.LastName},
				{"Username", &f.Username},
				{"Phone", &f.Phone},
				{"Email", &f.Email},
			}
			for _, p := range prompts {
				v, err := getSimpleText(a.reader, p.label, a.out)
				if err != nil {
					return err
				}
				*p.dst = v
			}
			country, err := GetTextDefault(a.reader, "Country", models.DefaultCountry, a.out)
			if err != nil {
				return err
			}
			f.Country = country

			pw, err := getPassword(a.reader, "Password", a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(pw)
			f.Password = string(pw)
			a.printf("Password strength: %s\n", validate.StrengthLabel(validate.PasswordStrength(f.Password)))

			if err := a.session.Register(cmd.Context(), f); err != nil {
				return reported(err)
			}
			return a.confirm(cmd, f)
		}),
	}
	cmd.Flags().StringVar(&referral, "referral", "", "referral code")
	return cmd
}

func (a *App) verifyCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Confirm a registration with the emailed code",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Signup, func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				var err error
				if email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
					return err
				}
			}
			pw, err := getPassword(a.reader, "Password (to sign you in afterwards)", a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(pw)
			return a.confirm(cmd, models.RegisterForm{Email: email, Password: string(pw)})
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "email the code was sent to")
	return cmd
}

// confirm reads the OTP and verifies the account behind f.
func (a *App) confirm(cmd *cobra.Command, f models.RegisterForm) error {
	code, err := getSimpleText(a.reader, "Enter the 6-digit code sent to "+f.Email, a.out)
	if err != nil {
		return err
	}
	ok, err := a.session.VerifyOTP(cmd.Context(), f, code)
	if err != nil {
		return reported(err)
	}
	if ok {
		a.printStatus()
	} else {
		a.printf("Sign in with `hustle login %s`.\n", f.Identifier())
	}
	return nil
}

func (a *App) oauthCmd() *cobra.Command {
	var referral string
	cmd := &cobra.Command{
		Use:   "oauth",
		Short: "Sign in through the hosted Google sign-in page",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Login, func(cmd *cobra.Command, _ []string) error {
			res, err := a.oauth.Wait(cmd.Context(), func(url string) {
				a.printf("Finish signing in in your browser. Waiting for the callback on %s ...\n", url)
			})
			if err != nil {
				return err
			}
			if referral == "" {
				referral = res.ReferralCode
			}
			if err := a.session.OAuthLogin(cmd.Context(), res.FirebaseToken, referral); err != nil {
				return reported(err)
			}
			a.printStatus()
			return nil
		}),
	}
	cmd.Flags().StringVar(&referral, "referral", "", "referral code for a new account")
	return cmd
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return reported(a.session.Logout(cmd.Context()))
		},
	}
}

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session state",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			a.printStatus()
		},
	}
}

func (a *App) printStatus() {
	state := a.session.State()
	if !a.isLoggedIn() {
		a.printf("State: %s\n", state)
		return
	}
	u := a.session.UserData()
	name := u.Username
	if name == "" {
		name = u.Email
	}
	a.printf("State: %s\nUser:  %s\nBalance: %s\nKYC: %s\n", state, name, money(u.Balance, u.Currency), kycLabel(u.KYC))
}

func kycLabel(k models.KYC) string {
	switch {
	case k.Verified():
		return "verified"
	case k.Status != "":
		return k.Status
	default:
		return "not submitted (run `hustle kyc submit`)"
	}
}
