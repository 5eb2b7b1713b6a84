package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dailyhustle/hustle/internal/client/guard"
)

// reportedError marks an error the user has already been told about.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// reported wraps err from a store operation, which notifies on failure.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

var (
	errLoginRequired      = errors.New("you are not logged in; run `hustle login` first")
	errOnboardingRequired = errors.New("your profile is incomplete; run `hustle onboard` first")
)

func (a *App) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hustle",
		Short:         "Daily Hustle in the terminal",
		Long:          "Browse and complete micro-tasks, submit proofs and manage your Daily Hustle wallet.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.mount(cmd.Context())
		},
	}
	// Consumed by config.LoadConfig before the command tree runs; declared so
	// cobra accepts them.
	root.PersistentFlags().StringP("config", "c", "", "config file (.json or .toml)")
	root.PersistentFlags().StringP("api", "a", "", "API base URL")
	root.PersistentFlags().IntP("interval", "i", 0, "unread poll interval in seconds")

	root.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.verifyCmd(),
		a.oauthCmd(),
		a.logoutCmd(),
		a.statusCmd(),
		a.onboardCmd(),
		a.profileCmd(),
		a.kycCmd(),
		a.tasksCmd(),
		a.walletCmd(),
		a.transactionsCmd(),
		a.banksCmd(),
		a.notificationsCmd(),
		a.referralsCmd(),
		a.shellCmd(),
	)
	return root
}

// Execute runs one command line. Errors the user has not seen yet are
// printed to the error writer.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(a.reader)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.ExecuteContext(ctx)
	var rep *reportedError
	if err != nil && !errors.As(err, &rep) {
		fmt.Fprintln(a.errOut, "Error:", err)
	}
	return err
}

// guarded runs fn only if route's guards allow it.
func (a *App) guarded(route guard.Route, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		loading := func() { fmt.Fprintln(a.out, "Checking your profile...") }
		switch a.guard.Evaluate(cmd.Context(), route, loading) {
		case guard.RedirectLogin:
			return errLoginRequired
		case guard.RedirectOnboarding:
			return errOnboardingRequired
		case guard.RedirectDashboard:
			fmt.Fprintf(a.out, "Already logged in as %s.\n", a.session.UserData().Username)
			return nil
		}
		return fn(cmd, args)
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
