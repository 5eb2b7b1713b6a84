package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the surface the REPL drives. The real App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	// Navigate refreshes app data before each command, like a route change.
	Navigate(ctx context.Context)
	Dispatch(ctx context.Context, args []string) error
}

// runREPL reads a line at a time, splits it into arguments and dispatches
// it as if it had been typed after "hustle". It returns on EOF or on
// "exit"/"quit". Errors are reported by Dispatch, so the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("hustle %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Commands: status, tasks, wallet, transactions, banks, notifications, referrals, profile, kyc, onboard, logout, exit")
			} else {
				printlnFn("Commands: login, oauth, register, verify, status, exit")
			}
			printlnFn("Add --help to any command for details.")

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "shell":
			printlnFn("Already in the shell.")

		default:
			a.Navigate(ctx)
			_ = a.Dispatch(ctx, parts)
		}
	}
}

func (a *App) Navigate(ctx context.Context) {
	a.session.RefreshUserData(ctx)
}

func (a *App) Dispatch(ctx context.Context, args []string) error {
	return a.Execute(ctx, args)
}

// getStatus is the prompt decoration: the username, or nothing when
// signed out.
func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(guest) "
	}
	u := a.session.UserData()
	name := u.Username
	if name == "" {
		name = u.Email
	}
	return fmt.Sprintf("(%s) ", name)
}

func (a *App) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.inShell {
				return nil
			}
			a.inShell = true
			defer func() { a.inShell = false }()

			printlnFn("Daily Hustle (type 'help' for commands)")
			runREPL(cmd.Context(), a, a.getStatus, a.reader)
			return nil
		},
	}
}
