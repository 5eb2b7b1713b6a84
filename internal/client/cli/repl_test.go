package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls       [][]string
	navigations int
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Navigate(context.Context) {
	f.navigations++
}
func (f *fakeExec) Dispatch(_ context.Context, args []string) error {
	f.calls = append(f.calls, args)
	if args[0] == "login" {
		f.loggedIn = true
	}
	return nil
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = v.(string)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesAndRefreshesEachCommand(t *testing.T) {
	silencePrintln(t)
	input := rdr(strings.Join([]string{
		"help",
		"login ada",
		"",
		"tasks list",
		"wallet withdraw 2000 --account b1",
		"exit",
		"status",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, input)

	require.Equal(t, [][]string{
		{"login", "ada"},
		{"tasks", "list"},
		{"wallet", "withdraw", "2000", "--account", "b1"},
	}, exec.calls)
	assert.Equal(t, 3, exec.navigations)
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := silencePrintln(t)
	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, rdr("help\nquit\n"))
	assert.Contains(t, strings.Join(*lines, "\n"), "login, oauth, register")

	*lines = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, rdr("help\n"))
	assert.Contains(t, strings.Join(*lines, "\n"), "tasks, wallet")
}

func TestRunREPL_EOFEnds(t *testing.T) {
	silencePrintln(t)
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("shell"))
	assert.Empty(t, exec.calls)
}
