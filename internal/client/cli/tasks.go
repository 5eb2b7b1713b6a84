package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dailyhustle/hustle/internal/client/guard"
	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/common"
	"github.com/dailyhustle/hustle/internal/filex"
)

func (a *App) tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Browse, start and submit tasks",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List available tasks",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, _ []string) error {
			tasks, err := a.session.FetchAllTasks(cmd.Context())
			if err != nil {
				// fall back to the cached catalog
				a.log.Warn(cmd.Context(), "fetch tasks", "error", err)
				tasks = a.session.Tasks()
			}
			tw := newTable(a.out, "ID", "TITLE", "CATEGORY", "REWARD", "SLOTS")
			for _, t := range tasks {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d\n", t.ID, t.Title, t.Category,
					money(t.Reward.PerWorker(), t.Reward.Currency), t.Slots.Used, t.Slots.Max)
			}
			return tw.Flush()
		}),
	}

	show := &cobra.Command{
		Use:   "show TASK_ID",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, args []string) error {
			t, err := a.findTask(cmd, args[0])
			if err != nil {
				return err
			}
			a.printf("%s\n%s\n\nReward: %s per worker\nSlots:  %d/%d\n", t.Title, t.Category,
				money(t.Reward.PerWorker(), t.Reward.Currency), t.Slots.Used, t.Slots.Max)
			if t.Description != "" {
				a.printf("\n%s\n", t.Description)
			}
			if t.Instructions != "" {
				a.printf("\nInstructions:\n%s\n", t.Instructions)
			}
			return nil
		}),
	}

	var status string
	mine := &cobra.Command{
		Use:   "mine",
		Short: "List the tasks you have started",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, _ []string) error {
			tab, err := a.statusTab(cmd, status)
			if err != nil {
				return err
			}
			mt, err := a.session.FetchMyTasks(cmd.Context())
			if err != nil {
				mt = a.session.UserData().Tasks
			}
			tw := newTable(a.out, "PROOF", "TASK", "STATUS", "REWARD")
			for _, t := range mt {
				if tab != tabAll && t.SubmissionProgress != models.ProofStatus(tab) {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Task.Title, t.SubmissionProgress,
					money(t.Task.Reward.PerWorker(), t.Task.Reward.Currency))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if stats, err := a.remote.GetTaskStats(cmd.Context()); err == nil {
				a.printf("\n%d total, %d pending, %d approved, %d rejected. Earned %s.\n",
					stats.Total, stats.Pending, stats.Approved, stats.Rejected,
					money(stats.Earned, a.session.UserData().Currency))
			}
			return nil
		}),
	}

	start := &cobra.Command{
		Use:   "start TASK_ID",
		Short: "Start working on a task",
		Args:  cobra.ExactArgs(1),
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, args []string) error {
			t, err := a.findTask(cmd, args[0])
			if err != nil {
				return err
			}
			proof, err := a.session.OnApplyFunc(cmd.Context(), t)
			if err != nil {
				return reported(err)
			}
			a.printf("Started %q. Submit your proof with `hustle tasks submit %s`.\n", t.Title, proof.ID)
			return nil
		}),
	}

	mine.Flags().StringVarP(&status, "status", "s", "",
		"only show proofs in this state: all, pending, approved, rejected or resubmit (remembered)")

	var title, file, src string
	submit := &cobra.Command{
		Use:   "submit PROOF_ID",
		Short: "Submit proof for a started task",
		Args:  cobra.ExactArgs(1),
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return reported(a.session.SubmitTaskProof(cmd.Context(), args[0], title, src))
			}
			up, err := filex.OpenUpload(file)
			if err != nil {
				return err
			}
			defer up.Reader.Close()
			return reported(a.session.SubmitProofWithFile(cmd.Context(), args[0], title, up))
		}),
	}
	submit.Flags().StringVar(&title, "title", "", "short description of the proof")
	submit.Flags().StringVar(&file, "file", "", "screenshot to upload as proof")
	submit.Flags().StringVar(&src, "src", "", "URL of an already uploaded proof image")
	submit.MarkFlagsMutuallyExclusive("file", "src")

	cmd.AddCommand(list, show, mine, start, submit)
	return cmd
}

const tabAll = "ALL"

// statusTab resolves the my-tasks filter. An explicit flag is remembered
// for the next run; otherwise the last one is reused.
func (a *App) statusTab(cmd *cobra.Command, flag string) (string, error) {
	ctx := cmd.Context()
	if flag == "" {
		if tab := a.session.ActiveTab(ctx, common.KeyTasksActiveTab); tab != "" {
			return tab, nil
		}
		return tabAll, nil
	}
	tab := strings.ToUpper(strings.TrimSpace(flag))
	switch models.ProofStatus(tab) {
	case tabAll, models.ProofPending, models.ProofApproved, models.ProofRejected, models.ProofResubmit:
	default:
		return "", fmt.Errorf("unknown status %q", flag)
	}
	if err := a.session.SetActiveTab(ctx, common.KeyTasksActiveTab, tab); err != nil {
		a.log.Warn(ctx, "remember tasks tab", "error", err)
	}
	return tab, nil
}

// findTask looks in the catalog first, then asks the backend.
func (a *App) findTask(cmd *cobra.Command, id string) (models.Task, error) {
	for _, t := range a.session.Tasks() {
		if t.ID == id {
			return t, nil
		}
	}
	return a.remote.GetTask(cmd.Context(), id)
}
