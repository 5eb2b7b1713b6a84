package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dailyhustle/hustle/internal/client/guard"
	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/client/poller"
)

func (a *App) notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Read your notifications",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, _ []string) error {
			ns, err := a.remote.ListNotifications(cmd.Context())
			if err != nil {
				return err
			}
			if len(ns) == 0 {
				a.printf("No notifications.\n")
				return nil
			}
			tw := newTable(a.out, "", "DATE", "TITLE", "MESSAGE")
			for _, n := range ns {
				mark := " "
				if !n.Read {
					mark = "•"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, shortDate(n.Date), n.Title, n.Description)
			}
			return tw.Flush()
		}),
	}

	unread := &cobra.Command{
		Use:   "unread",
		Short: "Show the unread count",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, _ []string) error {
			n, err := a.remote.UnreadCount(cmd.Context())
			if err != nil {
				return err
			}
			a.printf("%s unread\n", badge(n))
			return nil
		}),
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Print the unread count as it changes, until interrupted",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, _ []string) error {
			last := -1
			p := poller.New(a.remote, poller.Options{
				Interval: a.interval,
				Logger:   a.log,
				Metrics:  a.metrics,
				OnCount: func(n int) {
					if n != last {
						last = n
						a.printf("%s unread\n", badge(n))
					}
				},
			})
			stop := p.Start(cmd.Context())
			defer stop()
			<-cmd.Context().Done()
			return nil
		}),
	}

	cmd.AddCommand(list, unread, watch)
	return cmd
}

func (a *App) referralsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "referrals",
		Short: "Referral earnings and history",
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show referral totals and your code",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, _ []string) error {
			s, err := a.remote.GetReferralStats(cmd.Context())
			if err != nil {
				return err
			}
			code := orDefault(s.ReferralCode, a.session.UserData().ReferralCode)
			a.printf("Code:    %s\nTotal:   %d\nActive:  %d\nEarned:  %s\n",
				code, s.TotalReferrals, s.ActiveReferrals, money(s.TotalEarned, a.session.UserData().Currency))
			return nil
		}),
	}

	var q models.ListQuery
	history := &cobra.Command{
		Use:   "history",
		Short: "List the people you referred",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, _ []string) error {
			refs, page, err := a.remote.ListReferrals(cmd.Context(), q)
			if err != nil {
				return err
			}
			tw := newTable(a.out, "DATE", "USER", "STATUS", "REWARD")
			for _, r := range refs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", shortDate(r.CreatedAt), orDefault(r.Username, r.Email), r.Status,
					money(r.Reward, a.session.UserData().Currency))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			a.printPage(page)
			return nil
		}),
	}
	addPageFlags(history, &q)
	history.Flags().StringVar(&q.FromDate, "from", "", "from date (YYYY-MM-DD)")
	history.Flags().StringVar(&q.ToDate, "to", "", "to date (YYYY-MM-DD)")
	history.Flags().StringVar(&q.Search, "search", "", "search text")

	cmd.AddCommand(stats, history)
	return cmd
}
