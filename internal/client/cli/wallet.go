package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dailyhustle/hustle/internal/client/guard"
	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/common"
)

func (a *App) walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Balance and withdrawals",
	}

	balance := &cobra.Command{
		Use:   "balance",
		Short: "Show your balance",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, _ []string) error {
			b, err := a.remote.GetBalance(cmd.Context())
			if err != nil {
				return err
			}
			u := a.session.UserData().ApplyBalance(b)
			a.printf("%s\n", money(u.Balance, u.Currency))
			return nil
		}),
	}

	var account string
	withdraw := &cobra.Command{
		Use:   "withdraw AMOUNT",
		Short: "Withdraw to a saved bank account",
		Args:  cobra.ExactArgs(1),
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(strings.ReplaceAll(args[0], ",", ""), 64)
			if err != nil || amount <= 0 {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			w, err := a.session.Withdraw(cmd.Context(), amount, account)
			if err != nil {
				return reported(err)
			}
			u := a.session.UserData()
			if w.Reference != "" {
				a.printf("Reference: %s\n", w.Reference)
			}
			a.printf("Balance: %s\n", money(u.Balance, u.Currency))
			return nil
		}),
	}
	withdraw.Flags().StringVar(&account, "account", "", "bank account id (default account when empty)")

	cmd.AddCommand(balance, withdraw)
	return cmd
}

func (a *App) transactionsCmd() *cobra.Command {
	var q models.ListQuery
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List wallet transactions",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, _ []string) error {
			txs, page, err := a.remote.ListTransactions(cmd.Context(), q)
			if err != nil {
				return err
			}
			tw := newTable(a.out, "DATE", "TYPE", "AMOUNT", "STATUS", "DESCRIPTION")
			for _, t := range txs {
				amount := money(t.Amount, orDefault(t.Currency, common.DefaultCurrency))
				if t.Type == models.Debit {
					amount = "-" + amount
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", shortDate(t.CreatedAt), t.Type, amount, t.Status, t.Description)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			a.printPage(page)
			return nil
		}),
	}
	addPageFlags(cmd, &q)
	cmd.Flags().StringVar(&q.Search, "search", "", "search text")
	cmd.Flags().StringVar(&q.Order, "order", "-1", "sort order: -1 newest first, 1 oldest first")
	return cmd
}

func (a *App) banksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banks",
		Short: "Manage payout bank accounts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List supported banks",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, _ []string) error {
			banks, err := a.remote.ListBanks(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(a.out, "CODE", "NAME")
			for _, b := range banks {
				fmt.Fprintf(tw, "%s\t%s\n", b.Code, b.Name)
			}
			return tw.Flush()
		}),
	}

	accounts := &cobra.Command{
		Use:   "accounts",
		Short: "List your saved accounts",
		Args:  cobra.NoArgs,
		RunE: a.guarded(guard.Dashboard, func(*cobra.Command, []string) error {
			tw := newTable(a.out, "ID", "BANK", "NUMBER", "NAME", "DEFAULT")
			for _, acc := range a.session.UserData().BankAccounts {
				def := ""
				if acc.IsDefault {
					def = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", acc.ID, acc.BankName, acc.AccountNumber, acc.AccountName, def)
			}
			return tw.Flush()
		}),
	}

	add := &cobra.Command{
		Use:   "add ACCOUNT_NUMBER BANK_CODE",
		Short: "Verify and save a bank account",
		Args:  cobra.ExactArgs(2),
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, args []string) error {
			acc, err := a.session.AddBankAccount(cmd.Context(), args[0], args[1])
			if err != nil {
				return reported(err)
			}
			a.printf("%s, %s (%s)\n", acc.AccountName, acc.BankName, acc.AccountNumber)
			return nil
		}),
	}

	remove := &cobra.Command{
		Use:   "remove ACCOUNT_ID",
		Short: "Remove a saved account",
		Args:  cobra.ExactArgs(1),
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, args []string) error {
			pw, err := getPassword(a.reader, "Confirm with your password", a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(pw)
			return reported(a.session.RemoveBankAccount(cmd.Context(), args[0], string(pw)))
		}),
	}

	def := &cobra.Command{
		Use:   "default ACCOUNT_ID",
		Short: "Make an account the default for withdrawals",
		Args:  cobra.ExactArgs(1),
		RunE: a.guarded(guard.Dashboard, func(cmd *cobra.Command, args []string) error {
			return reported(a.session.SetDefaultBankAccount(cmd.Context(), args[0]))
		}),
	}

	cmd.AddCommand(list, accounts, add, remove, def)
	return cmd
}

func addPageFlags(cmd *cobra.Command, q *models.ListQuery) {
	cmd.Flags().IntVar(&q.PageNo, "page", 1, "page number")
	cmd.Flags().IntVar(&q.LimitNo, "limit", 10, "items per page")
}

func (a *App) printPage(p models.Page) {
	if p.TotalPages > 0 {
		a.printf("Page %d of %d (%d total)\n", p.PageNo, p.TotalPages, p.Total)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
