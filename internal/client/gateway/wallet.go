package gateway

import (
	"context"
	"net/http"

	"github.com/dailyhustle/hustle/internal/client/models"
)

func (g *Gateway) ListTransactions(ctx context.Context, q models.ListQuery) ([]models.Transaction, models.Page, error) {
	v := pageParams(q.PageNo, q.LimitNo)
	order := q.Order
	if order == "" {
		order = "-1"
	}
	v.Set("order", order)
	if q.Search != "" {
		v.Set("search", q.Search)
	}

	var env listEnvelope[models.Transaction, models.Page]
	if err := g.t.Do(ctx, http.MethodGet, "/transactions/users?"+v.Encode(), nil, &env); err != nil {
		return nil, models.Page{}, err
	}
	return nonNil(env.Data.Data), env.Data.Metadata, nil
}

func (g *Gateway) ListBanks(ctx context.Context) ([]models.Bank, error) {
	banks, err := get[[]models.Bank](ctx, g.t, "/users/banks")
	return nonNil(banks), err
}

// VerifyBankAccount resolves the holder name of an account.
func (g *Gateway) VerifyBankAccount(ctx context.Context, accountNumber, bankCode string) (models.ResolvedAccount, error) {
	var env envelope[models.ResolvedAccount]
	err := g.t.Do(ctx, http.MethodPost, "/users/verify-account", map[string]string{
		"account_number": accountNumber,
		"bank_code":      bankCode,
	}, &env)
	return env.Data, err
}

func (g *Gateway) AddBankAccount(ctx context.Context, acc models.BankAccount) error {
	acc.ID = ""
	return g.t.Do(ctx, http.MethodPost, "/users/me/bank-accounts", acc, nil)
}

// RemoveBankAccount requires the account password as confirmation.
func (g *Gateway) RemoveBankAccount(ctx context.Context, accountID, password string) error {
	return g.t.Do(ctx, http.MethodPost, "/users/me/bank-accounts/"+id(accountID)+"/remove",
		map[string]string{"password": password}, nil)
}

func (g *Gateway) SetDefaultBankAccount(ctx context.Context, accountID string) error {
	return g.t.Do(ctx, http.MethodPatch, "/users/me/bank-accounts/default",
		map[string]string{"account_id": accountID}, nil)
}

func (g *Gateway) RequestWithdrawal(ctx context.Context, amount float64, accountID string) (models.Withdrawal, error) {
	var env envelope[models.Withdrawal]
	err := g.t.Do(ctx, http.MethodPost, "/wallet/withdrawals", map[string]any{
		"amount":          amount,
		"bank_account_id": accountID,
	}, &env)
	return env.Data, err
}
