package models

import "time"

type TransactionType string

const (
	Credit TransactionType = "Credit"
	Debit  TransactionType = "Debit"
)

type Transaction struct {
	Reference   string          `json:"reference"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}

type Notification struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Read        bool      `json:"read"`
	Date        time.Time `json:"createdAt"`
}

// Page is the pagination metadata returned next to list results.
type Page struct {
	Total      int `json:"total"`
	PageNo     int `json:"pageNo"`
	LimitNo    int `json:"limitNo"`
	TotalPages int `json:"totalPages"`
}

// Bank is a payout bank as listed by the backend.
type Bank struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// ResolvedAccount is the account holder name returned by account lookup.
type ResolvedAccount struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

type ReferralStats struct {
	TotalReferrals  int     `json:"totalReferrals"`
	ActiveReferrals int     `json:"activeReferrals"`
	TotalEarned     float64 `json:"totalEarned"`
	ReferralCode    string  `json:"referralCode"`
}

type Referral struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	Reward    float64   `json:"reward"`
	CreatedAt time.Time `json:"createdAt"`
}

// Withdrawal is the accepted payout request.
type Withdrawal struct {
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}
