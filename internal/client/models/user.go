// Package models defines the client-side shapes of Daily Hustle backend
// resources and the predicates derived from them.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/dailyhustle/hustle/internal/common"
)

// KYC is the identity-verification record attached to a profile.
type KYC struct {
	// Status is the backend's verification state, e.g. "pending" or "verified".
	Status     string `json:"status"`
	IsApproved bool   `json:"is_approved"`
	Date       string `json:"date,omitempty"`
}

// Verified reports whether withdrawals are unlocked.
func (k KYC) Verified() bool {
	return k.Status == "verified"
}

// BankAccount is a payout account saved on the profile.
type BankAccount struct {
	ID            string `json:"_id,omitempty"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	BankCode      string `json:"bank_code"`
	IsDefault     bool   `json:"is_default"`
}

// UserProfile is the current user as held by the store.
//
// IsAuthenticated and Tasks are client-only: the backend never sends them,
// so they survive every merge of a profile response.
type UserProfile struct {
	ID                     string        `json:"_id,omitempty"`
	Username               string        `json:"username"`
	FirstName              string        `json:"first_name"`
	LastName               string        `json:"last_name"`
	Email                  string        `json:"email"`
	Phone                  string        `json:"phone"`
	Photo                  string        `json:"photo"`
	Country                string        `json:"country,omitempty"`
	PreferredJobCategories []string      `json:"preferred_job_categories,omitempty"`
	ReferralCode           string        `json:"referral_code,omitempty"`
	Balance                float64       `json:"balance"`
	Currency               string        `json:"currency"`
	KYC                    KYC           `json:"kyc"`
	VerifiedWorker         bool          `json:"verifiedWorker"`
	VerifiedAdvertiser     bool          `json:"verifiedAdvertiser"`
	BankAccounts           []BankAccount `json:"bank_accounts"`

	IsAuthenticated bool     `json:"isAuthenticated"`
	Tasks           []MyTask `json:"tasks"`
}

// DefaultUserData is the profile a logged-out client holds.
func DefaultUserData() UserProfile {
	return UserProfile{
		Currency:     common.DefaultCurrency,
		BankAccounts: []BankAccount{},
		Tasks:        []MyTask{},
	}
}

// NeedsOnboarding reports whether the profile is missing the fields the
// onboarding step collects. It is the only place that rule lives.
func NeedsOnboarding(p UserProfile) bool {
	return p.FirstName == "" || p.Username == ""
}

// DefaultBankAccount returns the account flagged as default, falling back to
// the first one.
func (p UserProfile) DefaultBankAccount() (BankAccount, bool) {
	for _, a := range p.BankAccounts {
		if a.IsDefault {
			return a, true
		}
	}
	if len(p.BankAccounts) > 0 {
		return p.BankAccounts[0], true
	}
	return BankAccount{}, false
}

// MergeProfile applies the top-level keys present in raw over base. Keys
// absent from raw keep their value in base; nested objects present in raw
// replace the base value whole.
func MergeProfile(base UserProfile, raw json.RawMessage) (UserProfile, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return base, nil
	}

	var patch map[string]json.RawMessage
	if err := json.Unmarshal(raw, &patch); err != nil {
		return base, fmt.Errorf("decode profile: %w", err)
	}

	b, err := json.Marshal(base)
	if err != nil {
		return base, err
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return base, err
	}
	for k, v := range patch {
		// null means "not set" on this backend, not "clear it"
		if string(v) == "null" {
			continue
		}
		doc[k] = v
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return base, err
	}
	var out UserProfile
	if err := json.Unmarshal(merged, &out); err != nil {
		return base, fmt.Errorf("decode merged profile: %w", err)
	}
	return out, nil
}

// Balance is the wallet endpoint payload.
type Balance struct {
	Balance  *float64 `json:"balance"`
	Currency string   `json:"currency"`
}

// ApplyBalance copies wallet fields onto p. A missing balance keeps the
// current one; a missing currency falls back to the default.
func (p UserProfile) ApplyBalance(b Balance) UserProfile {
	if b.Balance != nil {
		p.Balance = *b.Balance
	}
	p.Currency = b.Currency
	if p.Currency == "" {
		p.Currency = common.DefaultCurrency
	}
	return p
}
