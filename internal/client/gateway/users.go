package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/client/validate"
)

// UserResponse carries both the decoded profile and the raw object so the
// store can merge only the keys the backend sent.
type UserResponse struct {
	Profile models.UserProfile
	Raw     json.RawMessage
}

func (g *Gateway) GetUser(ctx context.Context) (UserResponse, error) {
	body, err := get[json.RawMessage](ctx, g.t, "/users/me")
	if err != nil {
		return UserResponse{}, err
	}
	var p models.UserProfile
	if len(body) > 0 && string(body) != "null" {
		if err := json.Unmarshal(body, &p); err != nil {
			return UserResponse{}, fmt.Errorf("decode profile: %w", err)
		}
	}
	return UserResponse{Profile: p, Raw: body}, nil
}

// UpdateUser sends a partial profile update.
func (g *Gateway) UpdateUser(ctx context.Context, patch any) error {
	return g.t.Do(ctx, http.MethodPatch, "/users/me", patch, nil)
}

func (g *Gateway) GetBalance(ctx context.Context) (models.Balance, error) {
	return get[models.Balance](ctx, g.t, "/users/me/wallet-balance")
}

func (g *Gateway) VerifyUsername(ctx context.Context, username string) (bool, error) {
	v := url.Values{}
	v.Set("username", username)
	res, err := get[struct {
		IsAvailable bool `json:"isAvailable"`
	}](ctx, g.t, "/users/verify-username?"+v.Encode())
	return res.IsAvailable, err
}

// CompleteOnboarding normalises the phone and omits an empty referral code.
func (g *Gateway) CompleteOnboarding(ctx context.Context, f models.OnboardingForm) error {
	f.Phone = validate.NormalizePhone(f.Phone)
	return g.t.Do(ctx, http.MethodPatch, "/users/me", f, nil)
}

// SubmitKYC stores the identity form on the profile. A plain date of
// birth is sent as an ISO timestamp.
func (g *Gateway) SubmitKYC(ctx context.Context, f models.KYCForm) error {
	if d, err := time.Parse(time.DateOnly, f.DOB); err == nil {
		f.DOB = d.UTC().Format("2006-01-02T15:04:05.000Z")
	}
	return g.UpdateUser(ctx, map[string]any{"kyc": f})
}

// RequestBadge asks for the "worker" or "advertiser" verification badge.
func (g *Gateway) RequestBadge(ctx context.Context, kind string) error {
	return g.t.Do(ctx, http.MethodPost, "/verification/badge/"+id(kind), nil, nil)
}
