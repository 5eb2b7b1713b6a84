package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dailyhustle/hustle/internal/client/models"
)

// AuthResult is what a successful sign-in returns.
type AuthResult struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user,omitempty"`
}

func (g *Gateway) auth(ctx context.Context, path string, body any) (AuthResult, error) {
	var env envelope[AuthResult]
	if err := g.t.Do(ctx, http.MethodPost, path, body, &env); err != nil {
		return AuthResult{}, err
	}
	if env.Data.Token == "" {
		return AuthResult{}, models.NewDomainError(models.CodeNoToken, "No token received from server")
	}
	return env.Data, nil
}

func (g *Gateway) Login(ctx context.Context, identifier, password string) (AuthResult, error) {
	return g.auth(ctx, "/auths/users/login", map[string]string{
		"identifier": identifier,
		"password":   password,
	})
}

// OAuthLogin exchanges a federated identity token for a session token.
func (g *Gateway) OAuthLogin(ctx context.Context, firebaseToken, referralCode string) (AuthResult, error) {
	body := map[string]string{"firebase_token": firebaseToken}
	if rc := strings.TrimSpace(referralCode); rc != "" {
		body["referral_code"] = rc
	}
	return g.auth(ctx, "/auths/users/oauth-login", body)
}

// Register creates the account; the backend then emails an OTP.
func (g *Gateway) Register(ctx context.Context, f models.RegisterForm) error {
	return g.t.Do(ctx, http.MethodPost, "/auths/users/register", f, nil)
}

func (g *Gateway) VerifyOTP(ctx context.Context, email, code string) error {
	return g.t.Do(ctx, http.MethodPost, "/auths/users/register/validate-token", map[string]string{
		"email":             email,
		"verification_code": code,
	}, nil)
}
