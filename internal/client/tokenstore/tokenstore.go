// Package tokenstore persists the bearer token, the logged-in flag and the
// cached session data between client runs.
package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/client/repositories/metadata"
	"github.com/dailyhustle/hustle/internal/common"
)

// Sealer protects values at rest. *cryptox.Sealer satisfies it.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

type plain struct{}

func (plain) Seal(b []byte) ([]byte, error) { return b, nil }
func (plain) Open(b []byte) ([]byte, error) { return b, nil }

type Store struct {
	repo   metadata.Repository
	sealer Sealer
	now    func() time.Time
}

// New returns a Store over repo. A nil sealer stores values as-is.
func New(repo metadata.Repository, sealer Sealer) *Store {
	if sealer == nil {
		sealer = plain{}
	}
	return &Store{repo: repo, sealer: sealer, now: time.Now}
}

func (s *Store) put(ctx context.Context, key string, value []byte) error {
	sealed, err := s.sealer.Seal(value)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.repo.Set(ctx, key, sealed)
}

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.repo.Get(ctx, key)
	if err != nil || sealed == nil {
		return nil, err
	}
	v, err := s.sealer.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return v, nil
}

// SetToken stores token and raises the logged-in flag together.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return common.ErrInvalidToken
	}
	t, err := s.sealer.Seal([]byte(token))
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	f, err := s.sealer.Seal([]byte("true"))
	if err != nil {
		return fmt.Errorf("seal flag: %w", err)
	}
	return s.repo.SetMany(ctx, map[string][]byte{
		common.KeyUserToken:    t,
		common.KeyUserLoggedIn: f,
	})
}

// ClearToken removes every persisted session key, not only the token.
func (s *Store) ClearToken(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// GetToken returns the stored token and whether one is present.
func (s *Store) GetToken(ctx context.Context) (string, bool, error) {
	v, err := s.get(ctx, common.KeyUserToken)
	if err != nil {
		return "", false, err
	}
	if len(v) == 0 {
		return "", false, nil
	}
	return string(v), true, nil
}

// Token implements httpclient.TokenSource: "" when logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	t, _, err := s.GetToken(ctx)
	return t, err
}

func (s *Store) flag(ctx context.Context) bool {
	v, err := s.get(ctx, common.KeyUserLoggedIn)
	if err != nil || v == nil {
		return false
	}
	b, _ := strconv.ParseBool(string(v))
	return b
}

// SetLoggedIn writes the flag alone. Raising it without a token is refused.
func (s *Store) SetLoggedIn(ctx context.Context, v bool) error {
	if v {
		if _, ok, err := s.GetToken(ctx); err != nil {
			return err
		} else if !ok {
			return common.ErrNotLoggedIn
		}
	}
	return s.put(ctx, common.KeyUserLoggedIn, []byte(strconv.FormatBool(v)))
}

// IsLoggedIn is true only when the flag is set and a token is present.
func (s *Store) IsLoggedIn(ctx context.Context) bool {
	if !s.flag(ctx) {
		return false
	}
	_, ok, err := s.GetToken(ctx)
	return err == nil && ok
}

// Reconcile recomputes the session from the stored token. A missing or
// expired token wipes all session keys. It returns whether a usable token
// remains.
func (s *Store) Reconcile(ctx context.Context) (bool, error) {
	token, ok, err := s.GetToken(ctx)
	if err != nil {
		// unreadable (e.g. sealed under another device secret)
		return false, s.ClearToken(ctx)
	}
	if !ok || s.expired(token) {
		return false, s.ClearToken(ctx)
	}
	if !s.flag(ctx) {
		if err := s.put(ctx, common.KeyUserLoggedIn, []byte("true")); err != nil {
			return true, err
		}
	}
	return true, nil
}

// expired inspects exp without verifying the signature; the backend is the
// one that verifies. Tokens that are not JWTs never expire client-side.
func (s *Store) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(s.now())
}

func (s *Store) saveJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.put(ctx, key, b)
}

func (s *Store) loadJSON(ctx context.Context, key string, v any) (bool, error) {
	b, err := s.get(ctx, key)
	if err != nil || b == nil {
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) SaveUser(ctx context.Context, p models.UserProfile) error {
	return s.saveJSON(ctx, common.KeyCachedUser, p)
}

// LoadUser returns the cached profile, if any.
func (s *Store) LoadUser(ctx context.Context) (models.UserProfile, bool, error) {
	var p models.UserProfile
	ok, err := s.loadJSON(ctx, common.KeyCachedUser, &p)
	return p, ok, err
}

func (s *Store) SaveTasks(ctx context.Context, tasks []models.Task) error {
	return s.saveJSON(ctx, common.KeyCachedTasks, tasks)
}

func (s *Store) LoadTasks(ctx context.Context) ([]models.Task, bool, error) {
	var tasks []models.Task
	ok, err := s.loadJSON(ctx, common.KeyCachedTasks, &tasks)
	return tasks, ok, err
}

var ErrUnknownTabKey = errors.New("unknown tab key")

// SetTab remembers the last active tab of a page.
func (s *Store) SetTab(ctx context.Context, key, tab string) error {
	if key != common.KeyTasksActiveTab && key != common.KeySettingsActiveTab {
		return ErrUnknownTabKey
	}
	return s.put(ctx, key, []byte(tab))
}

// Tab returns the remembered tab or "" when none is stored.
func (s *Store) Tab(ctx context.Context, key string) string {
	v, err := s.get(ctx, key)
	if err != nil {
		return ""
	}
	return string(v)
}
