package store

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dailyhustle/hustle/internal/client/gateway"
	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/client/validate"
)

// Bootstrap is the start-up load. It reconciles the persisted session,
// restores the caches and, when a token is present, loads profile and
// balance together. If that load fails the session is treated as invalid
// and logged out.
func (s *Store) Bootstrap(ctx context.Context) error {
	ok, err := s.tokens.Reconcile(ctx)
	if err != nil {
		s.log.Warn(ctx, "reconcile session", "error", err)
	}
	if tasks, found, err := s.tokens.LoadTasks(ctx); err == nil && found {
		s.mutate(func() { s.tasks = tasks })
	}
	if !ok {
		s.mutate(func() {
			s.loggedIn = false
			s.user = models.DefaultUserData()
		})
		return nil
	}

	cached, found, err := s.tokens.LoadUser(ctx)
	if err != nil {
		s.log.Warn(ctx, "load cached user", "error", err)
	}
	s.mutate(func() {
		s.loggedIn = true
		if found && s.user.ID == "" {
			s.user = cached
		}
	})

	gen, err := s.begin()
	if err != nil {
		return err
	}

	var (
		user gateway.UserResponse
		bal  models.Balance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = s.gw.GetUser(gctx)
		return err
	})
	g.Go(func() (err error) {
		bal, err = s.gw.GetBalance(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.Error(ctx, "load user data", "error", err)
		s.forceLogout(ctx, gen, "Failed to load user data")
		return err
	}

	var mergeErr error
	err = s.apply(gen, func() {
		merged, err := models.MergeProfile(s.user, user.Raw)
		if err != nil {
			mergeErr = err
			return
		}
		merged = merged.ApplyBalance(bal)
		merged.IsAuthenticated = true
		s.user = merged
	})
	if err != nil {
		return err
	}
	if mergeErr != nil {
		s.forceLogout(ctx, gen, "Failed to load user data")
		return mergeErr
	}
	s.persist(ctx, gen, persistUser)

	if k := user.Profile.KYC; k.Status != "" && !k.IsApproved {
		s.notify.Warning("Complete your KYC verification to unlock withdrawals.")
	}

	if _, err := s.FetchMyTasks(ctx); err != nil {
		s.log.Warn(ctx, "fetch my tasks", "error", err)
	}
	return nil
}

func (s *Store) setAuthenticating(v bool) {
	s.mutate(func() { s.authenticating = v })
}

// establish stores the new session token and starts a fresh generation.
func (s *Store) establish(ctx context.Context, res gateway.AuthResult) error {
	if err := s.tokens.SetToken(ctx, res.Token); err != nil {
		s.setAuthenticating(false)
		return err
	}
	s.mutate(func() {
		s.gen++
		s.loggedIn = true
		s.authenticating = false
		s.user = models.DefaultUserData()
		if len(res.User) > 0 {
			if merged, err := models.MergeProfile(s.user, res.User); err == nil {
				s.user = merged
			}
		}
	})
	return nil
}

func (s *Store) Login(ctx context.Context, identifier, password string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return s.invalid("identifier", "Please enter your username or email and password")
	}

	s.setAuthenticating(true)
	res, err := s.gw.Login(ctx, identifier, password)
	if err != nil {
		s.setAuthenticating(false)
		return s.fail(ctx, err, "Login failed")
	}
	if err := s.establish(ctx, res); err != nil {
		return s.fail(ctx, err, "Login failed")
	}
	s.notify.Success("Login successful!")
	return s.Bootstrap(ctx)
}

// OAuthLogin exchanges a federated identity token for a session.
func (s *Store) OAuthLogin(ctx context.Context, firebaseToken, referralCode string) error {
	if firebaseToken == "" {
		return s.invalid("firebase_token", "Sign-in was cancelled")
	}

	s.setAuthenticating(true)
	res, err := s.gw.OAuthLogin(ctx, firebaseToken, referralCode)
	if err != nil {
		s.setAuthenticating(false)
		return s.fail(ctx, err, "Sign-in failed")
	}
	if err := s.establish(ctx, res); err != nil {
		return s.fail(ctx, err, "Sign-in failed")
	}
	s.notify.Success("Signed in successfully!")
	return s.Bootstrap(ctx)
}

// Register creates the account. The backend emails an OTP that VerifyOTP
// consumes.
func (s *Store) Register(ctx context.Context, f models.RegisterForm) error {
	f.Email = strings.TrimSpace(f.Email)
	f.Username = strings.TrimSpace(f.Username)
	f.ReferralCode = strings.TrimSpace(f.ReferralCode)
	if f.Country == "" {
		f.Country = models.DefaultCountry
	}
	if err := validate.Register(f); err != nil {
		return s.reject(err)
	}
	if err := s.gw.Register(ctx, f); err != nil {
		return s.fail(ctx, err, "Registration failed.")
	}
	s.notify.Success("Registration successful! OTP sent to your email.")
	return nil
}

// VerifyOTP confirms the registration and signs in with the same
// credentials. When that sign-in fails the account still exists: the
// session stays anonymous and it reports false with a nil error.
func (s *Store) VerifyOTP(ctx context.Context, f models.RegisterForm, code string) (bool, error) {
	if err := validate.OTP(code); err != nil {
		return false, s.reject(err)
	}
	if err := s.gw.VerifyOTP(ctx, f.Email, code); err != nil {
		return false, s.fail(ctx, err, "Invalid or expired OTP.")
	}
	s.notify.Success("Account verified! Welcome aboard!")

	s.setAuthenticating(true)
	res, err := s.gw.Login(ctx, f.Identifier(), f.Password)
	if err == nil {
		err = s.establish(ctx, res)
	}
	if err != nil {
		s.setAuthenticating(false)
		s.log.Warn(ctx, "auto-login after verification", "error", err)
		s.notify.Error("Account created! Please login manually.")
		return false, nil
	}
	s.notify.Success("Login successful!")
	return true, s.Bootstrap(ctx)
}

// Logout clears every persisted session key before dropping the in-memory
// session. It does nothing when there is no session.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.RLock()
	was := s.loggedIn
	s.mu.RUnlock()
	_, hasToken, _ := s.tokens.GetToken(ctx)
	if !was && !hasToken {
		return nil
	}

	if err := s.endSession(ctx); err != nil {
		return s.fail(ctx, err, "Logout failed")
	}
	s.notify.Success("Logged out successfully")
	return nil
}

func (s *Store) endSession(ctx context.Context) error {
	s.persistMu.Lock()
	err := s.tokens.ClearToken(ctx)
	s.mu.Lock()
	s.gen++
	s.loggedIn = false
	s.authenticating = false
	s.user = models.DefaultUserData()
	snap, ls := s.snapshotLocked()
	s.mu.Unlock()
	s.persistMu.Unlock()

	emit(ls, snap)
	return err
}

// forceLogout ends the session started under gen, if it is still current.
func (s *Store) forceLogout(ctx context.Context, gen uint64, msg string) {
	s.mu.RLock()
	current := s.gen == gen && !s.closed
	s.mu.RUnlock()
	if !current {
		return
	}
	if err := s.endSession(ctx); err != nil {
		s.log.Error(ctx, "clear session", "error", err)
	}
	s.notify.Error(msg)
}

func (s *Store) reject(err error) error {
	s.notify.Error(userMessage(err, err.Error()))
	return err
}
