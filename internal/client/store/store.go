// Package store is the process-wide session and app-data state: the login
// flag, the merged user profile, the task catalog and the user's proofs.
// Every mutation goes through the backend and is followed by a re-fetch of
// what it affected; money fields are never updated locally.
package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dailyhustle/hustle/internal/client/httpclient"
	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/client/notify"
	"github.com/dailyhustle/hustle/internal/client/validate"
	"github.com/dailyhustle/hustle/internal/common"
	"github.com/dailyhustle/hustle/internal/logging"
)

// State is the session state. ONBOARDING_REQUIRED and ACTIVE are derived
// from the profile on every read.
type State string

const (
	StateAnonymous          State = "ANONYMOUS"
	StateAuthenticating     State = "AUTHENTICATING"
	StateAuthenticated      State = "AUTHENTICATED"
	StateOnboardingRequired State = "ONBOARDING_REQUIRED"
	StateActive             State = "ACTIVE"
)

// Snapshot is a copy of the store handed to listeners.
type Snapshot struct {
	State    State
	LoggedIn bool
	User     models.UserProfile
	Tasks    []models.Task
}

type Store struct {
	gw     Gateway
	tokens Tokens
	notify notify.Notifier
	log    logging.Logger

	mu             sync.RWMutex
	loggedIn       bool
	authenticating bool
	user           models.UserProfile
	tasks          []models.Task
	// gen changes whenever the session does; results started under an older
	// gen are dropped.
	gen       uint64
	closed    bool
	listeners map[int]func(Snapshot)
	nextID    int

	// persistMu orders cache writes against logout's clear.
	persistMu sync.Mutex
}

// New builds the store. Call Bootstrap to load persisted state.
func New(d Deps) *Store {
	n := d.Notifier
	if n == nil {
		n = notify.Discard{}
	}
	log := d.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Store{
		gw:        d.Gateway,
		tokens:    d.Tokens,
		notify:    n,
		log:       log,
		user:      models.DefaultUserData(),
		tasks:     []models.Task{},
		listeners: map[int]func(Snapshot){},
	}
}

// Close detaches listeners and makes every in-flight result stale.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
	s.listeners = map[int]func(Snapshot){}
}

func (s *Store) UserLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// UserData returns a copy of the current profile.
func (s *Store) UserData() models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.user)
}

// Tasks returns a copy of the catalog.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	switch {
	case s.authenticating:
		return StateAuthenticating
	case !s.loggedIn:
		return StateAnonymous
	case !s.user.IsAuthenticated:
		return StateAuthenticated
	case models.NeedsOnboarding(s.user):
		return StateOnboardingRequired
	default:
		return StateActive
	}
}

// Subscribe registers fn for every change. The returned func removes it.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// SetUserLoggedIn writes the flag. Raising it needs a stored token.
func (s *Store) SetUserLoggedIn(ctx context.Context, v bool) error {
	if err := s.tokens.SetLoggedIn(ctx, v); err != nil {
		return err
	}
	s.mutate(func() { s.loggedIn = v })
	return nil
}

// ActiveTab returns the remembered tab of a page, "" when none.
func (s *Store) ActiveTab(ctx context.Context, key string) string {
	return s.tokens.Tab(ctx, key)
}

func (s *Store) SetActiveTab(ctx context.Context, key, tab string) error {
	return s.tokens.SetTab(ctx, key, tab)
}

// begin returns the generation a new async operation runs under.
func (s *Store) begin() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, common.ErrStoreClosed
	}
	return s.gen, nil
}

// apply runs fn under the lock only if the session is still gen.
func (s *Store) apply(gen uint64, fn func()) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return common.ErrStoreClosed
	}
	if s.gen != gen {
		s.mu.Unlock()
		return common.ErrStaleResponse
	}
	fn()
	snap, ls := s.snapshotLocked()
	s.mu.Unlock()
	emit(ls, snap)
	return nil
}

// mutate applies fn unconditionally and notifies listeners.
func (s *Store) mutate(fn func()) {
	s.mu.Lock()
	fn()
	snap, ls := s.snapshotLocked()
	s.mu.Unlock()
	emit(ls, snap)
}

func (s *Store) snapshotLocked() (Snapshot, []func(Snapshot)) {
	snap := Snapshot{
		State:    s.stateLocked(),
		LoggedIn: s.loggedIn,
		User:     cloneUser(s.user),
		Tasks:    slices.Clone(s.tasks),
	}
	ls := make([]func(Snapshot), 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	return snap, ls
}

func emit(ls []func(Snapshot), snap Snapshot) {
	for _, l := range ls {
		l(snap)
	}
}

func cloneUser(u models.UserProfile) models.UserProfile {
	u.Tasks = slices.Clone(u.Tasks)
	u.BankAccounts = slices.Clone(u.BankAccounts)
	u.PreferredJobCategories = slices.Clone(u.PreferredJobCategories)
	return u
}

type persistKind int

const (
	persistUser persistKind = 1 << iota
	persistTasks
)

// persist writes the current state through to the token store cache when
// the session is still gen.
func (s *Store) persist(ctx context.Context, gen uint64, what persistKind) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	if s.closed || s.gen != gen {
		s.mu.RUnlock()
		return
	}
	user, tasks, loggedIn := cloneUser(s.user), slices.Clone(s.tasks), s.loggedIn
	s.mu.RUnlock()

	if what&persistUser != 0 && loggedIn {
		if err := s.tokens.SaveUser(ctx, user); err != nil {
			s.log.Warn(ctx, "cache user", "error", err)
		}
	}
	if what&persistTasks != 0 {
		if err := s.tokens.SaveTasks(ctx, tasks); err != nil {
			s.log.Warn(ctx, "cache tasks", "error", err)
		}
	}
}

// userMessage picks the text to show for err.
func userMessage(err error, fallback string) string {
	var de *models.DomainError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	var ve *validate.Error
	if errors.As(err, &ve) {
		return ve.Message
	}
	return httpclient.Message(err, fallback)
}

// fail notifies the user of err and returns it.
func (s *Store) fail(ctx context.Context, err error, fallback string) error {
	s.log.Warn(ctx, fallback, "error", err)
	s.notify.Error(userMessage(err, fallback))
	return err
}

func (s *Store) invalid(field, msg string) error {
	err := &validate.Error{Field: field, Message: msg}
	s.notify.Error(msg)
	return err
}
