package store

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/common"
)

// RefetchUserData reloads the profile and merges it over the current one.
// A 401 or 403 ends the session.
func (s *Store) RefetchUserData(ctx context.Context) error {
	if !s.UserLoggedIn() {
		return common.ErrNotLoggedIn
	}
	gen, err := s.begin()
	if err != nil {
		return err
	}

	res, err := s.gw.GetUser(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			s.forceLogout(ctx, gen, "Session expired. Please login again.")
			return err
		}
		s.log.Warn(ctx, "refetch user", "error", err)
		s.notify.Error("Failed to refresh user data")
		return err
	}

	var mergeErr error
	err = s.apply(gen, func() {
		merged, err := models.MergeProfile(s.user, res.Raw)
		if err != nil {
			mergeErr = err
			return
		}
		merged.IsAuthenticated = true
		s.user = merged
	})
	if err != nil {
		return err
	}
	if mergeErr != nil {
		return s.fail(ctx, mergeErr, "Failed to refresh user data")
	}
	s.persist(ctx, gen, persistUser)
	return nil
}

// FetchMyTasks reloads the user's proofs into UserData().Tasks.
func (s *Store) FetchMyTasks(ctx context.Context) ([]models.MyTask, error) {
	if !s.UserLoggedIn() {
		return nil, common.ErrNotLoggedIn
	}
	gen, err := s.begin()
	if err != nil {
		return nil, err
	}

	proofs, err := s.gw.ListMyTasks(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			s.forceLogout(ctx, gen, "Session expired. Please login again.")
		}
		return nil, err
	}
	out := make([]models.MyTask, 0, len(proofs))
	for _, p := range proofs {
		out = append(out, p.Flatten())
	}

	if err := s.apply(gen, func() { s.user.Tasks = out }); err != nil {
		return nil, err
	}
	s.persist(ctx, gen, persistUser)
	return out, nil
}

// FetchAllTasks reloads the task catalog. It does not need a session.
func (s *Store) FetchAllTasks(ctx context.Context) ([]models.Task, error) {
	gen, err := s.begin()
	if err != nil {
		return nil, err
	}
	tasks, err := s.gw.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.apply(gen, func() { s.tasks = tasks }); err != nil {
		return nil, err
	}
	s.persist(ctx, gen, persistTasks)
	return tasks, nil
}

// RefreshUserData reloads profile, catalog and proofs concurrently. Errors
// are logged, not returned; each commit merges into whatever state is
// current when it lands.
func (s *Store) RefreshUserData(ctx context.Context) {
	loggedIn := s.UserLoggedIn()

	var g errgroup.Group
	g.Go(func() error {
		_, err := s.FetchAllTasks(ctx)
		return err
	})
	if loggedIn {
		g.Go(func() error { return s.RefetchUserData(ctx) })
		g.Go(func() error {
			_, err := s.FetchMyTasks(ctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Warn(ctx, "refresh user data", "error", err)
	}
}

// refreshBalance re-reads the wallet after a money movement.
func (s *Store) refreshBalance(ctx context.Context) error {
	gen, err := s.begin()
	if err != nil {
		return err
	}
	bal, err := s.gw.GetBalance(ctx)
	if err != nil {
		return err
	}
	if err := s.apply(gen, func() { s.user = s.user.ApplyBalance(bal) }); err != nil {
		return err
	}
	s.persist(ctx, gen, persistUser)
	return nil
}
