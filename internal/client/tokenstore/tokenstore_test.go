package tokenstore

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyhustle/hustle/internal/client/localdb"
	"github.com/dailyhustle/hustle/internal/client/models"
	"github.com/dailyhustle/hustle/internal/client/repositories/metadata"
	"github.com/dailyhustle/hustle/internal/common"
	"github.com/dailyhustle/hustle/internal/cryptox"
)

func newRepo(t *testing.T) *metadata.SQLiteRepository {
	t.Helper()
	db, err := localdb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return metadata.NewSQLiteRepository(db)
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return s
}

func TestSetGetClearToken(t *testing.T) {
	ctx := context.Background()
	s := New(newRepo(t), nil)

	_, ok, err := s.GetToken(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, s.IsLoggedIn(ctx))

	require.NoError(t, s.SetToken(ctx, "opaque-token"))
	tok, ok, err := s.GetToken(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "opaque-token", tok)
	assert.True(t, s.IsLoggedIn(ctx))

	require.NoError(t, s.ClearToken(ctx))
	assert.False(t, s.IsLoggedIn(ctx))
}

func TestSetToken_RejectsEmpty(t *testing.T) {
	s := New(newRepo(t), nil)
	require.ErrorIs(t, s.SetToken(context.Background(), ""), common.ErrInvalidToken)
}

func TestClearToken_LeavesNoKeys(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	s := New(repo, nil)

	require.NoError(t, s.SetToken(ctx, "t"))
	require.NoError(t, s.SaveUser(ctx, models.UserProfile{Username: "ada"}))
	require.NoError(t, s.SaveTasks(ctx, []models.Task{{ID: "T1"}}))
	require.NoError(t, s.SetTab(ctx, common.KeyTasksActiveTab, "ongoing"))
	require.NoError(t, s.SetTab(ctx, common.KeySettingsActiveTab, "bank"))

	m, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, len(common.SessionKeys))

	require.NoError(t, s.ClearToken(ctx))
	m, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestIsLoggedIn_FlagWithoutTokenIsFalse(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	s := New(repo, nil)

	require.NoError(t, repo.Set(ctx, common.KeyUserLoggedIn, []byte("true")))
	assert.False(t, s.IsLoggedIn(ctx))
	require.ErrorIs(t, s.SetLoggedIn(ctx, true), common.ErrNotLoggedIn)
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("stale flag without token is dropped", func(t *testing.T) {
		repo := newRepo(t)
		s := New(repo, nil)
		require.NoError(t, repo.Set(ctx, common.KeyUserLoggedIn, []byte("true")))
		require.NoError(t, repo.Set(ctx, common.KeyCachedUser, []byte(`{"username":"old"}`)))

		ok, err := s.Reconcile(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		m, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, m)
	})

	t.Run("token without flag raises flag", func(t *testing.T) {
		repo := newRepo(t)
		s := New(repo, nil)
		require.NoError(t, repo.Set(ctx, common.KeyUserToken, []byte("opaque")))

		ok, err := s.Reconcile(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, s.IsLoggedIn(ctx))
	})

	t.Run("expired jwt is treated as absent", func(t *testing.T) {
		s := New(newRepo(t), nil)
		s.now = func() time.Time { return now }
		require.NoError(t, s.SetToken(ctx, signed(t, now.Add(-time.Minute))))

		ok, err := s.Reconcile(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		_, present, _ := s.GetToken(ctx)
		assert.False(t, present)
	})

	t.Run("live jwt is kept", func(t *testing.T) {
		s := New(newRepo(t), nil)
		s.now = func() time.Time { return now }
		require.NoError(t, s.SetToken(ctx, signed(t, now.Add(time.Hour))))

		ok, err := s.Reconcile(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestSealedAtRest(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	sealer, err := cryptox.NewDeviceSealer(filepath.Join(t.TempDir(), "device.key"))
	require.NoError(t, err)
	s := New(repo, sealer)

	require.NoError(t, s.SetToken(ctx, "secret-token"))

	raw, err := repo.Get(ctx, common.KeyUserToken)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(raw, []byte("secret-token")))

	tok, ok, err := s.GetToken(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "secret-token", tok)

	// a value sealed under another key is unreadable and reconciles away
	require.NoError(t, repo.Set(ctx, common.KeyUserToken, []byte("garbage-not-sealed")))
	ok, err = s.Reconcile(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(newRepo(t), nil)

	_, ok, err := s.LoadUser(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	p := models.DefaultUserData()
	p.Username = "ada"
	require.NoError(t, s.SaveUser(ctx, p))
	got, ok, err := s.LoadUser(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p, got)

	require.NoError(t, s.SaveTasks(ctx, []models.Task{{ID: "T1", Title: "Like"}}))
	tasks, ok, err := s.LoadTasks(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Like", tasks[0].Title)

	assert.Empty(t, s.Tab(ctx, common.KeyTasksActiveTab))
	require.NoError(t, s.SetTab(ctx, common.KeyTasksActiveTab, "completed"))
	assert.Equal(t, "completed", s.Tab(ctx, common.KeyTasksActiveTab))
	require.ErrorIs(t, s.SetTab(ctx, "other", "x"), ErrUnknownTabKey)
}
