package metadata

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server when HUSTLE_TEST_REDIS_ADDR is set.
func setupRedis(t *testing.T) *RedisRepository {
	t.Helper()
	addr := os.Getenv("HUSTLE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("HUSTLE_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	r := NewRedisRepository(client, "test:"+uuid.NewString()+":")
	t.Cleanup(func() { _ = r.Clear(context.Background()) })
	return r
}

func TestRedis_DefaultPrefix(t *testing.T) {
	r := NewRedisRepository(nil, "")
	assert.Equal(t, "dailyhustle:userToken", r.key("userToken"))
}

func TestRedis_RoundTrip(t *testing.T) {
	r := setupRedis(t)
	ctx := context.Background()

	v, err := r.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, r.SetMany(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}))
	require.NoError(t, r.Set(ctx, "c", []byte("3")))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2"), "c": []byte("3")}, m)

	require.NoError(t, r.Delete(ctx, "a"))
	v, err = r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, r.Clear(ctx))
	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}
