package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/docent/pkg/adapters/redis"
	"github.com/aretw0/docent/pkg/domain"
	"github.com/aretw0/docent/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunSessionStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	s := domain.NewSession("session-ttl")
	s.SelectedExhibit = "Sandbox"
	require.NoError(t, store.Save(ctx, "session-ttl", s))

	loaded, err := store.Load(ctx, "session-ttl")
	require.NoError(t, err)
	assert.Equal(t, "Sandbox", loaded.SelectedExhibit)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "session-ttl")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("museum:"))

	require.NoError(t, store.Save(context.Background(), "s1", domain.NewSession("s1")))
	assert.True(t, mr.Exists("museum:s1"))
}
