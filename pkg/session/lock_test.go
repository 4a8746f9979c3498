package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/docent/pkg/domain"
	"github.com/aretw0/docent/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopStore struct{}

func (nopStore) Save(ctx context.Context, sessionID string, s *domain.Session) error { return nil }
func (nopStore) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}
func (nopStore) Delete(ctx context.Context, sessionID string) error { return nil }
func (nopStore) List(ctx context.Context) ([]string, error)         { return nil, nil }

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(nopStore{})
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_ = mgr.Update(ctx, sid, func(ctx context.Context, s *domain.Session) error { return nil })
		_ = mgr.Delete(ctx, sid)
	}

	assert.Empty(t, mgr.locks, "lock entries must be released once no holder remains")
}

type fakeLocker struct {
	mu       sync.Mutex
	keys     []string
	ttl      time.Duration
	unlocked int
	err      error
}

func (f *fakeLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, key)
	f.ttl = ttl
	return func(context.Context) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unlocked++
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	t.Run("acquires and releases around fn", func(t *testing.T) {
		locker := &fakeLocker{}
		mgr := NewManager(nopStore{}, WithLocker(locker), WithLockTTL(5*time.Second))

		err := mgr.Update(context.Background(), "s1", func(ctx context.Context, s *domain.Session) error { return nil })
		require.NoError(t, err)
		assert.Equal(t, []string{"s1"}, locker.keys)
		assert.Equal(t, 5*time.Second, locker.ttl)
		assert.Equal(t, 1, locker.unlocked)
	})

	t.Run("lock failure skips fn", func(t *testing.T) {
		locker := &fakeLocker{err: errors.New("redis down")}
		mgr := NewManager(nopStore{}, WithLocker(locker))

		called := false
		err := mgr.Update(context.Background(), "s1", func(ctx context.Context, s *domain.Session) error {
			called = true
			return nil
		})
		assert.ErrorContains(t, err, "redis down")
		assert.False(t, called)
		assert.Empty(t, mgr.locks)
	})
}
