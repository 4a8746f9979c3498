package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/docent/pkg/domain"
	"github.com/aretw0/docent/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]*domain.Session
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	time.Sleep(2 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]*domain.Session)
	}
	s.data[sessionID] = sess.Clone()
	return nil
}

func (s *SlowStore) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	time.Sleep(2 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.data[sessionID]; ok {
		return sess.Clone(), nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *SlowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestManager_UpdateSerializesSameSession(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	ctx := context.Background()
	id := "race-test"

	var wg sync.WaitGroup
	concurrentTurns := 10

	// Read-modify-write without locking would lose increments.
	for i := 0; i < concurrentTurns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := manager.Update(ctx, id, func(ctx context.Context, s *domain.Session) error {
				s.TurnCount++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, concurrentTurns, s.TurnCount)
}

func TestManager_UpdateCreatesLazily(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	ctx := context.Background()

	var seen *domain.Session
	err := manager.Update(ctx, "fresh", func(ctx context.Context, s *domain.Session) error {
		seen = s.Clone()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", seen.ID)
	assert.Zero(t, seen.TurnCount)
	assert.Empty(t, seen.Messages)
}

func TestManager_UpdateFailureDoesNotSave(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	ctx := context.Background()
	boom := errors.New("boom")

	err := manager.Update(ctx, "s1", func(ctx context.Context, s *domain.Session) error {
		s.TurnCount = 99
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = manager.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_ResetDiscardsPriorState(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	ctx := context.Background()

	require.NoError(t, manager.Update(ctx, "s1", func(ctx context.Context, s *domain.Session) error {
		s.SelectedExhibit = "Faces"
		s.MarkAsked("faces_q1")
		return nil
	}))

	require.NoError(t, manager.Reset(ctx, "s1", func(ctx context.Context, s *domain.Session) error {
		s.Append(domain.RoleAssistant, "hello")
		return nil
	}))

	s, err := manager.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, s.SelectedExhibit)
	assert.False(t, s.Asked("faces_q1"))
	assert.Len(t, s.Messages, 1)
}

func TestManager_RejectsEmptyID(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	noop := func(ctx context.Context, s *domain.Session) error { return nil }

	assert.ErrorIs(t, manager.Update(context.Background(), "", noop), domain.ErrEmptySessionID)
	assert.ErrorIs(t, manager.Reset(context.Background(), "", noop), domain.ErrEmptySessionID)
}

func TestManager_DistinctSessionsDoNotBlock(t *testing.T) {
	manager := session.NewManager(&SlowStore{})
	ctx := context.Background()

	entered := make(chan struct{})
	releaseA := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = manager.Update(ctx, "a", func(ctx context.Context, s *domain.Session) error {
			close(entered)
			<-releaseA
			return nil
		})
		close(done)
	}()
	<-entered

	err := manager.Update(ctx, "b", func(ctx context.Context, s *domain.Session) error { return nil })
	assert.NoError(t, err, "session b must proceed while a is held")

	close(releaseA)
	<-done
}
