package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/docent/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		s := domain.NewSession(sessionID)
		s.SelectedExhibit = "Faces"
		s.TurnCount = 3
		s.SelectionAttempts = 1
		s.LastQuestionID = "faces_q1"
		s.MarkAsked("faces_q1")
		s.Append(domain.RoleUser, "Tell me about Faces")

		require.NoError(t, store.Save(ctx, sessionID, s), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "Faces", loaded.SelectedExhibit)
		assert.Equal(t, 3, loaded.TurnCount)
		assert.Equal(t, 1, loaded.SelectionAttempts)
		assert.Equal(t, "faces_q1", loaded.LastQuestionID)
		assert.True(t, loaded.Asked("faces_q1"))
		require.Len(t, loaded.Messages, 1)
		assert.Equal(t, "Tell me about Faces", loaded.Messages[0].Content)
	})

	t.Run("Loaded copy is isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.MarkAsked("mutated")

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.False(t, again.Asked("mutated"))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewSession(sessionID)))
		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSession(id1))
		_ = store.Save(ctx, id2, domain.NewSession(id2))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
