package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/docent/pkg/adapters/memory"
	"github.com/aretw0/docent/pkg/domain"
	"github.com/aretw0/docent/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store)
}

func TestMemoryStore_SaveCopies(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	s := domain.NewSession("s1")
	require.NoError(t, store.Save(ctx, "s1", s))
	s.MarkAsked("after-save")

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, loaded.Asked("after-save"))
}

func TestRecorder_StampsTimestamp(t *testing.T) {
	rec := memory.NewRecorder()
	require.NoError(t, rec.Record(context.Background(), domain.NewSelectRecord("s1", "Faces")))

	records := rec.Records()
	require.Len(t, records, 1)
	assert.False(t, records[0].Timestamp.IsZero())
	assert.Equal(t, "Faces", records[0].Exhibit)
}
