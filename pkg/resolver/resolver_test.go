package resolver_test

import (
	"testing"

	"github.com/aretw0/docent/pkg/domain"
	"github.com/aretw0/docent/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T, names ...string) *domain.Catalog {
	t.Helper()
	exhibits := make([]domain.Exhibit, 0, len(names))
	for _, n := range names {
		exhibits = append(exhibits, domain.Exhibit{Name: n})
	}
	cat, err := domain.NewCatalog(exhibits...)
	require.NoError(t, err)
	return cat
}

func TestResolve(t *testing.T) {
	r := resolver.New(newCatalog(t, "Sandbox", "Faces", "Custom Exhibit"))

	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"catalog name", "Tell me about the Sandbox", "Sandbox", true},
		{"case insensitive", "CUSTOM EXHIBIT please", "Custom Exhibit", true},
		{"roster only", "what about physarum?", "Physarum", true},
		{"keyword", "the headset made me dizzy", "VR experience", true},
		{"multi word keyword", "I liked the machine learning one", "Asan.AI", true},
		{"no match", "yes", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_PriorityOrder(t *testing.T) {
	r := resolver.New(newCatalog(t, "Faces"))

	// "sand" is a Sandbox keyword and "Traces" a roster name; the catalog name wins.
	got, _ := r.Resolve("faces in the sand traces")
	assert.Equal(t, "Faces", got)

	// Roster beats keyword even though "sand" comes first in the text.
	got, _ = r.Resolve("sand and Traces")
	assert.Equal(t, "Traces", got)

	// Within the catalog, catalog order beats position in the text.
	r = resolver.New(newCatalog(t, "Sandbox", "Faces"))
	got, _ = r.Resolve("Faces or Sandbox")
	assert.Equal(t, "Sandbox", got)
}

func TestResolve_TableOrderDecidesTies(t *testing.T) {
	r := resolver.New(nil)

	// "ai" (Asan.AI) precedes "chat" (Chatbot) in the table.
	got, ok := r.Resolve("a chat about air")
	require.True(t, ok)
	assert.Equal(t, "Asan.AI", got)
}

func TestResolve_IsPure(t *testing.T) {
	r := resolver.New(newCatalog(t, "Sandbox"))
	first, _ := r.Resolve("the loud server")
	for i := 0; i < 5; i++ {
		got, _ := r.Resolve("the loud server")
		assert.Equal(t, first, got)
	}
	assert.Equal(t, "Server cabinet", first)
}

func TestResolve_CustomTable(t *testing.T) {
	r := resolver.New(nil,
		resolver.WithRoster(nil),
		resolver.WithTable(resolver.Group("Sandbox", "SHOVEL")),
	)
	got, ok := r.Resolve("where is the shovel")
	require.True(t, ok)
	assert.Equal(t, "Sandbox", got)

	_, ok = r.Resolve("physarum")
	assert.False(t, ok)
}

func TestClosedSet(t *testing.T) {
	r := resolver.New(newCatalog(t, "Faces", "Custom Exhibit"))
	set := r.ClosedSet()

	require.GreaterOrEqual(t, len(set), 3)
	assert.Equal(t, []string{"Faces", "Custom Exhibit", "D4A"}, set[:3])
	assert.Len(t, set, 24)
}

func TestDefaultTable(t *testing.T) {
	table := resolver.DefaultTable()
	roster := resolver.DefaultRoster()

	assert.Len(t, roster, 23)
	assert.Equal(t, resolver.Keyword{Phrase: "d4a", Exhibit: "D4A"}, table[0])
	assert.Equal(t, "VR experience", table[len(table)-1].Exhibit)
	for _, kw := range table {
		assert.Contains(t, roster, kw.Exhibit)
	}
}
