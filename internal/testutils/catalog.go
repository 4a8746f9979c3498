package testutils

import (
	"testing"

	"github.com/aretw0/docent/pkg/domain"
	"github.com/stretchr/testify/require"
)

// Catalog returns a small three-exhibit catalog used across tests.
func Catalog(t testing.TB) *domain.Catalog {
	t.Helper()
	cat, err := domain.NewCatalog(
		domain.Exhibit{
			Name:     "Sandbox",
			OneLiner: "Dig and watch the projected landscape change.",
			Questions: []domain.Question{
				{ID: "sandbox_q1", Text: "What did you build in the sand?"},
				{ID: "sandbox_q2", Text: "Was the projection easy to follow?"},
			},
		},
		domain.Exhibit{
			Name:     "Faces",
			OneLiner: "LiDAR sensors track your eyes.",
			Questions: []domain.Question{
				{ID: "faces_q1", Text: "Did being watched feel playful or creepy?"},
				{ID: "faces_q2", Text: "Would you change anything about Faces?"},
			},
		},
		domain.Exhibit{
			Name: "VR experience",
			Questions: []domain.Question{
				{ID: "vr_q1", Text: "How did the headset feel?"},
			},
		},
	)
	require.NoError(t, err)
	return cat
}
