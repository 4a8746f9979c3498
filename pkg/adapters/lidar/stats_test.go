package lidar_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/docent/pkg/adapters/lidar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_TopExhibits(t *testing.T) {
	tests := []struct {
		name    string
		content string
		n       int
		want    []string
	}{
		{"Top Three", `["Faces","Sandbox","VR experience","Physarum"]`, 3, []string{"Faces", "Sandbox", "VR experience"}},
		{"Fewer Than Minimum", `["Faces","Sandbox"]`, 3, nil},
		{"N Larger Than Export", `["Faces","Sandbox","Physarum"]`, 5, []string{"Faces", "Sandbox", "Physarum"}},
		{"Malformed", `{"Faces": 3}`, 3, nil},
		{"Empty", `[]`, 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lidar.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			assert.Equal(t, tt.want, lidar.New(path).TopExhibits(context.Background(), tt.n))
		})
	}
}

func TestStats_MissingFile(t *testing.T) {
	s := lidar.New(filepath.Join(t.TempDir(), "absent.json"))
	assert.Nil(t, s.TopExhibits(context.Background(), 3))
}

func TestStats_PicksUpNewExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lidar.json")
	s := lidar.New(path)
	assert.Nil(t, s.TopExhibits(context.Background(), 3))

	require.NoError(t, os.WriteFile(path, []byte(`["A","B","C"]`), 0644))
	assert.Equal(t, []string{"A", "B", "C"}, s.TopExhibits(context.Background(), 3))
}
