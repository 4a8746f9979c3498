// Package lidar reads visitor dwell statistics exported by the floor sensors.
package lidar

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/aretw0/docent/internal/logging"
)

// DefaultPath is the export location used by the sensor pipeline.
const DefaultPath = "data/lidar_stats.json"

// MinEntries is the smallest export considered meaningful.
const MinEntries = 3

// Stats reads a JSON array of exhibit names ordered by dwell time.
// The file is re-read on every call so a new export takes effect immediately.
type Stats struct {
	path   string
	logger *slog.Logger
}

// Option configures Stats.
type Option func(*Stats)

// WithLogger sets the logger for read failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stats) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Stats reader for path.
func New(path string, opts ...Option) *Stats {
	if path == "" {
		path = DefaultPath
	}
	s := &Stats{path: path, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TopExhibits returns the first n names of the export. A missing file,
// malformed JSON or fewer than MinEntries names yield nil.
func (s *Stats) TopExhibits(ctx context.Context, n int) []string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("Failed to read LiDAR file", "path", s.path, "error", err)
		}
		return nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		s.logger.Error("Failed to read LiDAR file", "path", s.path, "error", err)
		return nil
	}
	if len(names) < MinEntries || n <= 0 {
		return nil
	}
	if n > len(names) {
		n = len(names)
	}
	return names[:n]
}
