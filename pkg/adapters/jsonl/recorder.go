// Package jsonl appends feedback records to a JSON Lines file.
package jsonl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/docent/pkg/domain"
)

// DefaultPath is used when New is given an empty path.
const DefaultPath = "data/feedback_log.jsonl"

// Recorder writes one JSON object per line. The file is opened for each
// record so that external rotation is picked up.
type Recorder struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// New creates a recorder appending to path.
func New(path string) *Recorder {
	if path == "" {
		path = DefaultPath
	}
	return &Recorder{path: path, now: time.Now}
}

// Path returns the log file location.
func (r *Recorder) Path() string {
	return r.path
}

// Record appends rec as a single line, creating the parent directory on demand.
func (r *Recorder) Record(ctx context.Context, rec domain.FeedbackRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = r.now().UTC()
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open feedback log: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("failed to append record: %w", err)
	}
	return f.Close()
}
