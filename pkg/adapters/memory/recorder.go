package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/docent/pkg/domain"
)

// Recorder keeps feedback records in memory. Useful for tests and the
// interactive chat command.
type Recorder struct {
	mu      sync.Mutex
	records []domain.FeedbackRecord
	now     func() time.Time
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// Record appends rec, stamping the timestamp when missing.
func (r *Recorder) Record(ctx context.Context, rec domain.FeedbackRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = r.now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

// Records returns a snapshot of everything recorded so far.
func (r *Recorder) Records() []domain.FeedbackRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.FeedbackRecord(nil), r.records...)
}
