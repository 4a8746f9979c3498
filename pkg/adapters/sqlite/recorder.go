// Package sqlite persists feedback records in a SQLite database and derives
// exhibit popularity from them.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/docent/internal/logging"
	"github.com/aretw0/docent/pkg/domain"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Recorder stores one row per feedback record.
type Recorder struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Option configures the Recorder.
type Option func(*Recorder)

// WithLogger sets the logger used when stats queries fail.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Open opens (or creates) the database at path.
func Open(path string, opts ...Option) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open feedback db: %w", err)
	}
	r, err := New(db, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// New creates a recorder on db, running migrations on first use.
func New(db *sql.DB, opts ...Option) (*Recorder, error) {
	r := &Recorder{db: db, logger: logging.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.migrate(); err != nil {
		return nil, fmt.Errorf("migrate feedback db: %w", err)
	}
	return r, nil
}

func (r *Recorder) migrate() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS feedback_records (
			id          TEXT PRIMARY KEY,
			session_id  TEXT NOT NULL,
			type        TEXT NOT NULL DEFAULT '',
			exhibit     TEXT NOT NULL,
			question_id TEXT NOT NULL DEFAULT '',
			answer      TEXT NOT NULL DEFAULT '',
			ts          TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_feedback_session ON feedback_records(session_id);
	`)
	return err
}

// Record inserts rec.
func (r *Recorder) Record(ctx context.Context, rec domain.FeedbackRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = r.now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO feedback_records (id, session_id, type, exhibit, question_id, answer, ts)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), rec.SessionID, rec.Type, rec.Exhibit, rec.QuestionID, rec.Answer, rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert feedback record: %w", err)
	}
	return nil
}

// Session returns every record of a session in insertion order.
func (r *Recorder) Session(ctx context.Context, sessionID string) ([]domain.FeedbackRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, type, exhibit, question_id, answer, ts
		 FROM feedback_records WHERE session_id = ? ORDER BY ts ASC, rowid ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FeedbackRecord
	for rows.Next() {
		var rec domain.FeedbackRecord
		if err := rows.Scan(&rec.SessionID, &rec.Type, &rec.Exhibit, &rec.QuestionID, &rec.Answer, &rec.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// TopExhibits returns the n most selected exhibits, most popular first.
// Query failures degrade to nil.
func (r *Recorder) TopExhibits(ctx context.Context, n int) []string {
	if n <= 0 {
		return nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT exhibit FROM feedback_records
		 WHERE type = ? AND exhibit <> ?
		 GROUP BY exhibit ORDER BY COUNT(*) DESC, MIN(rowid) ASC LIMIT ?`,
		domain.RecordTypeSelect, domain.OverallExhibition, n,
	)
	if err != nil {
		r.logger.Error("Stats query failed", "error", err)
		return nil
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			r.logger.Error("Stats scan failed", "error", err)
			return nil
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Stats query failed", "error", err)
		return nil
	}
	return names
}

// Close closes the underlying database.
func (r *Recorder) Close() error {
	return r.db.Close()
}
