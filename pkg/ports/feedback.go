package ports

import (
	"context"
	"errors"

	"github.com/aretw0/docent/pkg/domain"
)

// FeedbackRecorder appends audit records. Implementations stamp the record
// timestamp when it is zero.
type FeedbackRecorder interface {
	Record(ctx context.Context, rec domain.FeedbackRecord) error
}

type multiRecorder []FeedbackRecorder

// MultiRecorder fans a record out to every recorder. All recorders are
// attempted; their errors are joined.
func MultiRecorder(recorders ...FeedbackRecorder) FeedbackRecorder {
	var flat multiRecorder
	for _, r := range recorders {
		if r != nil {
			flat = append(flat, r)
		}
	}
	return flat
}

func (m multiRecorder) Record(ctx context.Context, rec domain.FeedbackRecord) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
