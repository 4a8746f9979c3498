package ports

import "context"

// VisitStats exposes the exhibits visitors spent the most time at.
// Implementations degrade to nil on missing or malformed data.
type VisitStats interface {
	TopExhibits(ctx context.Context, n int) []string
}
