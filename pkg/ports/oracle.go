package ports

import (
	"context"

	"github.com/aretw0/docent/pkg/domain"
)

// Oracle is the text-completion service the engine delegates phrasing to.
// Classification calls pass an empty history.
type Oracle interface {
	Generate(ctx context.Context, system string, history []domain.Message) (string, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, system string, history []domain.Message) (string, error)

// Generate calls f.
func (f OracleFunc) Generate(ctx context.Context, system string, history []domain.Message) (string, error) {
	return f(ctx, system, history)
}
