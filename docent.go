package docent

import (
	"context"
	"log/slog"

	"github.com/aretw0/docent/internal/logging"
	"github.com/aretw0/docent/internal/runtime"
	"github.com/aretw0/docent/pkg/adapters/memory"
	"github.com/aretw0/docent/pkg/domain"
	"github.com/aretw0/docent/pkg/ports"
	"github.com/aretw0/docent/pkg/session"
)

// Reply is the outcome of a single visitor turn.
type Reply = runtime.Reply

// FallbackReply is returned whenever the oracle fails to produce a reply.
const FallbackReply = runtime.FallbackReply

// Engine is the high-level entry point for the docent library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine

	store    ports.SessionStore
	locker   ports.DistributedLocker
	recorder ports.FeedbackRecorder
	stats    ports.VisitStats
	maxTurns int
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore persists sessions somewhere other than process memory.
func WithStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker serializes sessions across replicas sharing a store.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithRecorder sets the sink for answers and exhibit selections.
func WithRecorder(r ports.FeedbackRecorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithVisitStats supplies the most-visited exhibits for suggestions.
func WithVisitStats(s ports.VisitStats) Option {
	return func(e *Engine) {
		e.stats = s
	}
}

// WithMaxTurns sets how many utterances a conversation accepts before closing.
func WithMaxTurns(n int) Option {
	return func(e *Engine) {
		e.maxTurns = n
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine over an exhibit catalog and an oracle.
// Without WithStore, sessions live in memory and vanish on restart.
func New(cat *domain.Catalog, oracle ports.Oracle, opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	managerOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(eng.locker))
	}

	eng.runtime = runtime.NewEngine(cat, oracle,
		session.NewManager(eng.store, managerOpts...),
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithRecorder(eng.recorder),
		runtime.WithVisitStats(eng.stats),
		runtime.WithMaxTurns(eng.maxTurns),
	)
	return eng
}

// Start discards any prior state for the session and returns a greeting.
func (e *Engine) Start(ctx context.Context, sessionID string) (string, error) {
	return e.runtime.Start(ctx, sessionID)
}

// Turn processes one visitor utterance and returns the reply.
func (e *Engine) Turn(ctx context.Context, sessionID, text string) (*Reply, error) {
	return e.runtime.Turn(ctx, sessionID, text)
}

// Catalog returns the exhibit catalog.
func (e *Engine) Catalog() *domain.Catalog {
	return e.runtime.Catalog()
}

// Sessions returns the session manager, for inspection tools.
func (e *Engine) Sessions() *session.Manager {
	return e.runtime.Sessions()
}
