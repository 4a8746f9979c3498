// Package cli wires configuration into a runnable docent application for the
// command line entry points.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/docent"
	"github.com/aretw0/docent/internal/config"
	"github.com/aretw0/docent/pkg/adapters/file"
	"github.com/aretw0/docent/pkg/adapters/gcpspeech"
	"github.com/aretw0/docent/pkg/adapters/gemini"
	"github.com/aretw0/docent/pkg/adapters/jsonl"
	"github.com/aretw0/docent/pkg/adapters/lidar"
	"github.com/aretw0/docent/pkg/adapters/memory"
	"github.com/aretw0/docent/pkg/adapters/openai"
	"github.com/aretw0/docent/pkg/adapters/redis"
	"github.com/aretw0/docent/pkg/adapters/sqlite"
	"github.com/aretw0/docent/pkg/catalog"
	"github.com/aretw0/docent/pkg/domain"
	"github.com/aretw0/docent/pkg/observability"
	"github.com/aretw0/docent/pkg/persistence/middleware"
	"github.com/aretw0/docent/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// App is a fully wired engine plus the adapters the transports need.
type App struct {
	Engine      *docent.Engine
	Catalog     *domain.Catalog
	Transcriber ports.Transcriber
	Synthesizer ports.Synthesizer
	Registry    *prometheus.Registry
	Logger      *slog.Logger

	closers []func() error
}

// Close releases databases and clients opened by Build.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Build creates every adapter named by cfg and the engine on top of them.
// The catalog degrades to empty when it cannot be read.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &App{Logger: logger}
	ok := false
	defer func() {
		if !ok {
			app.Close()
		}
	}()

	app.Catalog = catalog.LoadOrEmpty(cfg.Catalog.Path, logger)

	oracle, err := buildOracle(ctx, cfg)
	if err != nil {
		return nil, err
	}

	hooks := []domain.LifecycleHooks{observability.LoggingHooks(logger)}
	if cfg.Metrics.Enabled {
		app.Registry = prometheus.NewRegistry()
		app.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := observability.NewMetrics(app.Registry)
		oracle = metrics.InstrumentOracle(oracle)
		hooks = append(hooks, metrics.Hooks())
	}

	opts := []docent.Option{
		docent.WithLogger(logger),
		docent.WithMaxTurns(cfg.Conversation.MaxTurns),
		docent.WithLifecycleHooks(observability.Combine(hooks...)),
	}

	store, locker, err := app.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts, docent.WithStore(store))
	if locker != nil {
		opts = append(opts, docent.WithLocker(locker))
	}

	var recorders []ports.FeedbackRecorder
	var db *sqlite.Recorder
	if cfg.Feedback.JSONLPath != "" {
		recorders = append(recorders, jsonl.New(cfg.Feedback.JSONLPath))
	}
	if cfg.Feedback.SQLitePath != "" {
		db, err = sqlite.Open(cfg.Feedback.SQLitePath, sqlite.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, db.Close)
		recorders = append(recorders, db)
	}
	if len(recorders) > 0 {
		opts = append(opts, docent.WithRecorder(ports.MultiRecorder(recorders...)))
	}

	switch cfg.Stats.Provider {
	case "lidar":
		opts = append(opts, docent.WithVisitStats(lidar.New(cfg.Stats.LidarPath, lidar.WithLogger(logger))))
	case "sqlite":
		opts = append(opts, docent.WithVisitStats(db))
	}

	if err := app.buildSpeech(ctx, cfg); err != nil {
		return nil, err
	}

	app.Engine = docent.New(app.Catalog, oracle, opts...)
	ok = true
	return app, nil
}

func buildOracle(ctx context.Context, cfg *config.Config) (ports.Oracle, error) {
	switch cfg.Oracle.Provider {
	case "gemini":
		oracle, err := gemini.New(ctx, cfg.Gemini.APIKey,
			gemini.WithModel(cfg.Gemini.Model),
			gemini.WithMaxTokens(cfg.Oracle.MaxTokens),
			gemini.WithTemperature(cfg.Oracle.Temperature),
		)
		if err != nil {
			return nil, err
		}
		return oracle, nil
	default:
		return newOpenAI(cfg), nil
	}
}

func newOpenAI(cfg *config.Config) *openai.Client {
	return openai.New(cfg.OpenAI.APIKey,
		openai.WithBaseURL(cfg.OpenAI.BaseURL),
		openai.WithChatModel(cfg.OpenAI.Model),
		openai.WithTranscribeModel(cfg.OpenAI.STTModel),
		openai.WithSpeechModel(cfg.OpenAI.TTSModel),
		openai.WithVoice(cfg.OpenAI.Voice),
		openai.WithMaxTokens(cfg.Oracle.MaxTokens),
		openai.WithTemperature(cfg.Oracle.Temperature),
	)
}

func (a *App) buildSpeech(ctx context.Context, cfg *config.Config) error {
	if cfg.OpenAI.APIKey != "" {
		a.Synthesizer = newOpenAI(cfg)
	}
	switch cfg.Speech.STTProvider {
	case "gcp":
		t, err := gcpspeech.New(ctx, gcpspeech.ClientOptionsFromEnv(), gcpspeech.WithModel(cfg.Speech.GCPModel))
		if err != nil {
			return err
		}
		a.closers = append(a.closers, t.Close)
		a.Transcriber = t
	case "openai", "":
		if cfg.OpenAI.APIKey != "" {
			a.Transcriber = newOpenAI(cfg)
		}
	}
	return nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, ports.DistributedLocker, error) {
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	var locker ports.DistributedLocker
	if rs, ok := backend.(*redis.Store); ok {
		a.closers = append(a.closers, rs.Close)
		if cfg.Store.Redis.Lock {
			prefix := cfg.Store.Redis.Prefix
			if prefix == "" {
				prefix = "docent:"
			}
			locker = redis.NewLocker(rs.Client(), prefix)
		}
	}
	store, err := encrypt(backend, cfg)
	if err != nil {
		return nil, nil, err
	}
	return store, locker, nil
}

// OpenStore opens the configured session store, sealed with the configured
// encryption key if any. Redis connectivity is checked up front.
func OpenStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, error) {
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return encrypt(backend, cfg)
}

func encrypt(store ports.SessionStore, cfg *config.Config) (ports.SessionStore, error) {
	if cfg.Store.EncryptionKey == "" {
		return store, nil
	}
	active, err := middleware.DecodeKey(cfg.Store.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("store.encryption_key: %w", err)
	}
	ec := middleware.EncryptionConfig{ActiveKey: active}
	for _, k := range cfg.Store.FallbackKeys {
		key, err := middleware.DecodeKey(k)
		if err != nil {
			return nil, fmt.Errorf("store.fallback_keys: %w", err)
		}
		ec.FallbackKeys = append(ec.FallbackKeys, key)
	}
	mw, err := middleware.NewEncryptionMiddleware(ec)
	if err != nil {
		return nil, err
	}
	return middleware.Chain(store, mw), nil
}

func openBackend(ctx context.Context, cfg *config.Config) (ports.SessionStore, error) {
	switch cfg.Store.Backend {
	case "file":
		return file.New(cfg.Store.Path), nil
	case "redis":
		var opts []redis.Option
		if cfg.Store.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Store.Redis.TTL))
		}
		if cfg.Store.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Store.Redis.Prefix))
		}
		store := redis.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB, opts...)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			store.Close()
			return nil, fmt.Errorf("redis %s: %w", cfg.Store.Redis.Addr, err)
		}
		return store, nil
	default:
		return memory.NewStore(), nil
	}
}
