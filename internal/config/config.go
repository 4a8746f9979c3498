// Package config handles docent configuration loading.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aretw0/docent/pkg/persistence/middleware"
	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the config file search order:
// ./docent.yaml, ~/.config/docent/config.yaml, /etc/docent/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"docent.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "docent", "config.yaml"))
	}

	paths = append(paths, "/etc/docent/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise the first existing entry of DefaultSearchPaths is returned, or ""
// when there is none.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// Config holds all docent configuration.
type Config struct {
	Listen       ListenConfig       `yaml:"listen"`
	LogLevel     string             `yaml:"log_level"`
	LogFormat    string             `yaml:"log_format"`
	Catalog      CatalogConfig      `yaml:"catalog"`
	Conversation ConversationConfig `yaml:"conversation"`
	Oracle       OracleConfig       `yaml:"oracle"`
	OpenAI       OpenAIConfig       `yaml:"openai"`
	Gemini       GeminiConfig       `yaml:"gemini"`
	Speech       SpeechConfig       `yaml:"speech"`
	Feedback     FeedbackConfig     `yaml:"feedback"`
	Stats        StatsConfig        `yaml:"stats"`
	Store        StoreConfig        `yaml:"store"`
	Metrics      MetricsConfig      `yaml:"metrics"`
}

// ListenConfig defines the HTTP listener.
type ListenConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns host:port.
func (l ListenConfig) Addr() string {
	return fmt.Sprintf("%s:%d", l.Host, l.Port)
}

// CatalogConfig locates the exhibit question bank.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// ConversationConfig bounds a visitor conversation.
type ConversationConfig struct {
	MaxTurns int `yaml:"max_turns"`
}

// OracleConfig selects the language model backend.
type OracleConfig struct {
	// Provider is "openai" or "gemini".
	Provider    string  `yaml:"provider"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// OpenAIConfig defines OpenAI API settings.
type OpenAIConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	STTModel string `yaml:"stt_model"`
	TTSModel string `yaml:"tts_model"`
	Voice    string `yaml:"voice"`
}

// GeminiConfig defines Gemini API settings.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// SpeechConfig selects the speech-to-text backend. Text-to-speech is always
// served by OpenAI when a key is configured.
type SpeechConfig struct {
	// STTProvider is "openai", "gcp" or "none".
	STTProvider string `yaml:"stt_provider"`
	GCPModel    string `yaml:"gcp_model"`
}

// FeedbackConfig lists the feedback sinks. Empty paths disable a sink.
type FeedbackConfig struct {
	JSONLPath  string `yaml:"jsonl_path"`
	SQLitePath string `yaml:"sqlite_path"`
}

// StatsConfig selects where exhibit suggestions come from.
type StatsConfig struct {
	// Provider is "lidar", "sqlite" or "none".
	Provider  string `yaml:"provider"`
	LidarPath string `yaml:"lidar_path"`
}

// StoreConfig selects the session store.
type StoreConfig struct {
	// Backend is "memory", "file" or "redis".
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`

	// EncryptionKey is a base64 AES-256 key. When set, sessions are sealed
	// before they reach the backend.
	EncryptionKey string   `yaml:"encryption_key"`
	FallbackKeys  []string `yaml:"fallback_keys"`
}

// RedisConfig defines the Redis session store and lock.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
	Lock     bool          `yaml:"lock"`
}

// MetricsConfig toggles the Prometheus endpoint collectors.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Listen:       ListenConfig{Host: "0.0.0.0", Port: 8000},
		LogLevel:     "info",
		LogFormat:    "text",
		Catalog:      CatalogConfig{Path: "data/exhibit_questions.json"},
		Conversation: ConversationConfig{MaxTurns: 5},
		Oracle: OracleConfig{
			Provider:    "openai",
			MaxTokens:   150,
			Temperature: 0.7,
		},
		OpenAI: OpenAIConfig{
			Model:    "gpt-4o-mini",
			STTModel: "gpt-4o-mini-transcribe",
			TTSModel: "gpt-4o-mini-tts",
			Voice:    "coral",
		},
		Gemini:   GeminiConfig{Model: "gemini-2.5-flash"},
		Speech:   SpeechConfig{STTProvider: "openai"},
		Feedback: FeedbackConfig{JSONLPath: "data/feedback_log.jsonl"},
		Stats:    StatsConfig{Provider: "lidar", LidarPath: "data/lidar_stats.json"},
		Store: StoreConfig{
			Backend: "memory",
			Path:    ".docent/sessions",
			Redis:   RedisConfig{Addr: "localhost:6379", TTL: 24 * time.Hour},
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads configuration from a YAML file on top of Default, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment variables the kiosk
// deployment has always used.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("OPENAI_API_KEY", &c.OpenAI.APIKey)
	str("OPENAI_MODEL", &c.OpenAI.Model)
	str("OPENAI_STT_MODEL", &c.OpenAI.STTModel)
	str("OPENAI_TTS_MODEL", &c.OpenAI.TTSModel)
	str("GEMINI_API_KEY", &c.Gemini.APIKey)
	str("EXHIBIT_QUESTIONS_PATH", &c.Catalog.Path)
	str("FEEDBACK_LOG_PATH", &c.Feedback.JSONLPath)
	str("LIDAR_STATS_PATH", &c.Stats.LidarPath)
	str("DOCENT_REDIS_ADDR", &c.Store.Redis.Addr)
	str("DOCENT_LOG_LEVEL", &c.LogLevel)
	str("DOCENT_STORE_ENCRYPTION_KEY", &c.Store.EncryptionKey)

	if v, ok := lookup("MAX_USER_TURNS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_USER_TURNS: %w", err)
		}
		c.Conversation.MaxTurns = n
	}
	return nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Listen.Port <= 0 || c.Listen.Port > 65535 {
		errs = append(errs, fmt.Errorf("listen.port out of range: %d", c.Listen.Port))
	}
	if c.Conversation.MaxTurns <= 0 {
		errs = append(errs, fmt.Errorf("conversation.max_turns must be positive: %d", c.Conversation.MaxTurns))
	}
	if c.Catalog.Path == "" {
		errs = append(errs, errors.New("catalog.path is required"))
	}
	switch c.Oracle.Provider {
	case "openai", "gemini":
	default:
		errs = append(errs, fmt.Errorf("oracle.provider must be openai or gemini: %q", c.Oracle.Provider))
	}
	switch c.Speech.STTProvider {
	case "openai", "gcp", "none", "":
	default:
		errs = append(errs, fmt.Errorf("speech.stt_provider must be openai, gcp or none: %q", c.Speech.STTProvider))
	}
	switch c.Stats.Provider {
	case "lidar", "none", "":
	case "sqlite":
		if c.Feedback.SQLitePath == "" {
			errs = append(errs, errors.New("stats.provider sqlite requires feedback.sqlite_path"))
		}
	default:
		errs = append(errs, fmt.Errorf("stats.provider must be lidar, sqlite or none: %q", c.Stats.Provider))
	}
	switch c.Store.Backend {
	case "memory", "file":
	case "redis":
		if c.Store.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.backend must be memory, file or redis: %q", c.Store.Backend))
	}
	if c.Store.Redis.Lock && c.Store.Backend != "redis" {
		errs = append(errs, errors.New("store.redis.lock requires the redis backend"))
	}
	if c.Store.EncryptionKey != "" {
		if _, err := middleware.DecodeKey(c.Store.EncryptionKey); err != nil {
			errs = append(errs, fmt.Errorf("store.encryption_key: %w", err))
		}
	} else if len(c.Store.FallbackKeys) > 0 {
		errs = append(errs, errors.New("store.fallback_keys requires store.encryption_key"))
	}
	for i, k := range c.Store.FallbackKeys {
		if _, err := middleware.DecodeKey(k); err != nil {
			errs = append(errs, fmt.Errorf("store.fallback_keys[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
