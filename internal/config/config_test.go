package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Conversation.MaxTurns)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "0.0.0.0:8000", cfg.Listen.Addr())
}

func TestLoad_FileAndExpansion(t *testing.T) {
	t.Setenv("DOCENT_TEST_KEY", "sk-from-env")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("MAX_USER_TURNS", "")

	path := filepath.Join(t.TempDir(), "docent.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen:
  port: 9090
conversation:
  max_turns: 7
openai:
  api_key: ${DOCENT_TEST_KEY}
store:
  backend: redis
  redis:
    addr: redis:6379
    ttl: 30m
    lock: true
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Listen.Port)
	assert.Equal(t, 7, cfg.Conversation.MaxTurns)
	assert.Equal(t, "sk-from-env", cfg.OpenAI.APIKey)
	assert.Equal(t, 30*time.Minute, cfg.Store.Redis.TTL)
	assert.True(t, cfg.Store.Redis.Lock)
	assert.Equal(t, "gpt-4o-mini-tts", cfg.OpenAI.TTSModel, "unset keys keep defaults")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [1, 2"), 0600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"OPENAI_API_KEY":         "sk-1",
		"OPENAI_MODEL":           "gpt-test",
		"MAX_USER_TURNS":         "3",
		"EXHIBIT_QUESTIONS_PATH": "/srv/questions.yaml",
		"FEEDBACK_LOG_PATH":      "/var/log/feedback.jsonl",
		"LIDAR_STATS_PATH":       "/srv/lidar.json",
		"DOCENT_REDIS_ADDR":      "cache:6379",
		"GEMINI_API_KEY":         "",
	}))
	require.NoError(t, err)
	assert.Equal(t, "sk-1", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-test", cfg.OpenAI.Model)
	assert.Equal(t, 3, cfg.Conversation.MaxTurns)
	assert.Equal(t, "/srv/questions.yaml", cfg.Catalog.Path)
	assert.Equal(t, "/var/log/feedback.jsonl", cfg.Feedback.JSONLPath)
	assert.Equal(t, "/srv/lidar.json", cfg.Stats.LidarPath)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Empty(t, cfg.Gemini.APIKey)

	err = cfg.ApplyEnv(envMap(map[string]string{"MAX_USER_TURNS": "five"}))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Bad Port", func(c *Config) { c.Listen.Port = 0 }},
		{"Zero Turns", func(c *Config) { c.Conversation.MaxTurns = 0 }},
		{"Unknown Oracle", func(c *Config) { c.Oracle.Provider = "claude" }},
		{"Unknown Store", func(c *Config) { c.Store.Backend = "etcd" }},
		{"Lock Without Redis", func(c *Config) { c.Store.Redis.Lock = true }},
		{"SQLite Stats Without DB", func(c *Config) { c.Stats.Provider = "sqlite" }},
		{"Unknown STT", func(c *Config) { c.Speech.STTProvider = "whisper.cpp" }},
		{"Short Encryption Key", func(c *Config) { c.Store.EncryptionKey = "c2hvcnQ=" }},
		{"Fallback Without Active Key", func(c *Config) {
			c.Store.FallbackKeys = []string{"MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestFindConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "explicit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0600))

	got, err := FindConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	_, err = FindConfig(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)

	t.Chdir(dir)
	got, err = FindConfig("")
	require.NoError(t, err)
	if got != "" {
		assert.NotEqual(t, "docent.yaml", got)
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "docent.yaml"), []byte("log_level: debug\n"), 0600))
	got, err = FindConfig("")
	require.NoError(t, err)
	assert.Equal(t, "docent.yaml", got)
}
