package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLM.Model)
	assert.Equal(t, 500, cfg.LLM.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.Pipeline.CallTimeout)
	assert.Equal(t, "Europe/Athens", cfg.Pipeline.TimeZone)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "@every 1m", cfg.Reminders.Sweep)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Calendar.Timeout)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assistant.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
pipeline:
  call_timeout: 5s
  concurrency: 1
store:
  driver: file
  path: /tmp/tasks.json
calendar:
  timeout: 3s
`), 0o644))
	t.Setenv("ASSISTANT_SERVER_ADDR", ":7070")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GOOGLE_CALENDAR_TOKEN", "cal-token")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.CallTimeout)
	assert.Equal(t, 1, cfg.Pipeline.Concurrency)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "sk-test", cfg.Moderation.APIKey)
	assert.Equal(t, "cal-token", cfg.Calendar.Token)
	assert.Equal(t, 3*time.Second, cfg.Calendar.Timeout)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(*Config) {}, ok: true},
		{name: "unknown store driver", mutate: func(c *Config) { c.Store.Driver = "mongo" }},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Store.Driver = "postgres" }},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "llama" }},
		{name: "unknown reminder driver", mutate: func(c *Config) { c.Reminders.Driver = "sqs" }},
		{name: "unknown calendar driver", mutate: func(c *Config) { c.Calendar.Driver = "outlook" }},
		{name: "zero call timeout", mutate: func(c *Config) { c.Pipeline.CallTimeout = 0 }},
		{name: "zero calendar timeout", mutate: func(c *Config) { c.Calendar.Timeout = 0 }},
		{name: "bad time zone", mutate: func(c *Config) { c.Pipeline.TimeZone = "Mars/Olympus" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
