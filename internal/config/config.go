// Package config loads assistant settings from defaults, an optional YAML
// file and ASSISTANT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"assistant/internal/domain/schedule"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline"`
	Store      StoreConfig      `mapstructure:"store"`
	Reminders  RemindersConfig  `mapstructure:"reminders"`
	Calendar   CalendarConfig   `mapstructure:"calendar"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LLMConfig struct {
	Provider    string        `mapstructure:"provider"` // openai, gemini
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type ModerationConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

type PipelineConfig struct {
	CallTimeout time.Duration `mapstructure:"call_timeout"`
	Concurrency int           `mapstructure:"concurrency"`
	TimeZone    string        `mapstructure:"time_zone"`
}

type StoreConfig struct {
	Driver       string `mapstructure:"driver"` // memory, file, postgres
	Path         string `mapstructure:"path"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RemindersConfig struct {
	Driver        string `mapstructure:"driver"` // memory, redis
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisPrefix   string `mapstructure:"redis_prefix"`
	Sweep         string `mapstructure:"sweep"`
}

type CalendarConfig struct {
	Driver  string        `mapstructure:"driver"` // google, memory
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	ID      string        `mapstructure:"id"`
	Timeout time.Duration `mapstructure:"timeout"` // dial timeout for the calendar API
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		LLM: LLMConfig{
			Provider:    "openai",
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-3.5-turbo",
			Temperature: 0,
			MaxTokens:   500,
			Timeout:     30 * time.Second,
		},
		Moderation: ModerationConfig{
			BaseURL: "https://api.openai.com/v1",
		},
		Pipeline: PipelineConfig{
			CallTimeout: 30 * time.Second,
			Concurrency: 4,
			TimeZone:    "Europe/Athens",
		},
		Store: StoreConfig{
			Driver:       "memory",
			Path:         "database/tasks.json",
			MaxOpenConns: 10,
		},
		Reminders: RemindersConfig{
			Driver:      "memory",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "assistant:reminders",
			Sweep:       "@every 1m",
		},
		Calendar: CalendarConfig{
			Driver:  "memory",
			BaseURL: "https://www.googleapis.com/calendar/v3",
			ID:      "primary",
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configPath when given, otherwise ./assistant.yaml if present.
// Environment variables override both.
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ASSISTANT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("llm.api_key", "ASSISTANT_LLM_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("moderation.api_key", "ASSISTANT_MODERATION_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("calendar.token", "ASSISTANT_CALENDAR_TOKEN", "GOOGLE_CALENDAR_TOKEN")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("assistant")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Moderation.APIKey == "" && cfg.LLM.Provider == "openai" {
		cfg.Moderation.APIKey = cfg.LLM.APIKey
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if !oneOf(c.LLM.Provider, "openai", "gemini") {
		errs = append(errs, fmt.Errorf("llm.provider %q: must be openai or gemini", c.LLM.Provider))
	}
	if !oneOf(c.Store.Driver, "memory", "file", "postgres") {
		errs = append(errs, fmt.Errorf("store.driver %q: must be memory, file or postgres", c.Store.Driver))
	}
	if c.Store.Driver == "postgres" && c.Store.DSN == "" {
		errs = append(errs, errors.New("store.dsn is required for the postgres driver"))
	}
	if c.Store.Driver == "file" && c.Store.Path == "" {
		errs = append(errs, errors.New("store.path is required for the file driver"))
	}
	if !oneOf(c.Reminders.Driver, "memory", "redis") {
		errs = append(errs, fmt.Errorf("reminders.driver %q: must be memory or redis", c.Reminders.Driver))
	}
	if !oneOf(c.Calendar.Driver, "memory", "google") {
		errs = append(errs, fmt.Errorf("calendar.driver %q: must be memory or google", c.Calendar.Driver))
	}
	if c.Pipeline.CallTimeout <= 0 {
		errs = append(errs, fmt.Errorf("pipeline.call_timeout must be positive, got %s", c.Pipeline.CallTimeout))
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("llm.timeout must be positive, got %s", c.LLM.Timeout))
	}
	if c.Calendar.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("calendar.timeout must be positive, got %s", c.Calendar.Timeout))
	}
	if _, err := schedule.LoadZone(c.Pipeline.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("pipeline.time_zone: %w", err))
	}
	return errors.Join(errs...)
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.temperature", d.LLM.Temperature)
	v.SetDefault("llm.max_tokens", d.LLM.MaxTokens)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("moderation.base_url", d.Moderation.BaseURL)
	v.SetDefault("moderation.api_key", d.Moderation.APIKey)
	v.SetDefault("moderation.model", d.Moderation.Model)
	v.SetDefault("pipeline.call_timeout", d.Pipeline.CallTimeout)
	v.SetDefault("pipeline.concurrency", d.Pipeline.Concurrency)
	v.SetDefault("pipeline.time_zone", d.Pipeline.TimeZone)
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.dsn", d.Store.DSN)
	v.SetDefault("store.max_open_conns", d.Store.MaxOpenConns)
	v.SetDefault("reminders.driver", d.Reminders.Driver)
	v.SetDefault("reminders.redis_addr", d.Reminders.RedisAddr)
	v.SetDefault("reminders.redis_password", d.Reminders.RedisPassword)
	v.SetDefault("reminders.redis_db", d.Reminders.RedisDB)
	v.SetDefault("reminders.redis_prefix", d.Reminders.RedisPrefix)
	v.SetDefault("reminders.sweep", d.Reminders.Sweep)
	v.SetDefault("calendar.driver", d.Calendar.Driver)
	v.SetDefault("calendar.base_url", d.Calendar.BaseURL)
	v.SetDefault("calendar.token", d.Calendar.Token)
	v.SetDefault("calendar.id", d.Calendar.ID)
	v.SetDefault("calendar.timeout", d.Calendar.Timeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
}
