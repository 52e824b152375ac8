package config

import (
	"fmt"
	"os"
	"time"

	"living_pages/generation"
	"living_pages/logger"

	"github.com/kelseyhightower/envconfig"
)

// Config is the application configuration, read from the environment.
type Config struct {
	ListenAddr     string `envconfig:"LISTEN_ADDR" default:"0.0.0.0:9779"`
	MaxActionWords int    `envconfig:"MAX_ACTION_WORDS" default:"15"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"console"`
	LogOutput   string `envconfig:"LOG_OUTPUT"`

	AIProvider    string        `envconfig:"AI_PROVIDER" default:"gemini"`
	AIModel       string        `envconfig:"AI_MODEL"`
	AIBaseURL     string        `envconfig:"AI_BASE_URL"`
	AIAPIKey      string        `envconfig:"AI_API_KEY"`
	AITemperature float32       `envconfig:"AI_TEMPERATURE" default:"0.7"`
	AIMaxTokens   int           `envconfig:"AI_MAX_TOKENS" default:"500"`
	AITimeout     time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
	AIMaxAttempts int           `envconfig:"AI_MAX_ATTEMPTS" default:"1"`

	SessionStore  string        `envconfig:"SESSION_STORE" default:"sqlite"`
	SQLitePath    string        `envconfig:"SQLITE_PATH" default:"living_pages.db"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"168h"`
}

// Load reads the configuration from the environment. Any .env file has
// already been applied by the command entry point.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.AIAPIKey == "" {
		switch cfg.AIProvider {
		case generation.ProviderGemini:
			cfg.AIAPIKey = os.Getenv("GEMINI_API_KEY")
		case generation.ProviderOpenAI:
			cfg.AIAPIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	if cfg.AIModel == "" {
		cfg.AIModel = generation.DefaultModel(cfg.AIProvider)
	}
	if cfg.AIBaseURL == "" {
		cfg.AIBaseURL = generation.DefaultBaseURL(cfg.AIProvider)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.AIProvider {
	case generation.ProviderGemini, generation.ProviderOpenAI:
		if c.AIAPIKey == "" {
			return fmt.Errorf("AI_API_KEY is required for provider %q", c.AIProvider)
		}
	case generation.ProviderLocal, generation.ProviderOllama:
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q", c.AIProvider)
	}
	switch c.SessionStore {
	case "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
	}
	if c.AIMaxAttempts < 1 {
		return fmt.Errorf("AI_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

func (c *Config) Generation() generation.Config {
	return generation.Config{
		Provider:    c.AIProvider,
		Model:       c.AIModel,
		BaseURL:     c.AIBaseURL,
		APIKey:      c.AIAPIKey,
		Temperature: c.AITemperature,
		MaxTokens:   c.AIMaxTokens,
		Timeout:     c.AITimeout,
		MaxAttempts: c.AIMaxAttempts,
	}
}

func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level:      c.LogLevel,
		Encoding:   c.LogEncoding,
		OutputPath: c.LogOutput,
	}
}
