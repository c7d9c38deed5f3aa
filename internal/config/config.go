// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/licensure/examprep/internal/llm"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the full application configuration.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `env:"EXAMPREP_DB"`

	// UserID identifies the local learner in stored records.
	UserID string `env:"EXAMPREP_USER_ID" envDefault:"local" validate:"required,max=128"`

	LogLevel  string `env:"EXAMPREP_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"EXAMPREP_LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`

	// LogFile receives logs while the terminal UI owns the screen.
	// Empty means a file next to the database.
	LogFile string `env:"EXAMPREP_LOG_FILE"`

	// StructuredOutput sends a response schema to providers that
	// support native JSON output.
	StructuredOutput bool `env:"EXAMPREP_STRUCTURED_OUTPUT"`

	LLM llm.Config
}

// Load reads the given .env files (or ./.env when none are named), then
// parses EXAMPREP_* variables. A missing default .env is not an error.
// When no LLM provider is configured, the standard provider API key
// variables are checked.
func Load(envFiles ...string) (Config, error) {
	if err := loadDotEnv(envFiles); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.LLM.Provider == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			discovered.Retry = cfg.LLM.Retry
			discovered.Timeout = cfg.LLM.Timeout
			cfg.LLM = discovered
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// RequireLLM reports whether the configuration can reach a model.
func (c Config) RequireLLM() error {
	return c.LLM.Validate()
}

func loadDotEnv(files []string) error {
	if len(files) == 0 {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}
