package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "groq", "mock"
	Provider string `env:"EXAMPREP_LLM_PROVIDER"`

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Groq       GroqConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single generation call
	// (including retries).
	Timeout time.Duration `env:"EXAMPREP_LLM_TIMEOUT" envDefault:"60s"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `env:"EXAMPREP_ANTHROPIC_API_KEY"`
	Model  string `env:"EXAMPREP_ANTHROPIC_MODEL" envDefault:"claude-haiku"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `env:"EXAMPREP_OPENAI_API_KEY"`
	Model   string `env:"EXAMPREP_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"EXAMPREP_OPENAI_BASE_URL"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `env:"EXAMPREP_GEMINI_API_KEY"`
	Model  string `env:"EXAMPREP_GEMINI_MODEL" envDefault:"gemini-flash"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `env:"EXAMPREP_OPENROUTER_API_KEY"`
	Model   string `env:"EXAMPREP_OPENROUTER_MODEL" envDefault:"google/gemini-2.0-flash-exp"`
	BaseURL string `env:"EXAMPREP_OPENROUTER_BASE_URL"`
}

// GroqConfig holds Groq-specific configuration.
type GroqConfig struct {
	APIKey  string `env:"EXAMPREP_GROQ_API_KEY"`
	Model   string `env:"EXAMPREP_GROQ_MODEL" envDefault:"meta-llama/llama-4-scout-17b-16e-instruct"`
	BaseURL string `env:"EXAMPREP_GROQ_BASE_URL"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"EXAMPREP_LLM_RETRY_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"EXAMPREP_LLM_RETRY_INITIAL_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"EXAMPREP_LLM_RETRY_MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"EXAMPREP_LLM_RETRY_MULTIPLIER" envDefault:"2"`
}

// DefaultConfig returns a Config populated only from the envDefault tags.
// The provider is left empty.
func DefaultConfig() Config {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Sprintf("llm: invalid config defaults: %v", err))
	}
	return cfg
}

// ConfigFromEnv builds a Config from EXAMPREP_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse llm env: %w", err)
	}
	return cfg, nil
}

// DiscoverConfig checks standard API key env vars in priority order
// (Groq → Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for
// the first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GROQ_API_KEY"); k != "" {
		cfg.Provider = "groq"
		cfg.Groq.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("EXAMPREP_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("EXAMPREP_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("EXAMPREP_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("EXAMPREP_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "groq":
		if c.Groq.APIKey == "" {
			return fmt.Errorf("EXAMPREP_GROQ_API_KEY is required for the groq provider")
		}
	case "mock":
		// No API key needed.
	case "":
		return fmt.Errorf("no LLM provider configured: set EXAMPREP_LLM_PROVIDER or a provider API key")
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
