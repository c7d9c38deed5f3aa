package llm

import "fmt"

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultGroqBaseURL       = "https://api.groq.com/openai/v1"
)

// OpenRouterProvider targets the OpenRouter API, which is OpenAI-compatible.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	inner, err := newCompatProvider("openrouter", cfg.APIKey, cfg.Model, cfg.BaseURL, defaultOpenRouterBaseURL)
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// GroqProvider targets Groq's OpenAI-compatible endpoint.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	inner, err := newCompatProvider("groq", cfg.APIKey, cfg.Model, cfg.BaseURL, defaultGroqBaseURL)
	if err != nil {
		return nil, err
	}
	return &GroqProvider{OpenAIProvider: inner}, nil
}

// newCompatProvider builds an OpenAIProvider for an OpenAI-compatible
// service. Model IDs pass through without friendly-name mapping.
func newCompatProvider(name, apiKey, model, baseURL, defaultBaseURL string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s API key is required", name)
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
	})
}
