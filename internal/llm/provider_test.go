package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: `[{"question":"q1"}]`, Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: `[{"question":"q2"}]`},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"q1"}]`, resp1.Text)
	assert.Equal(t, 10, resp1.Usage.InputTokens)
	assert.Equal(t, "end", resp1.StopReason)

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"q2"}]`, resp2.Text)
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
}

func TestMockProvider_CancelledContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "[]"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mock.Generate(ctx, Request{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "[]"})

	_, ok := mock.LastCall()
	assert.False(t, ok)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	assert.Equal(t, 1, mock.CallCount())
	last, ok := mock.LastCall()
	require.True(t, ok)
	assert.Equal(t, "sys", last.System)
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)
}

func TestMockProvider_AddResponse(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse(MockResponse{Text: "late"})
	resp, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "late", resp.Text)
	assert.Equal(t, "mock", mock.ModelID())
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))

	ctx = WithPurpose(ctx, "flashcard-gen")
	assert.Equal(t, "flashcard-gen", PurposeFrom(ctx))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"groq without key", Config{Provider: "groq"}, true},
		{"groq with key", Config{Provider: "groq", Groq: GroqConfig{APIKey: "gsk-test"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"no provider", Config{}, true},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.Provider)
	assert.Equal(t, "claude-haiku", cfg.Anthropic.Model)
	assert.Equal(t, "meta-llama/llama-4-scout-17b-16e-instruct", cfg.Groq.Model)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 2.0, cfg.Retry.Multiplier)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("EXAMPREP_LLM_PROVIDER", "groq")
	t.Setenv("EXAMPREP_GROQ_API_KEY", "gsk-env")
	t.Setenv("EXAMPREP_LLM_RETRY_ATTEMPTS", "5")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "groq", cfg.Provider)
	assert.Equal(t, "gsk-env", cfg.Groq.APIKey)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_BadValue(t *testing.T) {
	t.Setenv("EXAMPREP_LLM_RETRY_ATTEMPTS", "many")
	_, err := ConfigFromEnv()
	assert.Error(t, err)
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GROQ_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("OPENAI_API_KEY", "sk-openai")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "openai", cfg.Provider)

	t.Setenv("GROQ_API_KEY", "gsk-groq")
	cfg, ok = DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "groq", cfg.Provider)
	assert.Equal(t, "gsk-groq", cfg.Groq.APIKey)
}
