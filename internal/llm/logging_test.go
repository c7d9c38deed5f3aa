package llm

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/licensure/examprep/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEventRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, data)
	return nil
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingEventRepo{}
	mock := NewMockProvider(MockResponse{Text: `[{"question":"q"}]`, Usage: Usage{InputTokens: 12, OutputTokens: 34}})
	p := WithLogging(mock, "groq", repo, nil)

	ctx := WithPurpose(context.Background(), "question-gen")
	resp, err := p.Generate(ctx, Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "Generate 20 questions"}},
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"q"}]`, resp.Text)

	require.Len(t, repo.events, 1)
	ev := repo.events[0]
	assert.Equal(t, "groq", ev.Provider)
	assert.Equal(t, "mock", ev.Model)
	assert.Equal(t, "question-gen", ev.Purpose)
	assert.True(t, ev.Success)
	assert.Equal(t, 12, ev.InputTokens)
	assert.Equal(t, 34, ev.OutputTokens)
	assert.Contains(t, ev.RequestBody, "[system]\nsys")
	assert.Contains(t, ev.RequestBody, "[user]\nGenerate 20 questions")
	assert.Equal(t, `[{"question":"q"}]`, ev.ResponseBody)
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &recordingEventRepo{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, "openai", repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)
	require.Len(t, repo.events, 1)
	assert.False(t, repo.events[0].Success)
	assert.Contains(t, repo.events[0].ErrorMessage, "down")
	assert.Equal(t, "unknown", repo.events[0].Purpose)
}

func TestLoggingProvider_RepoFailureDoesNotFailRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	repo := &recordingEventRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Text: "[]"}), "mock", repo, logger)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "[]", resp.Text)
	assert.True(t, strings.Contains(buf.String(), "disk full"))
}

func TestSerializeRequest_IncludesSchema(t *testing.T) {
	out := serializeRequest(Request{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
		Schema:   &Schema{Name: "card", Definition: map[string]any{"type": "object"}},
	})
	assert.Contains(t, out, "[schema: card]")
	assert.Contains(t, out, `{"type":"object"}`)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	cfg := DefaultConfig()
	cfg.Provider = "groq"
	cfg.Groq.APIKey = "gsk-test"
	p, err = NewProvider(context.Background(), cfg, &recordingEventRepo{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "meta-llama/llama-4-scout-17b-16e-instruct", p.ModelID())
	_, isRetry := p.(*RetryProvider)
	assert.True(t, isRetry)

	_, err = NewProvider(context.Background(), Config{Provider: "groq"}, nil, nil)
	assert.Error(t, err)

	_, err = NewProvider(context.Background(), Config{Provider: "nope"}, nil, nil)
	assert.Error(t, err)
}
