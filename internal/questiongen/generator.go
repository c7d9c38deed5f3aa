package questiongen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/licensure/examprep/internal/llm"
)

// Purpose labels attached to generation requests for the LLM event log.
const (
	PurposeQuestions  = "question-gen"
	PurposeFlashcards = "flashcard-gen"
)

// Generator produces a batch of study items for one session.
type Generator interface {
	// Generate issues exactly one model request and returns the items in
	// the order the model produced them. Failures are *GenerationError.
	// The batch is not validated; see ValidateBatch.
	Generate(ctx context.Context, req Request) ([]Item, error)
}

// LLMGenerator implements Generator using an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	now      func() time.Time
}

// Option configures an LLMGenerator.
type Option func(*LLMGenerator)

// WithClock overrides the time source used for question IDs.
func WithClock(now func() time.Time) Option {
	return func(g *LLMGenerator) { g.now = now }
}

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config, opts ...Option) *LLMGenerator {
	g := &LLMGenerator{provider: provider, config: cfg, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate implements Generator.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) ([]Item, error) {
	if err := checkRequest(req); err != nil {
		return nil, &GenerationError{Stage: "request", Err: err}
	}

	purpose, maxTokens := PurposeQuestions, g.config.QuestionMaxTokens
	if req.Kind == KindFlashcard {
		purpose, maxTokens = PurposeFlashcards, g.config.FlashcardMaxTokens
	}
	ctx = llm.WithPurpose(ctx, purpose)
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	llmReq := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPrompt(req)},
		},
		MaxTokens:   maxTokens,
		Temperature: g.config.Temperature,
	}
	if g.config.StructuredOutput {
		llmReq.Schema = BatchSchema(req.Kind)
	}

	resp, err := g.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, &GenerationError{Stage: "provider", Err: err}
	}
	if strings.TrimSpace(resp.Text) == "" {
		return nil, &GenerationError{Stage: "empty", Err: errors.New("no content generated")}
	}

	records, err := parseRecords(resp.Text)
	if err != nil {
		return nil, err
	}

	return g.normalize(records, req), nil
}

// normalize maps raw records onto Questions or Flashcards. Shape checks
// are left to ValidateBatch.
func (g *LLMGenerator) normalize(records []rawRecord, req Request) []Item {
	items := make([]Item, len(records))
	if req.Kind == KindFlashcard {
		for i, r := range records {
			items[i] = &Flashcard{
				Prompt: strings.TrimSpace(r.Question),
				Answer: strings.TrimSpace(r.Answer),
			}
		}
		return items
	}

	millis := g.now().UnixMilli()
	for i, r := range records {
		items[i] = &Question{
			ID:            fmt.Sprintf("q_%d_%d", millis, i),
			Prompt:        strings.TrimSpace(r.Question),
			Options:       r.Options,
			CorrectAnswer: NormalizeLetter(r.CorrectAnswer),
			Explanation:   strings.TrimSpace(r.Explanation),
			Difficulty:    req.Difficulty,
			Category:      req.Category,
			ExamType:      req.ExamType,
		}
	}
	return items
}

func checkRequest(req Request) error {
	if req.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", req.Count)
	}
	if !ValidDifficulty(req.Difficulty) {
		return fmt.Errorf("difficulty must be one of %s, got %q", strings.Join(Difficulties, ", "), req.Difficulty)
	}
	if req.Kind != KindQuestion && req.Kind != KindFlashcard {
		return fmt.Errorf("unknown kind %s", req.Kind)
	}
	return nil
}
