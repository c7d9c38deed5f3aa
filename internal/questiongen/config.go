package questiongen

import "time"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// QuestionMaxTokens is the token budget for a question batch.
	QuestionMaxTokens int

	// FlashcardMaxTokens is the token budget for a flashcard batch.
	FlashcardMaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Timeout bounds one Generate call, provider retries included.
	// Zero means no extra deadline beyond the caller's context.
	Timeout time.Duration

	// StructuredOutput sends BatchSchema with the request so providers
	// with native JSON output constrain the reply. The prompt and parsing
	// are unchanged; the batch arrives wrapped in {"items": [...]}.
	StructuredOutput bool
}

// DefaultConfig returns the recommended generation settings.
func DefaultConfig() Config {
	return Config{
		QuestionMaxTokens:  4000,
		FlashcardMaxTokens: 3000,
		Temperature:        0.7,
		Timeout:            60 * time.Second,
	}
}
