package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/licensure/examprep/internal/questiongen"
)

// Mode selects how a session is played.
type Mode string

const (
	ModeFlashcard      Mode = "flashcard"
	ModeMultipleChoice Mode = "multiple_choice"
	ModeTyping         Mode = "typing"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeFlashcard, ModeMultipleChoice, ModeTyping}

// ParseMode accepts the canonical names plus the "flashcards" and "mc"
// spellings.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flashcard", "flashcards":
		return ModeFlashcard, nil
	case "multiple_choice", "multiple-choice", "mc":
		return ModeMultipleChoice, nil
	case "typing":
		return ModeTyping, nil
	}
	return "", fmt.Errorf("unknown mode %q (want flashcard, multiple_choice or typing)", s)
}

// Label returns a human-readable name for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeFlashcard:
		return "Flashcards"
	case ModeMultipleChoice:
		return "Multiple Choice"
	case ModeTyping:
		return "Typing"
	}
	return string(m)
}

// Difficulty is the requested question difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every difficulty in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty validates a difficulty label.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !questiongen.ValidDifficulty(string(d)) {
		return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
	}
	return d, nil
}

// Config is the immutable setup of one session.
type Config struct {
	ExamType   string
	Category   string
	Difficulty Difficulty
	Mode       Mode
}

// Validate reports whether the config is complete enough to start.
func (c Config) Validate() error {
	var errs []error
	if c.ExamType == "" {
		errs = append(errs, errors.New("exam type is required"))
	}
	if _, err := ParseDifficulty(string(c.Difficulty)); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Timing constants, in ticks. One tick is TickInterval.
const (
	TickInterval = time.Second

	FlashcardSeconds       = 10  // countdown per card
	FlashcardRevealSeconds = 5   // countdown after a forced reveal
	TypingSeconds          = 300 // session-wide countdown
	FeedbackTicks          = 2   // multiple-choice feedback window
)

// modeParams holds the per-mode generation and timing parameters.
type modeParams struct {
	count     int
	kind      questiongen.Kind
	countdown int  // initial remaining seconds
	timed     bool // whether the countdown is shown to the user
}

func paramsFor(m Mode) modeParams {
	switch m {
	case ModeFlashcard:
		return modeParams{count: 20, kind: questiongen.KindFlashcard, countdown: FlashcardSeconds, timed: true}
	case ModeTyping:
		return modeParams{count: 10, kind: questiongen.KindQuestion, countdown: TypingSeconds, timed: true}
	default:
		return modeParams{count: 20, kind: questiongen.KindQuestion}
	}
}

// ItemCount returns how many items a session in mode m asks for.
func ItemCount(m Mode) int {
	return paramsFor(m).count
}
