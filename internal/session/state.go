package session

import (
	"time"

	"github.com/licensure/examprep/internal/questiongen"
)

// Status is the lifecycle phase of a session.
type Status int

const (
	StatusConfiguring Status = iota // waiting for a complete config or a retry
	StatusGenerating                // one generation call in flight
	StatusActive                    // items are being answered
	StatusComplete                  // terminal; the result is fixed
)

func (s Status) String() string {
	switch s {
	case StatusConfiguring:
		return "configuring"
	case StatusGenerating:
		return "generating"
	case StatusActive:
		return "active"
	case StatusComplete:
		return "complete"
	}
	return "unknown"
}

// Action is a user input applied to an active session.
type Action interface {
	isAction()
}

// Reveal shows the answer of the current flashcard.
type Reveal struct{}

// Select picks an option letter for the current multiple-choice question.
type Select struct {
	Letter string
}

// Type records the typed answer for the current question. A later Type on
// the same question overwrites it.
type Type struct {
	Text string
}

// Next moves past the current item.
type Next struct{}

func (Reveal) isAction() {}
func (Select) isAction() {}
func (Type) isAction()   {}
func (Next) isAction()   {}

// Snapshot is a read-only copy of a session's observable state.
// Renderers may hold on to it; later session changes never show through.
type Snapshot struct {
	// SessionID identifies the session instance the snapshot came from.
	SessionID string

	// Config is the setup the session was created with.
	Config Config

	// Status is the lifecycle phase.
	Status Status

	// Items is the accepted batch. Empty until the session is active.
	// Items are never mutated after activation.
	Items []questiongen.Item

	// Index is the position of the current item.
	Index int

	// Revealed is whether the current flashcard shows its answer.
	Revealed bool

	// Answers maps item index to the recorded answer.
	Answers map[int]string

	// Score counts correct multiple-choice answers.
	Score int

	// RemainingSeconds is the countdown; per card for flashcards and
	// session-wide for typing.
	RemainingSeconds int

	// Timed is false for modes without a visible countdown.
	Timed bool

	// FeedbackPending is true while a graded multiple-choice answer waits
	// for the automatic advance.
	FeedbackPending bool

	// StartedAt and EndedAt bound the active phase. Zero until reached.
	StartedAt time.Time
	EndedAt   time.Time

	// Result is set once the session is complete.
	Result *Result

	// Err is the last generation failure, if any.
	Err error
}

// Total returns the number of items in the batch.
func (s Snapshot) Total() int {
	return len(s.Items)
}

// Current returns the item at Index, or nil when there is none.
func (s Snapshot) Current() questiongen.Item {
	if s.Index < 0 || s.Index >= len(s.Items) {
		return nil
	}
	return s.Items[s.Index]
}

// CurrentQuestion returns the current item as a question, or nil.
func (s Snapshot) CurrentQuestion() *questiongen.Question {
	q, _ := s.Current().(*questiongen.Question)
	return q
}

// CurrentFlashcard returns the current item as a flashcard, or nil.
func (s Snapshot) CurrentFlashcard() *questiongen.Flashcard {
	f, _ := s.Current().(*questiongen.Flashcard)
	return f
}

// Answer returns the recorded answer for item i.
func (s Snapshot) Answer(i int) (string, bool) {
	a, ok := s.Answers[i]
	return a, ok
}

// Progress returns the fraction of items already passed, in [0, 1].
func (s Snapshot) Progress() float64 {
	if len(s.Items) == 0 {
		return 0
	}
	if s.Status == StatusComplete {
		return 1
	}
	return float64(s.Index) / float64(len(s.Items))
}
