package session

import "time"

// Result is the outcome of a completed session.
type Result struct {
	SessionID      string
	ExamType       string
	Category       string
	Mode           Mode
	Difficulty     Difficulty
	Score          int
	TotalQuestions int
	TimeSpent      int // seconds
	CompletedAt    time.Time
}

// Accuracy returns Score / TotalQuestions, or 0 for an empty session.
func (r Result) Accuracy() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions)
}

// BuildResult derives the result from a snapshot of a completed session.
// Only multiple-choice answers are graded; flashcard and typing sessions
// score 0. Flashcard time is the nominal per-card budget, typing time the
// full session countdown, and multiple-choice time the measured wall clock.
func BuildResult(s Snapshot) Result {
	r := Result{
		SessionID:      s.SessionID,
		ExamType:       s.Config.ExamType,
		Category:       s.Config.Category,
		Mode:           s.Config.Mode,
		Difficulty:     s.Config.Difficulty,
		TotalQuestions: len(s.Items),
		CompletedAt:    s.EndedAt,
	}

	switch s.Config.Mode {
	case ModeFlashcard:
		r.TimeSpent = len(s.Items) * FlashcardSeconds
	case ModeTyping:
		r.TimeSpent = TypingSeconds
	case ModeMultipleChoice:
		r.Score = s.Score
		if !s.StartedAt.IsZero() && s.EndedAt.After(s.StartedAt) {
			r.TimeSpent = int(s.EndedAt.Sub(s.StartedAt) / time.Second)
		}
	}
	return r
}
