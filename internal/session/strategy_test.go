package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tickN(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

func TestFlashcard_ForcedRevealAtZero(t *testing.T) {
	s := activeSession(t, ModeFlashcard, NewManualClock(epoch))

	tickN(s, FlashcardSeconds-1)
	snap := s.Snapshot()
	assert.False(t, snap.Revealed)
	assert.Equal(t, 1, snap.RemainingSeconds)

	s.Tick()
	snap = s.Snapshot()
	assert.True(t, snap.Revealed, "countdown hitting zero reveals the card")
	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, FlashcardRevealSeconds, snap.RemainingSeconds)

	tickN(s, FlashcardRevealSeconds)
	snap = s.Snapshot()
	assert.Equal(t, 1, snap.Index)
	assert.False(t, snap.Revealed)
	assert.Equal(t, FlashcardSeconds, snap.RemainingSeconds)
}

func TestFlashcard_ManualRevealKeepsCountdown(t *testing.T) {
	s := activeSession(t, ModeFlashcard, NewManualClock(epoch))
	tickN(s, 3)

	assert.True(t, s.Act(Reveal{}))
	assert.False(t, s.Act(Reveal{}), "second reveal changes nothing")
	snap := s.Snapshot()
	assert.True(t, snap.Revealed)
	assert.Equal(t, 7, snap.RemainingSeconds)

	// Revealed card advances when the countdown runs out, with no extra window.
	tickN(s, 7)
	snap = s.Snapshot()
	assert.Equal(t, 1, snap.Index)
	assert.False(t, snap.Revealed)
}

func TestFlashcard_NextResetsCountdown(t *testing.T) {
	s := activeSession(t, ModeFlashcard, NewManualClock(epoch))
	tickN(s, 4)
	require.True(t, s.Act(Next{}))

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Index)
	assert.Equal(t, FlashcardSeconds, snap.RemainingSeconds)
	assert.False(t, snap.Revealed)
}

func TestFlashcard_IgnoresOtherActions(t *testing.T) {
	s := activeSession(t, ModeFlashcard, NewManualClock(epoch))
	assert.False(t, s.Act(Select{Letter: "A"}))
	assert.False(t, s.Act(Type{Text: "x"}))
	assert.Empty(t, s.Snapshot().Answers)
}

func TestFlashcard_TimerRunsThroughDeck(t *testing.T) {
	s := activeSession(t, ModeFlashcard, NewManualClock(epoch))
	// Each card takes the countdown plus the reveal window.
	tickN(s, 20*(FlashcardSeconds+FlashcardRevealSeconds))

	assert.Equal(t, StatusComplete, s.Status())
	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, 20, res.TotalQuestions)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 200, res.TimeSpent)
}

func TestMultipleChoice_GradesOncePerQuestion(t *testing.T) {
	tests := []struct {
		name    string
		letter  string
		correct bool
	}{
		{"correct", "B", true},
		{"correct lower case", " b ", true},
		{"wrong", "D", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := activeSession(t, ModeMultipleChoice, NewManualClock(epoch))
			require.True(t, s.Act(Select{Letter: tt.letter}))
			assert.False(t, s.Act(Select{Letter: "B"}), "answer is locked after the first selection")

			snap := s.Snapshot()
			assert.True(t, snap.FeedbackPending)
			if tt.correct {
				assert.Equal(t, 1, snap.Score)
			} else {
				assert.Equal(t, 0, snap.Score)
			}
		})
	}
}

func TestMultipleChoice_RejectsUnknownLetter(t *testing.T) {
	s := activeSession(t, ModeMultipleChoice, NewManualClock(epoch))
	assert.False(t, s.Act(Select{Letter: "F"}))
	assert.False(t, s.Act(Select{Letter: ""}))
	assert.Empty(t, s.Snapshot().Answers)
	assert.True(t, s.Act(Select{Letter: "A"}))
}

func TestMultipleChoice_AutoAdvanceAfterFeedback(t *testing.T) {
	s := activeSession(t, ModeMultipleChoice, NewManualClock(epoch))

	s.Tick()
	assert.Equal(t, 0, s.Snapshot().Index, "ticks do nothing before an answer")

	s.Act(Select{Letter: "B"})
	s.Tick()
	assert.Equal(t, 0, s.Snapshot().Index)
	s.Tick()
	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Index)
	assert.False(t, snap.FeedbackPending)
	assert.Equal(t, 1, snap.Score)
}

func TestMultipleChoice_NextIgnored(t *testing.T) {
	s := activeSession(t, ModeMultipleChoice, NewManualClock(epoch))
	assert.False(t, s.Act(Next{}))
	assert.False(t, s.Act(Reveal{}))
	assert.False(t, s.Act(Type{Text: "B"}))
	assert.Equal(t, 0, s.Snapshot().Index)
}

func TestMultipleChoice_ScoreBounded(t *testing.T) {
	s := activeSession(t, ModeMultipleChoice, NewManualClock(epoch))
	for s.Status() == StatusActive {
		idx := s.Snapshot().Index
		s.Act(Select{Letter: "B"})
		s.Act(Select{Letter: "B"})
		tickN(s, FeedbackTicks)
		snap := s.Snapshot()
		require.LessOrEqual(t, snap.Score, snap.Total())
		require.LessOrEqual(t, snap.Score, len(snap.Answers))
		if snap.Status == StatusActive {
			require.Equal(t, idx+1, snap.Index)
		}
	}
	res, _ := s.Result()
	assert.Equal(t, 20, res.Score)
	assert.Equal(t, 20, res.TotalQuestions)
}

func TestMultipleChoice_TimeSpentIsWallClock(t *testing.T) {
	clock := NewManualClock(epoch)
	s := activeSession(t, ModeMultipleChoice, clock)
	clock.Advance(95 * time.Second)
	s.End()

	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, 95, res.TimeSpent)
}

func TestTyping_RecordsAndOverwrites(t *testing.T) {
	s := activeSession(t, ModeTyping, NewManualClock(epoch))
	assert.True(t, s.Act(Type{Text: "first"}))
	assert.True(t, s.Act(Type{Text: "second"}))
	assert.Equal(t, "second", s.Snapshot().Answers[0])

	assert.True(t, s.Act(Next{}))
	assert.True(t, s.Act(Type{Text: "B"}))
	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Index)
	assert.Equal(t, "B", snap.Answers[1])
	assert.Equal(t, 0, snap.Score, "typed answers are never graded")
}

func TestTyping_CountdownCompletesSession(t *testing.T) {
	s := activeSession(t, ModeTyping, NewManualClock(epoch))
	s.Act(Type{Text: "answer"})

	tickN(s, TypingSeconds-1)
	assert.Equal(t, StatusActive, s.Status())
	assert.Equal(t, 1, s.Snapshot().RemainingSeconds)

	s.Tick()
	assert.Equal(t, StatusComplete, s.Status())
	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, TypingSeconds, res.TimeSpent)
	assert.Equal(t, 10, res.TotalQuestions)
	assert.Equal(t, 0, res.Score)
}

func TestTyping_CountdownDoesNotResetOnNext(t *testing.T) {
	s := activeSession(t, ModeTyping, NewManualClock(epoch))
	tickN(s, 10)
	s.Act(Next{})
	assert.Equal(t, TypingSeconds-10, s.Snapshot().RemainingSeconds)
}
