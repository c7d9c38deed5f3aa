package session

import "github.com/licensure/examprep/internal/questiongen"

// Strategy holds the mode-specific rules of an active session.
type Strategy interface {
	// OnTick applies one second of elapsed time.
	OnTick(s *Session)
	// OnUserAction applies a user action and reports whether it was accepted.
	OnUserAction(s *Session, a Action) bool
	// IsComplete reports whether the mode's own end condition has been met.
	IsComplete(s *Session) bool
}

func strategyFor(m Mode) Strategy {
	switch m {
	case ModeFlashcard:
		return flashcardStrategy{}
	case ModeTyping:
		return typingStrategy{}
	default:
		return multipleChoiceStrategy{}
	}
}

// flashcardStrategy counts down per card. At zero a hidden card is
// revealed and given a short window; a revealed card advances.
type flashcardStrategy struct{}

func (flashcardStrategy) OnTick(s *Session) {
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		return
	}
	if s.reveal() {
		s.remaining = FlashcardRevealSeconds
		return
	}
	s.advance()
}

func (flashcardStrategy) OnUserAction(s *Session, a Action) bool {
	switch a.(type) {
	case Reveal:
		return s.reveal()
	case Next:
		s.advance()
		return true
	}
	return false
}

func (flashcardStrategy) IsComplete(*Session) bool { return false }

// multipleChoiceStrategy grades a selection at once and advances after a
// short feedback window. Each question takes one selection.
type multipleChoiceStrategy struct{}

func (multipleChoiceStrategy) OnTick(s *Session) {
	if s.feedback == 0 {
		return
	}
	s.feedback--
	if s.feedback == 0 {
		s.advance()
	}
}

func (multipleChoiceStrategy) OnUserAction(s *Session, a Action) bool {
	sel, ok := a.(Select)
	if !ok || s.answered() {
		return false
	}
	q, ok := s.current().(*questiongen.Question)
	if !ok {
		return false
	}
	letter := questiongen.NormalizeLetter(sel.Letter)
	found := false
	for _, l := range q.OptionLetters() {
		if l != "" && l == letter {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	s.record(letter)
	if letter == q.CorrectAnswer {
		s.addPoint()
	}
	s.startFeedback()
	return true
}

func (multipleChoiceStrategy) IsComplete(*Session) bool { return false }

// typingStrategy runs one countdown for the whole session. Answers are
// recorded as typed and never graded.
type typingStrategy struct{}

func (typingStrategy) OnTick(s *Session) {
	if s.remaining > 0 {
		s.remaining--
	}
}

func (typingStrategy) OnUserAction(s *Session, a Action) bool {
	switch a := a.(type) {
	case Type:
		s.record(a.Text)
		return true
	case Next:
		s.advance()
		return true
	}
	return false
}

func (typingStrategy) IsComplete(s *Session) bool { return s.remaining <= 0 }
