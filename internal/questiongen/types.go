package questiongen

import "fmt"

// Kind selects what the generator asks the model for.
type Kind int

const (
	// KindQuestion is a five-option question with a lettered correct answer.
	KindQuestion Kind = iota
	// KindFlashcard is a question/answer pair.
	KindFlashcard
)

func (k Kind) String() string {
	switch k {
	case KindQuestion:
		return "question"
	case KindFlashcard:
		return "flashcard"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// OptionCount is the number of options every generated question carries.
const OptionCount = 5

// Difficulties lists the accepted difficulty labels in ascending order.
var Difficulties = []string{"easy", "medium", "hard"}

// ValidDifficulty reports whether d is one of Difficulties.
func ValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if v == d {
			return true
		}
	}
	return false
}

// Request describes one generation call.
type Request struct {
	ExamType   string
	Category   string
	Difficulty string
	Count      int
	Kind       Kind
}

// Item is one generated unit: a *Question or a *Flashcard.
type Item interface {
	// ItemPrompt returns the text shown to the user.
	ItemPrompt() string
}

// Question is a generated exam question.
type Question struct {
	ID            string
	Prompt        string
	Options       []string
	CorrectAnswer string // single letter, upper case
	Explanation   string
	Difficulty    string
	Category      string
	ExamType      string
}

func (q *Question) ItemPrompt() string { return q.Prompt }

// HasOptions reports whether the question carries answer options.
func (q *Question) HasOptions() bool { return len(q.Options) > 0 }

// OptionLetters returns the leading letter of each option, upper-cased.
// An empty option yields an empty letter.
func (q *Question) OptionLetters() []string {
	letters := make([]string, len(q.Options))
	for i, opt := range q.Options {
		letters[i] = OptionLetter(opt)
	}
	return letters
}

// Flashcard is a generated question/answer pair.
type Flashcard struct {
	Prompt string
	Answer string
}

func (f *Flashcard) ItemPrompt() string { return f.Prompt }
