package questiongen

import (
	"fmt"
	"strings"
)

// buildPrompt returns the single user message for a request. The output
// format instruction is always part of the prompt, schema or not.
func buildPrompt(req Request) string {
	var b strings.Builder

	switch req.Kind {
	case KindFlashcard:
		fmt.Fprintf(&b, "Generate %d flashcard questions for the %s exam in the %s category at %s level.\n\n",
			req.Count, req.ExamType, req.Category, req.Difficulty)
		b.WriteString("Format as a JSON array:\n")
		b.WriteString(`[
  {
    "question": "Question or term",
    "answer": "Answer or definition"
  }
]`)
	default:
		fmt.Fprintf(&b, "Generate %d %s level practice questions for the %s exam in the %s category.\n\n",
			req.Count, req.Difficulty, req.ExamType, req.Category)
		b.WriteString("For each question, provide:\n")
		b.WriteString("1. A clear, specific question\n")
		b.WriteString("2. 5 multiple choice options (A, B, C, D, E)\n")
		b.WriteString("3. The correct answer (just the letter)\n")
		b.WriteString("4. A detailed explanation\n\n")
		b.WriteString("Format as a JSON array with this structure:\n")
		b.WriteString(`[
  {
    "question": "Question text",
    "options": ["A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4", "E) Option 5"],
    "correctAnswer": "A",
    "explanation": "Detailed explanation"
  }
]`)
	}

	return b.String()
}
