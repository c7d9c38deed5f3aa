package questiongen

import (
	"fmt"
	"strings"
)

// questionBatchJSON returns n well-formed question records whose correct
// answer cycles through A-E.
func questionBatchJSON(n int) string {
	var recs []string
	for i := range n {
		letter := string(rune('A' + i%5))
		recs = append(recs, fmt.Sprintf(`{
			"question": "Question %d?",
			"options": ["A) one", "B) two", "C) three", "D) four", "E) five"],
			"correctAnswer": %q,
			"explanation": "Because %s."
		}`, i, strings.ToLower(letter), letter))
	}
	return "[" + strings.Join(recs, ",") + "]"
}

func flashcardBatchJSON(n int) string {
	var recs []string
	for i := range n {
		recs = append(recs, fmt.Sprintf(`{"question":"Term %d","answer":"Definition %d"}`, i, i))
	}
	return "[" + strings.Join(recs, ",") + "]"
}

func validQuestion(i int) *Question {
	return &Question{
		ID:            fmt.Sprintf("q_1_%d", i),
		Prompt:        fmt.Sprintf("Question %d?", i),
		Options:       []string{"A) one", "B) two", "C) three", "D) four", "E) five"},
		CorrectAnswer: "B",
		Explanation:   "Because.",
		Difficulty:    "medium",
		Category:      "medical",
		ExamType:      "NCLEX-RN",
	}
}
