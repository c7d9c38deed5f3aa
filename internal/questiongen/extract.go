package questiongen

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"
)

var errNoArray = errors.New("JSON array not found in model response")

// rawRecord is one element of the model's JSON array before normalization.
type rawRecord struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Answer        string   `json:"answer"`
}

// extractArray returns the span from the first '[' to the last ']' of text.
// Models often wrap the payload in prose or code fences; this tolerates both.
func extractArray(text string) (string, error) {
	first := strings.Index(text, "[")
	last := strings.LastIndex(text, "]")
	if first == -1 || last == -1 || last < first {
		return "", errNoArray
	}
	return text[first : last+1], nil
}

// parseRecords extracts and decodes the model's array of records.
func parseRecords(text string) ([]rawRecord, error) {
	span, err := extractArray(text)
	if err != nil {
		return nil, &GenerationError{Stage: "extract", Err: err}
	}
	var records []rawRecord
	if err := json.Unmarshal([]byte(span), &records); err != nil {
		return nil, &GenerationError{Stage: "parse", Err: err}
	}
	return records, nil
}

// OptionLetter returns the upper-cased first character of a trimmed option,
// e.g. "B) Mitral valve" -> "B".
func OptionLetter(option string) string {
	s := strings.TrimSpace(option)
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r))
}

// NormalizeLetter trims and upper-cases an answer letter.
func NormalizeLetter(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
