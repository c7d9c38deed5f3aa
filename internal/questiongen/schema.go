package questiongen

import (
	"encoding/json"
	"fmt"

	"github.com/licensure/examprep/internal/llm"
)

// QuestionSchema is the JSON Schema a normalized question must satisfy.
var QuestionSchema = &llm.Schema{
	Name:        "exam-question",
	Description: "A generated exam question with lettered options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string", "minLength": 1},
				"minItems": OptionCount,
				"maxItems": OptionCount,
			},
			"correctAnswer": map[string]any{
				"type":    "string",
				"pattern": "^[A-E]$",
			},
			"explanation": map[string]any{
				"type": "string",
			},
		},
		"required": []any{"question", "correctAnswer"},
	},
}

// FlashcardSchema is the JSON Schema a normalized flashcard must satisfy.
var FlashcardSchema = &llm.Schema{
	Name:        "exam-flashcard",
	Description: "A generated question/answer flashcard",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "minLength": 1},
			"answer":   map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"question", "answer"},
	},
}

// BatchSchema is the response schema sent when structured output is on.
// Native JSON modes need an object at the root, so the array is wrapped.
// Every property is required and closed, as strict modes demand; the
// finer checks (option count, answer letter) stay with the validators.
func BatchSchema(kind Kind) *llm.Schema {
	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question":      map[string]any{"type": "string"},
			"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"correctAnswer": map[string]any{"type": "string"},
			"explanation":   map[string]any{"type": "string"},
		},
		"required":             []any{"question", "options", "correctAnswer", "explanation"},
		"additionalProperties": false,
	}
	name, desc := "exam-question-batch", "A batch of exam questions with lettered options"
	if kind == KindFlashcard {
		item = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"answer":   map[string]any{"type": "string"},
			},
			"required":             []any{"question", "answer"},
			"additionalProperties": false,
		}
		name, desc = "exam-flashcard-batch", "A batch of question/answer flashcards"
	}

	return &llm.Schema{
		Name:        name,
		Description: desc,
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"items": map[string]any{"type": "array", "items": item},
			},
			"required":             []any{"items"},
			"additionalProperties": false,
		},
	}
}

// SchemaValidator re-encodes each item in the model's wire shape and
// validates it against QuestionSchema or FlashcardSchema.
type SchemaValidator struct{}

func (v *SchemaValidator) Name() string { return "schema" }

func (v *SchemaValidator) Validate(items []Item, _ BatchSpec) *MalformedQuestionError {
	for i, item := range items {
		var (
			schema *llm.Schema
			wire   any
		)
		switch it := item.(type) {
		case *Question:
			schema = QuestionSchema
			rec := map[string]any{
				"question":      it.Prompt,
				"correctAnswer": it.CorrectAnswer,
				"explanation":   it.Explanation,
			}
			if it.HasOptions() {
				rec["options"] = it.Options
			}
			wire = rec
		case *Flashcard:
			schema = FlashcardSchema
			wire = map[string]any{"question": it.Prompt, "answer": it.Answer}
		default:
			return &MalformedQuestionError{Index: i, Validator: v.Name(), Message: fmt.Sprintf("unexpected item type %T", item)}
		}

		raw, err := json.Marshal(wire)
		if err != nil {
			return &MalformedQuestionError{Index: i, Validator: v.Name(), Message: err.Error()}
		}
		if err := llm.ValidateJSON(schema, raw); err != nil {
			return &MalformedQuestionError{Index: i, Validator: v.Name(), Message: err.Error()}
		}
	}
	return nil
}
