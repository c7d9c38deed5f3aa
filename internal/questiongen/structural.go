package questiongen

import "fmt"

// CountValidator checks the batch has exactly the requested number of items.
type CountValidator struct{}

func (v *CountValidator) Name() string { return "count" }

func (v *CountValidator) Validate(items []Item, spec BatchSpec) *MalformedQuestionError {
	if len(items) == 0 {
		return &MalformedQuestionError{Index: -1, Validator: v.Name(), Message: "batch is empty"}
	}
	if len(items) != spec.Count {
		return &MalformedQuestionError{
			Index:     -1,
			Validator: v.Name(),
			Message:   fmt.Sprintf("got %d items, want %d", len(items), spec.Count),
		}
	}
	return nil
}

// StructuralValidator checks every item is the expected kind and has its
// required text fields.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(items []Item, spec BatchSpec) *MalformedQuestionError {
	fail := func(i int, msg string) *MalformedQuestionError {
		return &MalformedQuestionError{Index: i, Validator: v.Name(), Message: msg}
	}

	for i, item := range items {
		switch it := item.(type) {
		case *Flashcard:
			if spec.Kind != KindFlashcard {
				return fail(i, "flashcard in a question batch")
			}
			if it.Prompt == "" {
				return fail(i, "question is empty")
			}
			if it.Answer == "" {
				return fail(i, "answer is empty")
			}
		case *Question:
			if spec.Kind != KindQuestion {
				return fail(i, "question in a flashcard batch")
			}
			if it.Prompt == "" {
				return fail(i, "question is empty")
			}
			if it.CorrectAnswer == "" {
				return fail(i, "correctAnswer is empty")
			}
			if spec.RequireOptions && !it.HasOptions() {
				return fail(i, "options are missing")
			}
		default:
			return fail(i, fmt.Sprintf("unexpected item type %T", item))
		}
	}
	return nil
}

// OptionsValidator checks that questions with options carry exactly
// OptionCount of them, lettered A through E in order, and that the correct
// answer names one of those letters.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(items []Item, _ BatchSpec) *MalformedQuestionError {
	for i, item := range items {
		q, ok := item.(*Question)
		if !ok || !q.HasOptions() {
			continue
		}
		if len(q.Options) != OptionCount {
			return &MalformedQuestionError{
				Index:     i,
				Validator: v.Name(),
				Message:   fmt.Sprintf("got %d options, want %d", len(q.Options), OptionCount),
			}
		}

		matched := false
		for j, letter := range q.OptionLetters() {
			want := string(rune('A' + j))
			if letter != want {
				return &MalformedQuestionError{
					Index:     i,
					Validator: v.Name(),
					Message:   fmt.Sprintf("option %d is labelled %q, want %q", j, letter, want),
				}
			}
			if letter == q.CorrectAnswer {
				matched = true
			}
		}
		if !matched {
			return &MalformedQuestionError{
				Index:     i,
				Validator: v.Name(),
				Message:   fmt.Sprintf("correctAnswer %q matches no option", q.CorrectAnswer),
			}
		}
	}
	return nil
}
