package questiongen

import "fmt"

// GenerationError reports a failed generation call: the model could not be
// reached, returned nothing, or returned text with no parsable JSON array.
// It is not retried inside the call; callers offer the user a retry.
type GenerationError struct {
	Stage string // "request", "provider", "empty", "extract", "parse"
	Err   error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generation failed at %s", e.Stage)
	}
	return fmt.Sprintf("generation failed at %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// MalformedQuestionError rejects a generated batch because one item (or the
// batch as a whole) does not have the required shape. Index is -1 for
// batch-level failures.
type MalformedQuestionError struct {
	Index     int
	Validator string
	Message   string
}

func (e *MalformedQuestionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed batch: validator %q: %s", e.Validator, e.Message)
	}
	return fmt.Sprintf("malformed item %d: validator %q: %s", e.Index, e.Validator, e.Message)
}
