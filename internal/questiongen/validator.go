package questiongen

// Validator checks a generated batch before it is accepted into a session.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages.
	Name() string

	// Validate returns nil if the batch passes, or the first failure.
	Validate(items []Item, spec BatchSpec) *MalformedQuestionError
}

// BatchSpec describes what a session expects from its generated batch.
type BatchSpec struct {
	Kind  Kind
	Count int

	// RequireOptions rejects questions without options. Multiple-choice
	// sessions cannot present an item that has nothing to select.
	RequireOptions bool
}

// DefaultValidators is the chain ValidateBatch runs, in order.
func DefaultValidators() []Validator {
	return []Validator{
		&CountValidator{},
		&StructuralValidator{},
		&OptionsValidator{},
		&SchemaValidator{},
	}
}

// ValidateBatch runs the default validator chain. The whole batch is
// rejected on the first failure; a nil error means every item is usable.
func ValidateBatch(items []Item, spec BatchSpec) error {
	return RunValidators(items, spec, DefaultValidators()...)
}

// RunValidators runs the given validators in order and stops at the first
// failure.
func RunValidators(items []Item, spec BatchSpec, validators ...Validator) error {
	for _, v := range validators {
		if merr := v.Validate(items, spec); merr != nil {
			return merr
		}
	}
	return nil
}
