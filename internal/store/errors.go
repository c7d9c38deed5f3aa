package store

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// PersistenceError reports a record the store refused to write, either
// because it failed validation or because the database rejected it.
type PersistenceError struct {
	Table string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Table, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRecord runs struct-tag validation and wraps failures.
func validateRecord(table string, v any) error {
	if err := validate.Struct(v); err != nil {
		return &PersistenceError{Table: table, Err: err}
	}
	return nil
}
