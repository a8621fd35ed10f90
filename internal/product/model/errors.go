package model

import (
	"errors"
	"fmt"
)

// DataValidationError is returned when a product fails validation, either while
// deserializing a mapping or when an operation is called on an unsuitable record.
type DataValidationError struct {
	Msg string
	Err error
}

func (e *DataValidationError) Error() string {
	return e.Msg
}

func (e *DataValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError formats a DataValidationError message.
func NewValidationError(format string, args ...any) *DataValidationError {
	return &DataValidationError{Msg: fmt.Sprintf(format, args...)}
}

// EmptyIDError reports that op was called on a record that has not been persisted.
func EmptyIDError(op string) *DataValidationError {
	return NewValidationError("%s called with empty ID field", op)
}

// IsValidationError reports whether err or any error it wraps is a DataValidationError.
func IsValidationError(err error) bool {
	var ve *DataValidationError
	return errors.As(err, &ve)
}
