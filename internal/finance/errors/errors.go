package errors

import (
	"errors"
	"fmt"
	"strings"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

// ErrRecordNotFound covers both true absence and records the requester may
// not see. The two cases are never distinguished in responses, so the
// existence of another user's record is not leaked.
var ErrRecordNotFound = errors.New("record not found")

// ErrForbidden means the record is visible but the requested mutation is not
// permitted for this requester.
var ErrForbidden = errors.New("operation not permitted")

var ErrGrantNotFound = errors.New("sharing grant not found")
var ErrSourceNotFound = errors.New("source not found")
var ErrTargetNotFound = errors.New("target not found")
var ErrRuleNotFound = errors.New("recurring rule not found")

var ErrInvalidSource = NewValidationError("Invalid source for this user")
var ErrInvalidTarget = NewValidationError("Invalid target for this user")
var ErrDuplicateName = NewValidationError("Name is already in use")

type ValidationErrors struct {
	Errors []error
}

func (ve *ValidationErrors) Error() string {
	errorMessages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		errorMessages[i] = err.Error()
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(errorMessages, "; "))
}

func (ve *ValidationErrors) Add(err error) {
	ve.Errors = append(ve.Errors, err)
}

func IsValidationErrors(err error) bool {
	var validationErrors *ValidationErrors
	ok := errors.As(err, &validationErrors)
	return ok
}
