package submit

import (
	"errors"
	"fmt"
)

// Error is the classified outcome of a failed submission attempt.
type Error struct {
	Status    int  // HTTP status, 0 when the request never completed
	Retryable bool // whether a later attempt may succeed
	Err       error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("submit: boundary returned status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("submit: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the error allows a retry. Unclassified errors
// are treated as retryable so transient plumbing failures do not strand an
// otherwise complete application.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var submitErr *Error
	if errors.As(err, &submitErr) {
		return submitErr.Retryable
	}
	return true
}

func retryable(status int, err error) *Error {
	return &Error{Status: status, Retryable: true, Err: err}
}

func permanent(status int, err error) *Error {
	return &Error{Status: status, Retryable: false, Err: err}
}
