package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDeclined signals the user chose not to submit after a failure.
	ErrDeclined = errors.New("tui: submission declined")
)
