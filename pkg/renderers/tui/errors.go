package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrEmptyAnswer is returned by validators when a required prompt is left
	// blank.
	ErrEmptyAnswer = errors.New("tui: a value is required")
)
