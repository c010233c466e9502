package command

import "errors"

// Sentinel errors the session routes on. All other errors bubbling out of
// routing or execution are shown verbatim in the status line.
var (
	// ErrQuit ends the session. It is a signal, not a failure.
	ErrQuit = errors.New("quit")
	// ErrAborted is returned when the user backs out of a prompt chain.
	ErrAborted = errors.New("Input aborted by user.")
	// ErrNotFound is returned for an unregistered trigger and for a fork
	// that matched no route and carries no default.
	ErrNotFound = errors.New("Command not found.")
	// ErrEmptyInput is returned for a blank submission.
	ErrEmptyInput = errors.New("Try 'help' if you're having trouble.")
)
