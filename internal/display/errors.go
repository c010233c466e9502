package display

import "fmt"

// Error is a display failure. The session shows its message in place of
// regular screen content and clears the active screen's buffers.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

func errorf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}
