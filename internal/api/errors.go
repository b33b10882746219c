package api

import (
	"errors"
	"fmt"
)

// Error describes a failed backend call.  Status is zero when the request
// never produced a response.  Message carries the server-supplied text, if
// any; it is the only part that may be shown to a user.
type Error struct {
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("api %s: %v", e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("api %s: status %d: %v", e.Path, e.Status, e.Err)
	case e.Message != "":
		return fmt.Sprintf("api %s: status %d: %s", e.Path, e.Status, e.Message)
	default:
		return fmt.Sprintf("api %s: status %d", e.Path, e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage returns the server-supplied message, which is the only part of
// an Error fit for display.
func (e *Error) UserMessage() string { return e.Message }

// ServerMessage extracts the server-supplied message from err, if err is
// an *Error carrying one.
func ServerMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return ""
}

// IsTransport reports whether err is a failure that never reached the
// server (no HTTP status).
func IsTransport(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == 0
}
