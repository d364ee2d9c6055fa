package recordstore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when the store has no record with the requested id.
// Delete treats it as success; get and update surface it.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a payload the store rejected, with per-field
// messages when the store provided them.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+" "+msg)
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// TransportError covers everything unrelated to business rules: network
// failures, 5xx responses, malformed bodies. Never retried automatically.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record store request failed: %v", e.Err)
	}
	return fmt.Sprintf("record store returned status %d: %s", e.Status, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }
