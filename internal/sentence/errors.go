package sentence

import (
	"fmt"
)

// TransportError indicates the service could not be reached, timed out, or
// answered with a non-2xx status.
type TransportError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("sentence service %s: status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("sentence service %s: status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("sentence service %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("sentence service %s failed", e.Op)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError indicates the service answered, but the body was not
// JSON or did not match the expected shape.
type MalformedResponseError struct {
	Body []byte
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed sentence response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
