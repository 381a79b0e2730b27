package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned at client construction when no API key
	// was supplied and none was found in the environment.
	ErrMissingCredential = errors.New("missing credential")

	// ErrUnknownModel is returned for model identifiers outside Models().
	ErrUnknownModel = errors.New("unknown model")

	// ErrDependency marks responses the backend sent that cannot be
	// interpreted (error status, missing content).
	ErrDependency = errors.New("dependency failure")

	// ErrDecode marks streamed payloads that are not valid JSON of the
	// expected shape.
	ErrDecode = errors.New("decode failure")

	// ErrTransport marks connection level failures: DNS, TLS, resets,
	// timeouts, cancellation.
	ErrTransport = errors.New("transport failure")
)

// maxRawLen bounds how much of an offending payload ends up in messages.
const maxRawLen = 512

// DependencyError reports a backend response that could not be used.
type DependencyError struct {
	StatusCode int // 0 when the status was fine but the body was not
	Body       string
	Message    string
}

func (e *DependencyError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unexpected response"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("dependency failure: %s (status %d): %s", msg, e.StatusCode, clip(e.Body))
	}
	return fmt.Sprintf("dependency failure: %s: %s", msg, clip(e.Body))
}

func (e *DependencyError) Unwrap() error { return ErrDependency }

// DecodeError reports a payload that failed to decode. Raw holds the
// offending payload.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failure: %v (payload %q)", e.Err, clip(e.Raw))
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// TransportError reports a failure of the underlying connection.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

func clip(s string) string {
	if len(s) <= maxRawLen {
		return s
	}
	return s[:maxRawLen] + "..."
}
