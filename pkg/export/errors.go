package export

import (
	"errors"
	"fmt"
)

// Kind classifies export failures for the transport layer
type Kind int

const (
	// KindInvalidPayload means the request body was not a JSON object
	KindInvalidPayload Kind = iota + 1
	// KindSerialization means the document could not be built or written
	KindSerialization
)

func (k Kind) String() string {
	switch k {
	case KindInvalidPayload:
		return "invalid payload"
	case KindSerialization:
		return "serialization"
	default:
		return "unknown"
	}
}

// Error is returned by Service.Export. Cause carries the detail that is
// logged but never shown to clients.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export failed (%s): %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("export failed (%s)", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsInvalidPayload checks if err is an export error caused by the payload
func IsInvalidPayload(err error) bool {
	var target *Error
	return errors.As(err, &target) && target.Kind == KindInvalidPayload
}

// IsSerialization checks if err is an export error raised while producing the document
func IsSerialization(err error) bool {
	var target *Error
	return errors.As(err, &target) && target.Kind == KindSerialization
}
