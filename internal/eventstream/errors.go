package eventstream

import (
	"errors"
	"fmt"
)

// errAlreadySubscribed is the cause wrapped into a ProtocolError when a
// second subscriber attempts to attach to an EventPublisher: at most one
// downstream subscriber may ever attach to a given transformer.
var errAlreadySubscribed = errors.New("eventstream: publisher already has a subscriber")

// Error is the unified error interface for failures originating inside the
// transformer.
type Error interface {
	error
	Stage() string
	Unwrap() error
}

// DecodeError wraps a failure in frame decoding, header-schema validation,
// or unmarshalling — the "decode error" entry of the error taxonomy. Any
// unmarshaller failure, and any frame-decoder failure (including a
// checksum mismatch), is reported this way.
type DecodeError struct {
	stage string
	err   error
}

// NewDecodeError wraps err as a DecodeError attributed to stage (one of
// "frame", "header-schema", "initial-response", "event", "exception").
func NewDecodeError(stage string, err error) *DecodeError {
	return &DecodeError{stage: stage, err: err}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("eventstream: decode error at stage %q: %v", e.stage, e.err)
}

func (e *DecodeError) Stage() string { return e.stage }
func (e *DecodeError) Unwrap() error { return e.err }

// ProtocolError wraps the domain-specific error value produced by the
// caller-supplied exception unmarshaller for an "error"/"exception" wire
// message — the "protocol error frame" entry of the error taxonomy.
type ProtocolError struct {
	err error
}

// NewProtocolError wraps a domain error decoded from an error/exception frame.
func NewProtocolError(err error) *ProtocolError {
	return &ProtocolError{err: err}
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("eventstream: protocol error frame: %v", e.err)
}

func (e *ProtocolError) Stage() string { return "protocol" }
func (e *ProtocolError) Unwrap() error { return e.err }
