// Package agenterr provides structured error kinds for agentcore. Each kind
// preserves a causal chain via Unwrap so callers can use errors.Is/errors.As
// while keeping the message stable for serialization back to a model or
// client.
package agenterr

import (
	"errors"
	"fmt"
)

// Kind classifies an agentcore error per the propagation policy in §7:
// only Model and Cancellation errors terminate a run; everything else is
// recovered as visible content and the loop continues.
type Kind string

const (
	// KindConfig marks invalid configuration at construction time. Fatal to
	// the instance being constructed.
	KindConfig Kind = "config"
	// KindModel marks a failed model call. Terminates the run.
	KindModel Kind = "model"
	// KindTool marks a failed tool invocation. Recovered as a ToolResultBlock;
	// the loop continues.
	KindTool Kind = "tool"
	// KindMemory marks a compaction failure. The strategy is skipped and the
	// loop continues.
	KindMemory Kind = "memory"
	// KindOffload marks a reload against a missing/invalid handle. Returned
	// as error content to the model, never thrown.
	KindOffload Kind = "offload"
	// KindProtocol marks a malformed external request. Rejected at the HTTP
	// layer.
	KindProtocol Kind = "protocol"
	// KindCancellation marks a disposed/canceled stream. Propagated cleanly.
	KindCancellation Kind = "cancellation"
	// KindTimeout marks a run that exceeded its time budget. Treated like
	// KindCancellation with a distinct payload.
	KindTimeout Kind = "timeout"
)

// Error is a structured agentcore failure that preserves message and causal
// context while still implementing the standard error interface.
type Error struct {
	// Kind classifies the failure for propagation-policy dispatch.
	Kind Kind
	// Message is the human-readable summary of the failure.
	Message string
	// Cause links to the underlying error, enabling chains with errors.Is/As.
	Cause error
}

// New constructs an Error of the given kind with the provided message.
func New(kind Kind, message string) *Error {
	if message == "" {
		message = string(kind) + " error"
	}
	return &Error{Kind: kind, Message: message}
}

// Errorf formats according to a format specifier and returns an *Error of the
// given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap constructs an Error of the given kind that wraps an underlying error.
// Returns nil if cause is nil.
func Wrap(kind Kind, message string, cause error) *Error {
	if cause == nil {
		return nil
	}
	if message == "" {
		message = cause.Error()
	}
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}
	return e.Message
}

// Unwrap returns the underlying error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, agenterr.New(agenterr.KindModel, "")) style checks via
// the IsKind helper below, or compare kinds directly.
func (e *Error) Is(target error) bool {
	var te *Error
	if !errors.As(target, &te) {
		return false
	}
	return te.Kind == e.Kind
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// Terminal reports whether the error kind terminates a ReAct run per the §7
// propagation policy (Model and Cancellation/Timeout errors only).
func Terminal(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case KindModel, KindCancellation, KindTimeout:
		return true
	default:
		return false
	}
}
