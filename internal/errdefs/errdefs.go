// Package errdefs provides the structured error type that crosses command
// boundaries, the kind taxonomy used for exit codes, and the session error
// registry that stores full diagnostic messages behind opaque handles.
package errdefs

import (
	"fmt"
	"strings"
)

// Kind classifies an error for presentation and exit-code mapping.
type Kind string

const (
	// User-facing input and configuration errors
	KindValidation Kind = "validation"
	KindSettings   Kind = "settings"

	// External system errors
	KindVCS     Kind = "vcs"
	KindNetwork Kind = "network"

	// Build and filesystem errors
	KindBuild      Kind = "build"
	KindFilesystem Kind = "filesystem"

	// Everything the tool has no better name for
	KindInternal Kind = "internal"
)

// Error is the checked error produced by fatal escalation. It travels as an
// ordinary error value up to the top-level CLI handler; nothing in this
// codebase panics to unwind.
type Error struct {
	Kind    Kind          `json:"kind"`
	Message string        `json:"message"`
	Handle  string        `json:"handle,omitempty"`
	Cause   error         `json:"cause,omitempty"`
	Context ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for an Error.
type ContextFields map[string]any

// Error implements the error interface. Multi-line diagnostics are reduced
// to their first line; the registry keeps the full text under Handle.
func (e *Error) Error() string {
	msg := FirstLine(e.Message)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new Error.
func New(kind Kind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new Error that wraps an existing error.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// IsKind checks if an error belongs to a specific kind.
func IsKind(err error, kind Kind) bool {
	if ce, ok := err.(*Error); ok {
		return ce.Kind == kind
	}
	return false
}

// KindOf extracts the kind from an error, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	if ce, ok := err.(*Error); ok {
		return ce.Kind
	}
	return KindInternal
}

// AsChecked returns the error as *Error when it already is one. Escalation
// paths use this to avoid re-wrapping and re-registering a condition that
// was already reported once.
func AsChecked(err error) (*Error, bool) {
	ce, ok := err.(*Error)
	return ce, ok
}

// FirstLine reduces a possibly multi-line message to its first line.
func FirstLine(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}
