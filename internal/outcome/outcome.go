// Package outcome provides the success-or-message result value used by
// operations whose failure is a condition to report rather than an error to
// wrap. An Outcome either succeeded, or failed with a non-empty message;
// there is no third state.
package outcome

import (
	"fmt"
	"runtime"

	"git.home.luguber.info/inful/cratebuilder/internal/errdefs"
	"git.home.luguber.info/inful/cratebuilder/internal/session"
)

// Outcome represents an operation that either succeeded or failed with a
// human-readable message. The zero value is NOT valid; construct through
// Success, Failure or FromError so the message invariant holds.
type Outcome struct {
	message string
	ok      bool
}

// Success creates a successful Outcome.
func Success() Outcome {
	return Outcome{ok: true}
}

// Failure creates a failed Outcome. The construction site is logged at
// debug severity; when the session runs with -d the same diagnostic block
// is mirrored to stderr, bypassing the severity filter. Failures are
// values until asserted; constructing one never escalates.
func Failure(s *session.Session, message string) Outcome {
	if message == "" {
		message = "unknown failure"
	}
	if s != nil {
		site := callSite(2)
		s.Logger.Debug("outcome failure", "message", message, "raised_at", site)
		if s.Debug {
			fmt.Fprintf(s.Stderr, "*** outcome failure: %s\n", message)
			fmt.Fprintf(s.Stderr, "*** raised at %s\n", site)
		}
	}
	return Outcome{message: message}
}

// FailureNoTrace creates a failed Outcome without debug diagnostics, for
// expected failures that callers routinely probe and discard.
func FailureNoTrace(message string) Outcome {
	if message == "" {
		message = "unknown failure"
	}
	return Outcome{message: message}
}

// FromError converts an error into an Outcome; a nil error is Success.
// Checked errors contribute their full stored diagnostic, not the
// single-line rendering, and are not re-traced: they were reported when
// first raised.
func FromError(s *session.Session, err error) Outcome {
	if err == nil {
		return Success()
	}
	if ce, ok := errdefs.AsChecked(err); ok {
		message := ce.Message
		if s != nil && ce.Handle != "" {
			if full := s.Registry.Get(ce.Handle, false); full != ce.Handle {
				message = full
			}
		}
		if s != nil {
			s.Logger.Debug("outcome from error", "kind", string(ce.Kind), "message", message)
		}
		return Outcome{message: message}
	}
	return Failure(s, err.Error())
}

// Success reports whether the outcome is a success.
func (o Outcome) Success() bool {
	return o.ok
}

// Message returns the failure message, empty for successes.
func (o Outcome) Message() string {
	return o.message
}

// String renders the outcome for logs.
func (o Outcome) String() string {
	if o.ok {
		return "success"
	}
	return "failure: " + o.message
}

// Assert escalates a failed outcome into a checked fatal error through the
// session; successful outcomes assert to nil.
func Assert(s *session.Session, o Outcome) error {
	if o.ok {
		return nil
	}
	return s.FatalKind(errdefs.KindInternal, o.message)
}

// AssertKind is Assert with an explicit error kind for the failure.
func AssertKind(s *session.Session, o Outcome, kind errdefs.Kind) error {
	if o.ok {
		return nil
	}
	return s.FatalKind(kind, o.message)
}

// Check asserts a boolean condition, escalating with message when false.
func Check(s *session.Session, condition bool, message string) error {
	if condition {
		return nil
	}
	return s.FatalKind(errdefs.KindInternal, message)
}

func callSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}
