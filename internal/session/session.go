// Package session carries the per-invocation state every command operates
// on: policy flags, the logger, the error registry and the stderr mirror.
// Commands receive a *Session explicitly instead of reaching for globals,
// which keeps escalation behavior testable and re-entrant.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/cratebuilder/internal/errdefs"
)

// Session is the explicit execution context of one CLI invocation.
type Session struct {
	// Force selects the default recovery policy: recoverable conditions
	// continue with a warning instead of failing.
	Force bool
	// Debug mirrors fatal diagnostics directly to Stderr, bypassing the
	// logger's severity filtering.
	Debug bool
	// Quiet and Verbose record the requested log threshold; the logger
	// passed in already honors them.
	Quiet   bool
	Verbose bool

	Logger   *slog.Logger
	Registry *errdefs.Registry
	Stderr   io.Writer
}

// Options configures a new session. Zero values give a default session
// logging through slog.Default to os.Stderr.
type Options struct {
	Force   bool
	Debug   bool
	Quiet   bool
	Verbose bool
	Logger  *slog.Logger
	Stderr  io.Writer
}

// New creates a session with a fresh error registry.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Session{
		Force:    opts.Force,
		Debug:    opts.Debug,
		Quiet:    opts.Quiet,
		Verbose:  opts.Verbose,
		Logger:   logger,
		Registry: errdefs.NewRegistry(),
		Stderr:   stderr,
	}
}

// Fatal registers message and returns the checked error carrying its
// registry handle. An error that is already checked passes through
// unchanged, so a condition is registered and reported exactly once no
// matter how many layers it crosses.
func (s *Session) Fatal(message string) error {
	return s.FatalKind(errdefs.KindInternal, message)
}

// FatalKind is Fatal with an explicit error kind.
func (s *Session) FatalKind(kind errdefs.Kind, message string) error {
	s.mirror(message)
	ce := errdefs.New(kind, message)
	ce.Handle = s.Registry.Set(message)
	return ce
}

// FatalErr escalates err. Checked errors are returned as-is; anything else
// is wrapped, registered and classified.
func (s *Session) FatalErr(err error, kind errdefs.Kind, message string) error {
	if err == nil {
		return nil
	}
	if ce, ok := errdefs.AsChecked(err); ok {
		return ce
	}
	full := fmt.Sprintf("%s: %v", message, err)
	s.mirror(full)
	ce := errdefs.Wrap(err, kind, message)
	ce.Handle = s.Registry.Set(full)
	return ce
}

// Recoverable applies the session's default recovery policy: under force
// the condition is logged as a warning and execution continues (nil),
// otherwise it escalates to Fatal.
func (s *Session) Recoverable(message string) error {
	return s.RecoverableWhen(message, s.Force)
}

// RecoverableWhen is Recoverable with an explicit policy decision. The
// escalated error tells the user the condition could have been forced.
func (s *Session) RecoverableWhen(message string, recover bool) error {
	if recover {
		s.Logger.Warn(message)
		return nil
	}
	return s.FatalKind(errdefs.KindValidation, message+" (use -f to force continuation)")
}

// mirror writes a diagnostic straight to stderr when debug mode is on,
// bypassing the logger's severity filter. With -d failures are visible at
// the moment they are raised, not only at the top-level handler.
func (s *Session) mirror(message string) {
	if !s.Debug {
		return
	}
	fmt.Fprintf(s.Stderr, "*** %s\n", message)
}
