package errdefs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the command-line entry point. It prints exactly one message per failure,
// resolving registry handles to the full stored diagnostic first.
type CLIErrorAdapter struct {
	verbose  bool
	logger   *slog.Logger
	registry *Registry
	stderr   io.Writer
	exit     func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger, registry *Registry) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose:  verbose,
		logger:   logger,
		registry: registry,
		stderr:   os.Stderr,
		exit:     os.Exit,
	}
}

// WithExit overrides process termination, for tests.
func (a *CLIErrorAdapter) WithExit(exit func(int)) *CLIErrorAdapter {
	a.exit = exit
	return a
}

// WithStderr overrides the error stream, for tests.
func (a *CLIErrorAdapter) WithStderr(w io.Writer) *CLIErrorAdapter {
	a.stderr = w
	return a
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if ce, ok := AsChecked(err); ok {
		return exitCodeFromKind(ce.Kind)
	}
	return 1
}

func exitCodeFromKind(kind Kind) int {
	switch kind {
	case KindValidation:
		return 2 // Invalid usage
	case KindSettings:
		return 7 // Settings error
	case KindVCS, KindNetwork:
		return 8 // External system error
	case KindBuild, KindFilesystem:
		return 11 // Build error
	case KindInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	ce, ok := AsChecked(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}

	msg := a.resolveMessage(ce)
	if a.verbose && ce.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, ce.Cause)
	}

	switch ce.Kind {
	case KindValidation, KindSettings:
		return msg
	default:
		return fmt.Sprintf("%s: %s", ce.Kind, msg)
	}
}

// resolveMessage prefers the full registered diagnostic over the error
// value's (possibly first-line only) message. The entry is cleared: the
// adapter is the end of the line for a failure.
func (a *CLIErrorAdapter) resolveMessage(ce *Error) string {
	if a.registry == nil || ce.Handle == "" {
		return ce.Message
	}
	if full := a.registry.Get(ce.Handle, true); full != ce.Handle {
		return full
	}
	return ce.Message
}

// HandleError processes an error and exits the program with the mapped
// code. A nil error is a no-op.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	a.logError(err)

	fmt.Fprintf(a.stderr, "%s\n", message)
	a.exit(exitCode)
}

// logError records the failure with structured fields before presentation.
func (a *CLIErrorAdapter) logError(err error) {
	if ce, ok := AsChecked(err); ok {
		attrs := []slog.Attr{
			slog.String("kind", string(ce.Kind)),
		}
		if ce.Handle != "" {
			attrs = append(attrs, slog.String("error_handle", ce.Handle))
		}
		for k, v := range ce.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		a.logger.LogAttrs(nil, slog.LevelDebug, FirstLine(ce.Message), attrs...)
		return
	}

	a.logger.Debug("Unclassified error", "error", err)
}
