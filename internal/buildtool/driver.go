// Package buildtool invokes the external project builder. The compile
// workflow talks to the Driver interface so tests substitute the binary
// with a stub; ExecDriver is the production implementation.
package buildtool

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"git.home.luguber.info/inful/cratebuilder/internal/logfields"
)

// DefaultBinary is the builder invoked unless settings override it.
const DefaultBinary = "gprbuild"

// Invocation describes one build run.
type Invocation struct {
	// BuildFile is the build description handed to the builder,
	// normally the crate's generated aggregate wrapper.
	BuildFile string
	// Quiet and Verbose forward the session's verbosity to the builder.
	Quiet   bool
	Verbose bool
}

// Driver runs the external builder.
type Driver interface {
	Run(ctx context.Context, inv Invocation) error
}

// NotFoundError reports a builder binary missing from PATH.
type NotFoundError struct {
	Binary string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("builder %q not found in PATH (set build.driver to the builder to use)", e.Binary)
}

// ExitError reports a builder run that finished with a non-zero status.
type ExitError struct {
	Binary   string
	ExitCode int
	Cause    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Binary, e.ExitCode)
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// ExecDriver invokes the configured builder binary with the crate's build
// description, inheriting stdout and stderr so builder output reaches the
// user unfiltered.
type ExecDriver struct {
	Binary string
}

// NewExecDriver creates a driver for binary; an empty name selects
// DefaultBinary.
func NewExecDriver(binary string) *ExecDriver {
	if binary == "" {
		binary = DefaultBinary
	}
	return &ExecDriver{Binary: binary}
}

// Run executes the builder. A missing binary returns *NotFoundError, a
// non-zero exit *ExitError; both leave classification to the caller.
func (d *ExecDriver) Run(ctx context.Context, inv Invocation) error {
	if _, err := exec.LookPath(d.Binary); err != nil {
		return &NotFoundError{Binary: d.Binary}
	}

	args := []string{"-P", inv.BuildFile}
	if inv.Quiet {
		args = append(args, "-q")
	}
	if inv.Verbose {
		args = append(args, "-v")
	}

	cmd := exec.CommandContext(ctx, d.Binary, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Debug("Running builder",
		logfields.Command(d.Binary), logfields.Path(inv.BuildFile))

	if err := cmd.Run(); err != nil {
		if exit, ok := err.(*exec.ExitError); ok {
			return &ExitError{Binary: d.Binary, ExitCode: exit.ExitCode(), Cause: err}
		}
		return &ExitError{Binary: d.Binary, ExitCode: -1, Cause: err}
	}
	return nil
}
