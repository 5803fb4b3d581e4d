package buildtool

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// installFakeBuilder places an executable script named binary on a private
// PATH and returns the file its argv is recorded to.
func installFakeBuilder(t *testing.T, binary, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake builder scripts are POSIX only")
	}
	dir := t.TempDir()
	argvFile := filepath.Join(dir, "argv")
	full := "#!/bin/sh\necho \"$@\" > " + argvFile + "\n" + script + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, binary), []byte(full), 0o700))
	t.Setenv("PATH", dir)
	return argvFile
}

func TestExecDriverSuccess(t *testing.T) {
	argvFile := installFakeBuilder(t, "fakebuild", "exit 0")
	d := NewExecDriver("fakebuild")

	err := d.Run(context.Background(), Invocation{BuildFile: "demo_cb.gpr"})
	require.NoError(t, err)

	argv, err := os.ReadFile(argvFile)
	require.NoError(t, err)
	require.Equal(t, "-P demo_cb.gpr\n", string(argv))
}

func TestExecDriverVerbosityFlags(t *testing.T) {
	argvFile := installFakeBuilder(t, "fakebuild", "exit 0")
	d := NewExecDriver("fakebuild")

	require.NoError(t, d.Run(context.Background(), Invocation{BuildFile: "x.gpr", Quiet: true}))
	argv, err := os.ReadFile(argvFile)
	require.NoError(t, err)
	require.Equal(t, "-P x.gpr -q\n", string(argv))

	require.NoError(t, d.Run(context.Background(), Invocation{BuildFile: "x.gpr", Verbose: true}))
	argv, err = os.ReadFile(argvFile)
	require.NoError(t, err)
	require.Equal(t, "-P x.gpr -v\n", string(argv))
}

func TestExecDriverNonZeroExit(t *testing.T) {
	installFakeBuilder(t, "fakebuild", "exit 4")
	d := NewExecDriver("fakebuild")

	err := d.Run(context.Background(), Invocation{BuildFile: "demo_cb.gpr"})
	require.Error(t, err)

	var exit *ExitError
	require.True(t, errors.As(err, &exit))
	require.Equal(t, 4, exit.ExitCode)
	require.Equal(t, "fakebuild", exit.Binary)
}

func TestExecDriverMissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	d := NewExecDriver("definitely_not_installed")

	err := d.Run(context.Background(), Invocation{BuildFile: "x.gpr"})
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Contains(t, err.Error(), "build.driver")
}

func TestNewExecDriverDefault(t *testing.T) {
	require.Equal(t, DefaultBinary, NewExecDriver("").Binary)
	require.Equal(t, "mybuild", NewExecDriver("mybuild").Binary)
}
