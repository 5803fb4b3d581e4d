package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cratebuilder/cmd/cratebuilder/commands"
	"git.home.luguber.info/inful/cratebuilder/internal/session"
	"git.home.luguber.info/inful/cratebuilder/internal/version"
)

// newParser builds the CLI grammar the way main does, without the
// process-exiting convenience wrapper.
func newParser(t *testing.T) (*kong.Kong, *commands.CLI) {
	t.Helper()
	cli := &commands.CLI{}
	parser, err := kong.New(cli,
		kong.Name("cratebuilder"),
		kong.Description("Build and manage crates with an external GPR toolchain."),
		kong.Vars{"version": version.Version},
	)
	require.NoError(t, err)
	return parser, cli
}

func TestParseBuildDefaults(t *testing.T) {
	parser, cli := newParser(t)

	ctx, err := parser.Parse([]string{"build"})
	require.NoError(t, err)
	require.Equal(t, "build", ctx.Command())
	require.False(t, cli.Verbose)
	require.False(t, cli.Debug)
	require.False(t, cli.Quiet)
	require.False(t, cli.Force)
}

func TestParseGlobalFlagsWithPin(t *testing.T) {
	parser, cli := newParser(t)

	ctx, err := parser.Parse([]string{"-d", "-f", "pin", "libfoo", "--version", "1.2.3"})
	require.NoError(t, err)
	require.Equal(t, "pin <crate>", ctx.Command())
	require.True(t, cli.Debug)
	require.True(t, cli.Force)
	require.Equal(t, "libfoo", cli.Pin.Crate)
	require.Equal(t, "1.2.3", cli.Pin.Version)
}

func TestParsePinTargetsAreExclusive(t *testing.T) {
	parser, _ := newParser(t)

	_, err := parser.Parse([]string{"pin", "libfoo", "--version", "1.0", "--use", "../libfoo"})
	require.Error(t, err)

	_, err = parser.Parse([]string{"pin", "libfoo"})
	require.Error(t, err, "a pin target must be chosen")
}

func TestParseInitRequiresKind(t *testing.T) {
	parser, _ := newParser(t)

	_, err := parser.Parse([]string{"init", "demo_app"})
	require.Error(t, err)

	parser, cli := newParser(t)
	ctx, err := parser.Parse([]string{"init", "demo_app", "--bin"})
	require.NoError(t, err)
	require.Equal(t, "init <name>", ctx.Command())
	require.True(t, cli.Init.Bin)
	require.False(t, cli.Init.Lib)
}

func TestParseSettingsDirResolvesToAbsolutePath(t *testing.T) {
	t.Chdir(t.TempDir())
	parser, cli := newParser(t)

	_, err := parser.Parse([]string{"--settings", "rel/dir", "settings", "--list"})
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(cli.SettingsDir), "got %q", cli.SettingsDir)
}

func TestRunInitThroughParser(t *testing.T) {
	t.Chdir(t.TempDir())
	parser, cli := newParser(t)

	ctx, err := parser.Parse([]string{"init", "demo_app", "--bin"})
	require.NoError(t, err)

	sess := session.New(session.Options{Force: cli.Force, Debug: cli.Debug, Quiet: cli.Quiet, Verbose: cli.Verbose})
	out := &bytes.Buffer{}
	require.NoError(t, ctx.Run(&commands.Global{
		Session:     sess,
		Stdout:      out,
		SettingsDir: t.TempDir(),
	}))

	require.Equal(t, "demo_app initialized successfully.\n", out.String())
	require.FileExists(t, filepath.Join("demo_app", "crate.toml"))
	require.FileExists(t, filepath.Join("demo_app", "demo_app.gpr"))
}
