package commands

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/cratebuilder/internal/buildtool"
	"git.home.luguber.info/inful/cratebuilder/internal/errdefs"
	"git.home.luguber.info/inful/cratebuilder/internal/logging"
	"git.home.luguber.info/inful/cratebuilder/internal/manifest"
	"git.home.luguber.info/inful/cratebuilder/internal/session"
	"git.home.luguber.info/inful/cratebuilder/internal/settings"
	"git.home.luguber.info/inful/cratebuilder/internal/vcs"
)

// Fetcher materializes a repository spec into a local checkout and returns
// the commit it left checked out. vcs.Client is the production
// implementation; tests substitute a stub.
type Fetcher interface {
	Fetch(ctx context.Context, spec vcs.Spec, dest string) (string, error)
}

// Global carries the per-invocation state shared by all subcommands.
// Tests inject a session with a recording logger, a stub driver, and a
// buffer for Stdout.
type Global struct {
	Session     *session.Session
	Driver      buildtool.Driver // nil means resolve from settings at build time
	Fetcher     Fetcher          // nil means a default vcs client
	Stdout      io.Writer
	SettingsDir string
}

// CLI definition & global flags shared by every subcommand.
type CLI struct {
	Verbose     bool             `short:"v" help:"Show detail-level log output"`
	Debug       bool             `short:"d" help:"Show debug-level log output and mirror failures to stderr as they happen"`
	Quiet       bool             `short:"q" help:"Only show warnings and errors"`
	Force       bool             `short:"f" help:"Continue past recoverable problems with a warning"`
	SettingsDir string           `name:"settings" type:"path" help:"Override the global settings directory" env:"CRATEBUILDER_SETTINGS"`
	VersionFlag kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Compile the current crate with the external builder"`
	Init     InitCmd     `cmd:"" help:"Scaffold a new crate"`
	Pin      PinCmd      `cmd:"" help:"Pin a dependency crate to a version, path or repository"`
	Settings SettingsCmd `cmd:"" help:"Inspect and change tool settings"`
	Version  VersionCmd  `cmd:"" help:"Show version and platform properties"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logging.Setup(os.Stderr, logging.Options{Verbose: c.Verbose, Debug: c.Debug, Quiet: c.Quiet})
	return nil
}

// requireCrate loads and validates the manifest of the crate around the
// current directory. The compile and pin workflows call it right after the
// directory guard, so a hit is normally the current directory itself.
func requireCrate(sess *session.Session) (*manifest.Manifest, error) {
	root, err := manifest.Discover(".")
	if err != nil {
		if errors.Is(err, manifest.ErrNoCrate) {
			return nil, sess.FatalKind(errdefs.KindValidation,
				"no crate found here or in any parent directory (missing "+manifest.FileName+")")
		}
		return nil, sess.FatalErr(err, errdefs.KindFilesystem, "cannot search for a crate manifest")
	}
	man, err := manifest.Load(filepath.Join(root, manifest.FileName))
	if err != nil {
		return nil, sess.FatalErr(err, errdefs.KindValidation, "cannot load crate manifest")
	}
	return man, nil
}

// loadStore builds the merged settings view: the global scope plus the
// local scope of the crate around the current directory, when there is
// one. Callers decide whether a failure is fatal.
func loadStore(g *Global) (*settings.Store, error) {
	globalDir, err := settings.DefaultGlobalDir(g.SettingsDir)
	if err != nil {
		return nil, err
	}
	crateRoot := ""
	if root, derr := manifest.Discover("."); derr == nil {
		crateRoot = root
	}
	return settings.Load(globalDir, crateRoot)
}
