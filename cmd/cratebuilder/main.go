package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/cratebuilder/cmd/cratebuilder/commands"
	"git.home.luguber.info/inful/cratebuilder/internal/errdefs"
	"git.home.luguber.info/inful/cratebuilder/internal/session"
	"git.home.luguber.info/inful/cratebuilder/internal/version"
)

func main() {
	// Local development convenience; a missing .env is the normal case.
	_ = godotenv.Load()

	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("cratebuilder"),
		kong.Description("Build and manage crates with an external GPR toolchain."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	sess := session.New(session.Options{
		Force:   cli.Force,
		Debug:   cli.Debug,
		Quiet:   cli.Quiet,
		Verbose: cli.Verbose,
	})

	err := ctx.Run(&commands.Global{
		Session:     sess,
		Stdout:      os.Stdout,
		SettingsDir: cli.SettingsDir,
	})

	adapter := errdefs.NewCLIErrorAdapter(cli.Verbose || cli.Debug, sess.Logger, sess.Registry)
	adapter.HandleError(err)
}
