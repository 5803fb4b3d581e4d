package commands

import (
	"fmt"

	"git.home.luguber.info/inful/cratebuilder/internal/logfields"
	"git.home.luguber.info/inful/cratebuilder/internal/platform"
	"git.home.luguber.info/inful/cratebuilder/internal/settings"
	"git.home.luguber.info/inful/cratebuilder/internal/version"
)

// VersionCmd implements the 'version' command.
type VersionCmd struct{}

func (v *VersionCmd) Run(g *Global) error {
	fmt.Fprintf(g.Stdout, "cratebuilder %s\n", version.Version)
	if commit, ok := version.Commit(); ok {
		fmt.Fprintf(g.Stdout, "commit %s\n", commit)
	}
	if built, ok := version.Built(); ok {
		fmt.Fprintf(g.Stdout, "built %s\n", built)
	}

	// Platform detection is informational and never fails the command;
	// without readable settings it simply runs with detection enabled.
	disableDistro := false
	if store, err := loadStore(g); err == nil {
		disableDistro = store.Bool(settings.KeyDistroDisableDetection)
	} else {
		g.Session.Logger.Debug("Settings unavailable, using default platform detection", logfields.Error(err))
	}

	fmt.Fprintln(g.Stdout, "platform properties:")
	for _, property := range platform.Detect(disableDistro).List() {
		fmt.Fprintf(g.Stdout, "   %s\n", property)
	}
	return nil
}
