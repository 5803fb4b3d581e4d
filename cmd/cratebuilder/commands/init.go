package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/cratebuilder/internal/crates"
	"git.home.luguber.info/inful/cratebuilder/internal/errdefs"
	"git.home.luguber.info/inful/cratebuilder/internal/logfields"
	"git.home.luguber.info/inful/cratebuilder/internal/manifest"
	"git.home.luguber.info/inful/cratebuilder/internal/scaffold"
)

// initialVersion is the semantic version every new crate starts at.
const initialVersion = "0.1.0"

// InitCmd implements the 'init' command.
type InitCmd struct {
	Name    string `arg:"" help:"Name of the new crate"`
	Bin     bool   `help:"Scaffold an executable crate" xor:"kind" required:""`
	Lib     bool   `help:"Scaffold a library crate" xor:"kind" required:""`
	InPlace bool   `name:"in-place" help:"Scaffold into the current directory instead of creating one"`
}

func (i *InitCmd) Run(g *Global) error {
	sess := g.Session

	name, err := crates.Parse(i.Name)
	if err != nil {
		return err
	}
	kind := manifest.KindBin
	if i.Lib {
		kind = manifest.KindLib
	}

	dir := name.String()
	if i.InPlace {
		dir = "."
	} else if mkErr := os.Mkdir(dir, 0o750); mkErr != nil {
		if os.IsExist(mkErr) {
			return sess.FatalKind(errdefs.KindFilesystem, fmt.Sprintf("directory %q already exists", dir))
		}
		return sess.FatalErr(mkErr, errdefs.KindFilesystem, "cannot create the crate directory")
	}

	man := &manifest.Manifest{Name: name.String(), Version: initialVersion, Kind: kind}
	written, err := scaffold.Create(dir, man)
	if err != nil {
		return sess.FatalErr(err, errdefs.KindFilesystem, "cannot scaffold the crate")
	}
	for _, path := range written {
		sess.Logger.Debug("Created file", logfields.Path(path))
	}
	fmt.Fprintf(g.Stdout, "%s initialized successfully.\n", name)
	return nil
}
