package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"git.home.luguber.info/inful/cratebuilder/internal/artifacts"
	"git.home.luguber.info/inful/cratebuilder/internal/buildtool"
	"git.home.luguber.info/inful/cratebuilder/internal/errdefs"
	"git.home.luguber.info/inful/cratebuilder/internal/logging"
	"git.home.luguber.info/inful/cratebuilder/internal/manifest"
	"git.home.luguber.info/inful/cratebuilder/internal/outcome"
	"git.home.luguber.info/inful/cratebuilder/internal/settings"
	"git.home.luguber.info/inful/cratebuilder/internal/workdir"
)

// executableSearchDepth bounds the artifact search below the crate root.
// Executables nested deeper, or with non-standard names, are not found;
// the detail-level message after a build exists for exactly that case.
const executableSearchDepth = 2

// BuildCmd implements the 'build' command.
type BuildCmd struct{}

func (b *BuildCmd) Run(g *Global) (err error) {
	sess := g.Session
	ctx := context.Background()

	guard, err := workdir.EnterProjectRoot(sess, manifest.FileName)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := guard.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	man, err := requireCrate(sess)
	if err != nil {
		return err
	}
	buildFile := man.BuildFileName()
	if o := buildFilePresent(man, buildFile); !o.Success() {
		return outcome.AssertKind(sess, o, errdefs.KindFilesystem)
	}
	if werr := man.WriteAugmented(man.AugmentedFileName()); werr != nil {
		return sess.FatalErr(werr, errdefs.KindFilesystem, "cannot regenerate the build wrapper")
	}

	driver, err := b.driver(g)
	if err != nil {
		return err
	}
	invocation := buildtool.Invocation{
		BuildFile: man.AugmentedFileName(),
		Quiet:     sess.Quiet,
		Verbose:   sess.Verbose || sess.Debug,
	}
	if runErr := driver.Run(ctx, invocation); runErr != nil {
		if errors.As(runErr, new(*buildtool.NotFoundError)) {
			return sess.FatalErr(runErr, errdefs.KindSettings, "cannot run the builder")
		}
		sess.Logger.Warn("a compilation failure was detected, re-run with -v or -d for details")
		return sess.FatalErr(runErr, errdefs.KindBuild, "compilation failed")
	}

	isLib, err := manifest.IsLibrary(buildFile)
	if err != nil {
		return sess.FatalErr(err, errdefs.KindFilesystem, "cannot inspect the build description")
	}
	if isLib {
		sess.Logger.Info("Compilation finished without errors")
		return nil
	}

	matches, err := artifacts.Locate(".", man.CrateName().Executable(), executableSearchDepth)
	if err != nil {
		return sess.FatalErr(err, errdefs.KindFilesystem, "cannot search for the built executable")
	}
	if len(matches) == 0 {
		sess.Logger.Log(ctx, logging.LevelDetail,
			"No executable found after compilation (might be too deep or have non-standard name)")
		return nil
	}
	for _, match := range matches {
		sess.Logger.Info(fmt.Sprintf("Executable found at %q", match))
	}
	return nil
}

// buildFilePresent is the compile precondition: the crate's build
// description must exist before the aggregate wrapper is generated
// around it.
func buildFilePresent(man *manifest.Manifest, buildFile string) outcome.Outcome {
	if _, err := os.Stat(buildFile); err != nil {
		return outcome.FailureNoTrace(
			fmt.Sprintf("crate %s has no build description %q", man.Name, buildFile))
	}
	return outcome.Success()
}

// driver resolves the build driver: an injected one wins, otherwise the
// settings key build.driver selects the binary for an exec driver.
func (b *BuildCmd) driver(g *Global) (buildtool.Driver, error) {
	if g.Driver != nil {
		return g.Driver, nil
	}
	store, err := loadStore(g)
	if err != nil {
		return nil, g.Session.FatalErr(err, errdefs.KindSettings, "cannot load settings")
	}
	return buildtool.NewExecDriver(store.String(settings.KeyBuildDriver, "")), nil
}
