package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/cratebuilder/internal/crates"
	"git.home.luguber.info/inful/cratebuilder/internal/errdefs"
	"git.home.luguber.info/inful/cratebuilder/internal/logfields"
	"git.home.luguber.info/inful/cratebuilder/internal/manifest"
	"git.home.luguber.info/inful/cratebuilder/internal/session"
	"git.home.luguber.info/inful/cratebuilder/internal/settings"
	"git.home.luguber.info/inful/cratebuilder/internal/vcs"
	"git.home.luguber.info/inful/cratebuilder/internal/workdir"
)

// PinCmd implements the 'pin' command.
type PinCmd struct {
	Crate   string `arg:"" help:"Dependency crate to pin"`
	Version string `help:"Pin to a released version" xor:"target" required:""`
	Use     string `help:"Pin to a local path or a git URL" placeholder:"PATH|URL" xor:"target" required:""`
	Commit  string `help:"Checkout this commit for URL pins"`
	Branch  string `help:"Track this branch for URL pins"`
	Unpin   bool   `help:"Remove an existing pin" xor:"target" required:""`
}

func (p *PinCmd) Run(g *Global) (err error) {
	sess := g.Session

	name, err := crates.Parse(p.Crate)
	if err != nil {
		return err
	}

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

	if p.Unpin {
		return p.unpin(g, man, name)
	}

	pin := manifest.Pin{Commit: p.Commit, Branch: p.Branch}
	switch {
	case p.Version != "":
		pin.Version = p.Version
	case isRemoteURL(p.Use):
		pin.URL = p.Use
	default:
		pin.Path = p.Use
	}
	if verr := pin.Validate(name.String()); verr != nil {
		return sess.FatalErr(verr, errdefs.KindValidation, "invalid pin")
	}
	if existing, pinned := man.PinFor(name); pinned {
		msg := fmt.Sprintf("crate %s is already pinned (%s)", name, existing)
		if rerr := sess.Recoverable(msg); rerr != nil {
			return rerr
		}
	}

	locked := manifest.LockedPin{Version: pin.Version, Path: pin.Path, URL: pin.URL, Commit: pin.Commit}
	if pin.Kind() == manifest.PinToURL {
		fetcher := g.Fetcher
		if fetcher == nil {
			fetcher = vcs.NewClient()
		}
		dest := filepath.Join(settings.LocalDirName, "pins", name.String())
		spec := vcs.Spec{URL: pin.URL, Commit: pin.Commit, Branch: pin.Branch}
		commit, ferr := fetcher.Fetch(context.Background(), spec, dest)
		if ferr != nil {
			return sess.FatalErr(ferr, vcsErrorKind(ferr), fmt.Sprintf("cannot fetch pin for crate %s", name))
		}
		locked.Commit = commit
		locked.Checkout = dest
		sess.Logger.Info("Pinned repository fetched",
			logfields.Crate(name.String()), logfields.URL(pin.URL), logfields.Commit(commit))
	}

	man.SetPin(name, pin)
	if err := p.persist(sess, man, name, &locked); err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "%s pinned to %s\n", name, pin)
	return nil
}

func (p *PinCmd) unpin(g *Global, man *manifest.Manifest, name crates.Name) error {
	sess := g.Session
	if !man.RemovePin(name) {
		return sess.FatalKind(errdefs.KindValidation, fmt.Sprintf("no pin exists for crate %s", name))
	}
	if err := p.persist(sess, man, name, nil); err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "%s unpinned\n", name)
	return nil
}

// persist writes the manifest and regenerates the lockfile entry for name:
// locked replaces it, nil removes it.
func (p *PinCmd) persist(sess *session.Session, man *manifest.Manifest, name crates.Name, locked *manifest.LockedPin) error {
	if err := man.Save(manifest.FileName); err != nil {
		return sess.FatalErr(err, errdefs.KindFilesystem, "cannot save crate manifest")
	}
	lock, err := manifest.LoadLock(manifest.LockFileName)
	if err != nil {
		return sess.FatalErr(err, errdefs.KindFilesystem, "cannot load lockfile")
	}
	if locked != nil {
		lock.Pins[name.String()] = *locked
	} else {
		delete(lock.Pins, name.String())
	}
	if err := lock.Save(manifest.LockFileName); err != nil {
		return sess.FatalErr(err, errdefs.KindFilesystem, "cannot save lockfile")
	}
	return nil
}

// isRemoteURL distinguishes repository URLs from local paths in --use.
func isRemoteURL(s string) bool {
	return strings.Contains(s, "://") || strings.HasPrefix(s, "git@")
}

// vcsErrorKind separates transient network conditions from repository
// problems for exit-code mapping.
func vcsErrorKind(err error) errdefs.Kind {
	if errors.As(err, new(*vcs.NetworkError)) || errors.As(err, new(*vcs.TimeoutError)) {
		return errdefs.KindNetwork
	}
	return errdefs.KindVCS
}
