// Package workdir provides scoped working-directory changes with guaranteed
// restoration. A Guard is acquired, used, and released through defer, so the
// process is back where it started on success and on every error path.
// Guards nest: LIFO release through stacked defers restores each level.
package workdir

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/cratebuilder/internal/errdefs"
	"git.home.luguber.info/inful/cratebuilder/internal/logfields"
	"git.home.luguber.info/inful/cratebuilder/internal/session"
)

// Guard remembers the directory to restore on Release.
type Guard struct {
	sess     *session.Session
	previous string
	target   string
	released bool
}

// Enter changes into dir and returns a guard that restores the previous
// working directory. Entering the current directory still yields a working
// guard. Callers release with defer:
//
//	guard, err := workdir.Enter(sess, root)
//	if err != nil { ... }
//	defer guard.Release()
func Enter(sess *session.Session, dir string) (*Guard, error) {
	previous, err := os.Getwd()
	if err != nil {
		return nil, sess.FatalErr(err, errdefs.KindFilesystem, "cannot determine current directory")
	}
	if err := os.Chdir(dir); err != nil {
		return nil, sess.FatalErr(err, errdefs.KindFilesystem, "cannot enter directory "+dir)
	}
	sess.Logger.Debug("Entered directory", logfields.Path(dir))
	return &Guard{sess: sess, previous: previous, target: dir}, nil
}

// Release restores the directory captured at Enter. It is idempotent so a
// deferred release after an explicit one is harmless. Failure to restore is
// escalated through the session: continuing from an unknown working
// directory would corrupt every later relative operation.
func (g *Guard) Release() error {
	if g == nil || g.released {
		return nil
	}
	g.released = true
	if err := os.Chdir(g.previous); err != nil {
		return g.sess.FatalErr(err, errdefs.KindFilesystem, "cannot restore directory "+g.previous)
	}
	g.sess.Logger.Debug("Restored directory", logfields.Path(g.previous))
	return nil
}

// Previous returns the directory the guard will restore.
func (g *Guard) Previous() string {
	return g.previous
}

// EnterProjectRoot ascends from the current directory looking for a
// directory containing markerFile and guards it. When no marker is found
// the current directory is guarded unchanged; the caller's precondition
// check owns the user-facing failure for that case.
func EnterProjectRoot(sess *session.Session, markerFile string) (*Guard, error) {
	start, err := os.Getwd()
	if err != nil {
		return nil, sess.FatalErr(err, errdefs.KindFilesystem, "cannot determine current directory")
	}

	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, markerFile)); err == nil {
			return Enter(sess, dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	sess.Logger.Debug("No project marker found upward, staying put",
		logfields.Path(start), slog.String("marker", markerFile))
	return Enter(sess, start)
}
