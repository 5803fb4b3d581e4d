// Package artifacts locates build products under a crate root.
package artifacts

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/cratebuilder/internal/logfields"
)

// Locate searches root depth-first for regular files named exactly name and
// returns their paths rooted at root, in deterministic order (directory
// entries are visited sorted). Depth 0 is a file directly under root;
// entries deeper than maxDepth are not visited. Symlinks are never
// followed: a symlinked directory is not descended into and a symlink with
// a matching name does not count as an artifact. Unreadable subdirectories
// are skipped with a debug log; only an unreadable root is an error.
func Locate(root, name string, maxDepth int) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var found []string
	locate(root, name, maxDepth, 0, entries, &found)
	return found, nil
}

func locate(dir, name string, maxDepth, depth int, entries []os.DirEntry, found *[]string) {
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.Type().IsRegular() && entry.Name() == name {
			*found = append(*found, path)
			continue
		}
		if !entry.IsDir() || depth >= maxDepth {
			// entry.IsDir is false for symlinks to directories, which
			// keeps the traversal on lstat semantics.
			continue
		}
		sub, err := os.ReadDir(path)
		if err != nil {
			slog.Debug("Skipping unreadable directory", logfields.Path(path), logfields.Error(err))
			continue
		}
		locate(path, name, maxDepth, depth+1, sub, found)
	}
}
