// Package scaffold creates the initial file tree of a new crate from
// built-in templates.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/cratebuilder/internal/manifest"
)

// Create scaffolds a crate under dir from the manifest's name and kind,
// returning the paths it wrote. It refuses to scaffold where a manifest
// already exists and never overwrites individual files.
func Create(dir string, m *manifest.Manifest) ([]string, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	manifestPath := filepath.Join(dir, manifest.FileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return nil, fmt.Errorf("%s already exists, refusing to scaffold over a crate", manifestPath)
	}

	data := templateData{Unit: manifest.AdaUnitName(m.Name), Name: m.Name}
	gprBody, unitFile, unitBody := binGPRTemplate, m.Name+".adb", binUnitTemplate
	if m.Kind == manifest.KindLib {
		gprBody, unitFile, unitBody = libGPRTemplate, m.Name+".ads", libUnitTemplate
	}

	written := make([]string, 0, 6)
	if err := m.Save(manifestPath); err != nil {
		return nil, err
	}
	written = append(written, manifestPath)

	for _, f := range []struct{ rel, body string }{
		{m.BuildFileName(), gprBody},
		{filepath.Join("src", unitFile), unitBody},
		{".gitignore", gitignoreTemplate},
	} {
		content, err := renderTemplate(f.rel, f.body, data)
		if err != nil {
			return nil, err
		}
		path, err := WriteFileNew(dir, f.rel, content)
		if err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	augmentedPath := filepath.Join(dir, m.AugmentedFileName())
	if err := m.WriteAugmented(augmentedPath); err != nil {
		return nil, err
	}
	written = append(written, augmentedPath)

	lockPath := filepath.Join(dir, manifest.LockFileName)
	if err := (&manifest.Lockfile{}).Save(lockPath); err != nil {
		return nil, err
	}
	written = append(written, lockPath)

	return written, nil
}
