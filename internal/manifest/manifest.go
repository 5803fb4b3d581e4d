// Package manifest reads and writes crate manifests and lockfiles. The
// manifest (crate.toml) is the single source of truth for a crate's
// identity, its build description and its pins; the lockfile (crate.lock)
// records what the pins resolved to.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"git.home.luguber.info/inful/cratebuilder/internal/crates"
)

// FileName is the crate manifest file name.
const FileName = "crate.toml"

// Crate kinds as declared in the manifest.
const (
	KindBin = "bin"
	KindLib = "lib"
)

// ErrNoCrate reports that no manifest was found during upward discovery.
var ErrNoCrate = errors.New("no crate manifest found in this or any parent directory")

// Manifest mirrors crate.toml.
type Manifest struct {
	Name    string         `toml:"name"`
	Version string         `toml:"version"`
	Kind    string         `toml:"kind,omitempty"`
	Build   *Build         `toml:"build,omitempty"`
	Pins    map[string]Pin `toml:"pins,omitempty"`
}

// Build holds optional build description overrides.
type Build struct {
	File string `toml:"file,omitempty"`
}

// Load parses and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("cannot parse crate manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid crate manifest %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks the manifest invariants: a valid crate name, a version,
// a known kind and well-formed pins.
func (m *Manifest) Validate() error {
	if _, err := crates.Parse(m.Name); err != nil {
		return err
	}
	if m.Version == "" {
		return fmt.Errorf("crate %s declares no version", m.Name)
	}
	switch m.Kind {
	case "", KindBin, KindLib:
	default:
		return fmt.Errorf("unknown crate kind %q, expected %q or %q", m.Kind, KindBin, KindLib)
	}
	for name, pin := range m.Pins {
		if msg := crates.ValidateName(name); msg != "" {
			return fmt.Errorf("pinned crate %q: %s", name, msg)
		}
		if err := pin.Validate(name); err != nil {
			return err
		}
	}
	return nil
}

// CrateName returns the canonical crate name. Only meaningful after a
// successful Validate.
func (m *Manifest) CrateName() crates.Name {
	return crates.NewName(m.Name)
}

// Save writes the manifest to path, replacing any previous content.
func (m *Manifest) Save(path string) error {
	var buf bytes.Buffer
	buf.WriteString("# Crate manifest, maintained by cratebuilder.\n\n")
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return fmt.Errorf("cannot encode crate manifest: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("cannot write crate manifest %s: %w", path, err)
	}
	return nil
}

// Discover ascends from start looking for the directory holding a crate
// manifest. It returns ErrNoCrate when the filesystem root is reached
// without finding one.
func Discover(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoCrate
		}
		dir = parent
	}
}
