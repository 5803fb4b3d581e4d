package manifest

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LockFileName is the lockfile name next to the manifest.
const LockFileName = "crate.lock"

// Lockfile records what each pin resolved to. It is regenerated by every
// command that changes pins and is safe to delete; the manifest remains
// authoritative.
type Lockfile struct {
	Pins map[string]LockedPin `toml:"pins,omitempty"`
}

// LockedPin is the resolved form of a manifest pin. For URL pins Commit is
// the exact commit checked out and Checkout the local directory holding it.
type LockedPin struct {
	Version  string `toml:"version,omitempty"`
	Path     string `toml:"path,omitempty"`
	URL      string `toml:"url,omitempty"`
	Commit   string `toml:"commit,omitempty"`
	Checkout string `toml:"checkout,omitempty"`
}

// LoadLock reads the lockfile at path; a missing file is an empty lockfile.
func LoadLock(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Lockfile{Pins: map[string]LockedPin{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read lockfile %s: %w", path, err)
	}
	var l Lockfile
	if err := toml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("cannot parse lockfile %s: %w", path, err)
	}
	if l.Pins == nil {
		l.Pins = map[string]LockedPin{}
	}
	return &l, nil
}

// Save writes the lockfile to path.
func (l *Lockfile) Save(path string) error {
	var buf bytes.Buffer
	buf.WriteString("# Resolved pins, generated by cratebuilder. Do not edit.\n\n")
	if err := toml.NewEncoder(&buf).Encode(l); err != nil {
		return fmt.Errorf("cannot encode lockfile: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("cannot write lockfile %s: %w", path, err)
	}
	return nil
}
