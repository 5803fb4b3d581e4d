package manifest

import (
	"fmt"

	"git.home.luguber.info/inful/cratebuilder/internal/crates"
)

// Pin freezes a dependency to a version, a local path, or a remote
// repository. Exactly one of Version, Path and URL is set; Commit and
// Branch refine URL pins only and are mutually exclusive.
type Pin struct {
	Version string `toml:"version,omitempty"`
	Path    string `toml:"path,omitempty"`
	URL     string `toml:"url,omitempty"`
	Commit  string `toml:"commit,omitempty"`
	Branch  string `toml:"branch,omitempty"`
}

// PinKind tells what a pin points at.
type PinKind int

const (
	PinToVersion PinKind = iota
	PinToPath
	PinToURL
)

// Kind reports what the pin targets. Only meaningful for valid pins.
func (p Pin) Kind() PinKind {
	switch {
	case p.Path != "":
		return PinToPath
	case p.URL != "":
		return PinToURL
	default:
		return PinToVersion
	}
}

// Validate enforces the pin shape invariants. name is used in diagnostics.
func (p Pin) Validate(name string) error {
	targets := 0
	for _, t := range []string{p.Version, p.Path, p.URL} {
		if t != "" {
			targets++
		}
	}
	if targets == 0 {
		return fmt.Errorf("pin for %q targets nothing, set a version, path or url", name)
	}
	if targets > 1 {
		return fmt.Errorf("pin for %q targets several of version, path and url", name)
	}
	if p.URL == "" && (p.Commit != "" || p.Branch != "") {
		return fmt.Errorf("pin for %q sets commit or branch without a url", name)
	}
	if p.Commit != "" && p.Branch != "" {
		return fmt.Errorf("pin for %q sets both commit and branch", name)
	}
	return nil
}

// String renders the pin target for logs and listings.
func (p Pin) String() string {
	switch p.Kind() {
	case PinToPath:
		return "path " + p.Path
	case PinToURL:
		s := "url " + p.URL
		if p.Commit != "" {
			s += "#" + p.Commit
		}
		if p.Branch != "" {
			s += "@" + p.Branch
		}
		return s
	default:
		return "version " + p.Version
	}
}

// SetPin records a pin for name, reporting whether a previous pin was
// replaced. The caller decides whether replacement is allowed.
func (m *Manifest) SetPin(name crates.Name, p Pin) (replaced bool) {
	if m.Pins == nil {
		m.Pins = map[string]Pin{}
	}
	_, replaced = m.Pins[name.String()]
	m.Pins[name.String()] = p
	return replaced
}

// RemovePin deletes the pin for name, reporting whether one existed.
func (m *Manifest) RemovePin(name crates.Name) bool {
	_, existed := m.Pins[name.String()]
	delete(m.Pins, name.String())
	return existed
}

// PinFor returns the pin for name, if any.
func (m *Manifest) PinFor(name crates.Name) (Pin, bool) {
	p, ok := m.Pins[name.String()]
	return p, ok
}
