// Package settings persists tool configuration as YAML. Two scopes exist: a
// global store under the user's config directory (overridable with the
// --settings flag or CRATEBUILDER_SETTINGS) and a crate-local store under
// .cratebuilder/ in the crate root. Values are addressed with dotted keys,
// local values win over global ones.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/cratebuilder/internal/util/sets"
)

const (
	// FileName is the settings file name in both scopes.
	FileName = "settings.yaml"
	// LocalDirName is the per-crate settings directory.
	LocalDirName = ".cratebuilder"
	// EnvDir overrides the global settings directory.
	EnvDir = "CRATEBUILDER_SETTINGS"
)

// Keys with tool-defined meaning. Anything else is stored verbatim for
// forward compatibility.
const (
	KeyDistroDisableDetection = "distribution.disable_detection"
	KeyBuildDriver            = "build.driver"
)

var knownKeys = sets.New[string](
	KeyDistroDisableDetection,
	KeyBuildDriver,
)

// IsKnownKey reports whether key has tool-defined meaning.
func IsKnownKey(key string) bool {
	return knownKeys.Has(key)
}

// Store is the merged view of the global and local settings files.
type Store struct {
	globalDir string
	localDir  string
	global    map[string]any
	local     map[string]any
}

// DefaultGlobalDir resolves the global settings directory: the explicit
// override wins, then CRATEBUILDER_SETTINGS, then the platform config dir.
func DefaultGlobalDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if env := os.Getenv(EnvDir); env != "" {
		return env, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve user config directory: %w", err)
	}
	return filepath.Join(base, "cratebuilder"), nil
}

// Load reads both scopes. Missing files are empty stores, not errors.
// crateRoot may be empty when no crate is involved; the local scope is then
// absent and writes to it are rejected.
func Load(globalDir, crateRoot string) (*Store, error) {
	s := &Store{globalDir: globalDir}
	if crateRoot != "" {
		s.localDir = filepath.Join(crateRoot, LocalDirName)
	}

	var err error
	if s.global, err = readFile(filepath.Join(globalDir, FileName)); err != nil {
		return nil, err
	}
	if s.localDir != "" {
		if s.local, err = readFile(filepath.Join(s.localDir, FileName)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read settings file %s: %w", path, err)
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("malformed settings file %s: %w", path, err)
	}
	return values, nil
}

// Get returns the value under the dotted key, local scope first.
func (s *Store) Get(key string) (any, bool) {
	if v, ok := lookup(s.local, key); ok {
		return v, true
	}
	return lookup(s.global, key)
}

// String returns the value under key rendered as text, or def when unset.
func (s *Store) String(key, def string) string {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	return fmt.Sprint(v)
}

// Bool returns the value under key as a boolean; unset or non-boolean
// values are false.
func (s *Store) Bool(key string) bool {
	v, ok := s.Get(key)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Set stores value under the dotted key and persists the chosen scope.
// Values parse to bool or integer when they look like one, else stay
// strings, so YAML round-trips types the way users wrote them.
func (s *Store) Set(key, value string, global bool) error {
	if err := validKey(key); err != nil {
		return err
	}
	parsed := parseValue(value)
	if err := ValidateValue(key, parsed); err != nil {
		return err
	}

	if global {
		store(s.global, key, parsed)
		return s.persist(s.globalDir, s.global)
	}
	if s.localDir == "" {
		return fmt.Errorf("no crate here, use --global for the global scope")
	}
	store(s.local, key, parsed)
	return s.persist(s.localDir, s.local)
}

// Unset removes key from the chosen scope and persists it. Removing an
// absent key is a no-op.
func (s *Store) Unset(key string, global bool) error {
	if global {
		remove(s.global, key)
		return s.persist(s.globalDir, s.global)
	}
	if s.localDir == "" {
		return fmt.Errorf("no crate here, use --global for the global scope")
	}
	remove(s.local, key)
	return s.persist(s.localDir, s.local)
}

// List returns the merged settings flattened to dotted keys, sorted.
func (s *Store) List() []KeyValue {
	merged := map[string]string{}
	flatten("", s.global, merged)
	flatten("", s.local, merged)

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]KeyValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, KeyValue{Key: k, Value: merged[k]})
	}
	return out
}

// KeyValue is one flattened settings entry.
type KeyValue struct {
	Key   string
	Value string
}

// ValidateValue checks the value types of keys with tool-defined meaning.
func ValidateValue(key string, value any) error {
	switch key {
	case KeyDistroDisableDetection:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%s expects true or false, got %q", key, fmt.Sprint(value))
		}
	case KeyBuildDriver:
		str, ok := value.(string)
		if !ok || str == "" {
			return fmt.Errorf("%s expects a non-empty executable name", key)
		}
	}
	return nil
}

func (s *Store) persist(dir string, values map[string]any) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("cannot create settings directory: %w", err)
	}
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("cannot encode settings: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("cannot write settings file %s: %w", path, err)
	}
	return nil
}

func validKey(key string) error {
	if key == "" {
		return fmt.Errorf("settings key must not be empty")
	}
	for _, part := range strings.Split(key, ".") {
		if part == "" {
			return fmt.Errorf("malformed settings key %q", key)
		}
	}
	return nil
}

func parseValue(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return value
}

func lookup(m map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	for i, part := range parts {
		v, ok := m[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		m, ok = asMap(v)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

func store(m map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(m[part])
		if !ok {
			next = map[string]any{}
		}
		m[part] = next
		m = next
	}
	m[parts[len(parts)-1]] = value
}

func remove(m map[string]any, key string) {
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(m[part])
		if !ok {
			return
		}
		m[part] = next
		m = next
	}
	delete(m, parts[len(parts)-1])
}

func flatten(prefix string, m map[string]any, out map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := asMap(v); ok {
			flatten(key, sub, out)
			continue
		}
		out[key] = fmt.Sprint(v)
	}
}

// asMap normalizes the two map shapes yaml.v3 can produce.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
