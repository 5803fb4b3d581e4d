package manifest

import (
	"fmt"
	"os"
	"strings"
)

// libraryMarker decides whether a build description produces a library.
// The probe is a case-insensitive substring match on the file content, so
// "library project ..." and "for Library_Name use ..." both qualify. A
// crate with the word only in a comment is misclassified; accepted
// limitation, the description is otherwise not parsed.
const libraryMarker = "library"

// augmentedSuffix names the generated wrapper next to the user's build file.
const augmentedSuffix = "_cb.gpr"

// BuildFileName returns the crate's build description file name: the
// manifest override when present, `<name>.gpr` otherwise.
func (m *Manifest) BuildFileName() string {
	if m.Build != nil && m.Build.File != "" {
		return m.Build.File
	}
	return m.Name + ".gpr"
}

// AugmentedFileName returns the generated wrapper's file name.
func (m *Manifest) AugmentedFileName() string {
	return m.Name + augmentedSuffix
}

// IsLibrary probes the build description at path for the library marker.
func IsLibrary(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("cannot read build description %s: %w", path, err)
	}
	return strings.Contains(strings.ToLower(string(content)), libraryMarker), nil
}

// WriteAugmented (re)generates the aggregate wrapper that the external
// builder is invoked on. It is rewritten before every build, so manual
// edits to it do not survive; the user's own build description is never
// touched.
func (m *Manifest) WriteAugmented(path string) error {
	unit := AdaUnitName(m.Name) + "_Cb"
	content := fmt.Sprintf(`--  Generated by cratebuilder, do not edit.
aggregate project %s is
   for Project_Files use ("%s");
end %s;
`, unit, m.BuildFileName(), unit)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("cannot write augmented build description %s: %w", path, err)
	}
	return nil
}

// AdaUnitName renders a crate name as an Ada compilation unit name:
// underscore-separated parts, each capitalized ("hello_world" becomes
// "Hello_World").
func AdaUnitName(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "_")
}
