// Package crates defines crate identity: the Name type and the syntactic
// rules a crate name must satisfy.
package crates

import (
	"fmt"
	"runtime"
	"strings"

	"git.home.luguber.info/inful/cratebuilder/internal/errdefs"
)

const (
	// MinNameLength and MaxNameLength bound crate name lengths.
	MinNameLength = 3
	MaxNameLength = 72

	// Separator is the only non-alphanumeric character allowed in names.
	Separator = '_'
)

// nameRulesRef points readers of any validation diagnostic at the full
// rule set. Appended to every non-empty validator result.
const nameRulesRef = "(see doc/naming.md for the complete naming rules)"

// Name is a canonical crate name. Construction lower-cases the input, so
// two names that differ only in case compare equal. A Name built through
// Parse is guaranteed valid; NewName trusts its caller.
type Name string

// NewName canonicalizes s into a Name without validating it. Use Parse for
// untrusted input.
func NewName(s string) Name {
	return Name(strings.ToLower(s))
}

// Parse validates s and returns its canonical Name. The returned error is a
// validation-kind checked error carrying the first failing diagnostic.
func Parse(s string) (Name, error) {
	if msg := ValidateName(s); msg != "" {
		return "", errdefs.New(errdefs.KindValidation, msg)
	}
	return NewName(s), nil
}

// String returns the canonical name text.
func (n Name) String() string {
	return string(n)
}

// Executable returns the file name the crate's main executable is expected
// to have on the current platform.
func (n Name) Executable() string {
	if runtime.GOOS == "windows" {
		return string(n) + ".exe"
	}
	return string(n)
}

// ValidateName checks s against the crate naming rules and returns an empty
// string when it is valid, or the first failing diagnostic otherwise.
// Checks run in a fixed priority order so a name that violates several
// rules always produces the same message. Validation is pure; callers
// decide whether a failure is fatal.
//
// The raw string is checked as given: canonicalization to lowercase happens
// only at Name construction, so uppercase input fails the character-class
// rule here.
func ValidateName(s string) string {
	switch {
	case len(s) < MinNameLength:
		return fmt.Sprintf("crate name is too short, must have at least %d characters %s",
			MinNameLength, nameRulesRef)
	case len(s) > MaxNameLength:
		return fmt.Sprintf("crate name is too long, must have at most %d characters %s",
			MaxNameLength, nameRulesRef)
	case s[0] == Separator:
		return fmt.Sprintf("crate name must not begin with an underscore %s", nameRulesRef)
	}
	for _, r := range s {
		if !validNameRune(r) {
			return fmt.Sprintf("crate name contains invalid character %q, only lowercase ASCII letters, digits and underscores are allowed %s",
				r, nameRulesRef)
		}
	}
	return ""
}

func validNameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == Separator
}
