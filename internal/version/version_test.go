package version

import "testing"

func TestDevelopmentDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version must never be empty")
	}

	if commit, ok := Commit(); ok {
		// Only true when a test build was stamped explicitly.
		if commit == "" {
			t.Error("Commit reported stamped but is empty")
		}
	}
	if built, ok := Built(); ok {
		if built == "" {
			t.Error("Built reported stamped but is empty")
		}
	}
}

func TestStampedAccessors(t *testing.T) {
	defer func(c, b string) { GitCommit, BuildTime = c, b }(GitCommit, BuildTime)

	GitCommit = "abc1234"
	BuildTime = "2026-08-21T10:00:00Z"

	commit, ok := Commit()
	if !ok || commit != "abc1234" {
		t.Errorf("Commit() = %q, %v", commit, ok)
	}
	built, ok := Built()
	if !ok || built != "2026-08-21T10:00:00Z" {
		t.Errorf("Built() = %q, %v", built, ok)
	}
}
