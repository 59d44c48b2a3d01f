package version

import (
	"strings"
	"testing"
)

func TestColoredPlain(t *testing.T) {
	if got := Colored(false); got != Version {
		t.Errorf("Colored(false) = %q, want %q", got, Version)
	}
}

func TestColoredKeepsParts(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-rc.1"
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("no colour in %q", got)
	}
	if !strings.HasSuffix(got, "-rc.1") {
		t.Errorf("suffix lost: %q", got)
	}

	Version = "nightly"
	if got := Colored(true); got != "nightly" {
		t.Errorf("non-semver version changed: %q", got)
	}
}

func TestBanner(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "", ""
	if got := Banner(false); got != "veryl "+Version {
		t.Errorf("Banner = %q", got)
	}
	GitCommit, BuildDate = "abc123", "2024-01-15"
	if got := Banner(false); got != "veryl "+Version+" (abc123) built 2024-01-15" {
		t.Errorf("Banner = %q", got)
	}
}
