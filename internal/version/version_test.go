package version

import "testing"

func TestShortCommit(t *testing.T) {
	if got := shortCommit("abc"); got != "abc" {
		t.Fatalf("short commit: got %q", got)
	}
	if got := shortCommit("0123456789abcdef"); got != "0123456789ab" {
		t.Fatalf("long commit: got %q", got)
	}
}

func TestResolvePrefersLdflags(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version = "v1.2.3"
	Commit = "0123456789abcdef"
	info := Resolve()
	if info.Version != "v1.2.3" {
		t.Fatalf("version: got %q", info.Version)
	}
	if got := String(); got != "v1.2.3 (0123456789ab)" {
		t.Fatalf("string: got %q", got)
	}
}

func TestResolveNeverEmpty(t *testing.T) {
	oldVersion := Version
	t.Cleanup(func() { Version = oldVersion })

	Version = ""
	if Resolve().Version == "" {
		t.Fatal("expected a fallback version")
	}
}
