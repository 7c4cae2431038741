package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.Version == "" {
		t.Error("Version should not be empty")
	}
	if info.Commit == "" {
		t.Error("Commit should not be empty")
	}
	if info.BuildTime == "" {
		t.Error("BuildTime should not be empty")
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
}

func TestGet_InjectedCommit(t *testing.T) {
	prev := Commit
	t.Cleanup(func() { Commit = prev })

	Commit = "abc1234"
	if got := Get().Commit; got != "abc1234" {
		t.Errorf("Commit = %q, want %q", got, "abc1234")
	}
}

func TestString(t *testing.T) {
	s := String()

	if !strings.HasPrefix(s, Version+" (") {
		t.Errorf("String() = %q, want prefix %q", s, Version+" (")
	}
	if !strings.HasSuffix(s, ") built at "+BuildTime) {
		t.Errorf("String() = %q, want suffix %q", s, ") built at "+BuildTime)
	}
}
