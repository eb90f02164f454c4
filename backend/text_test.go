package backend

import (
	"strings"
	"testing"

	"groundcore/domain"
)

func TestTextBackendFormatsRuleLine(t *testing.T) {
	var sb strings.Builder
	b := NewTextBackend(&sb, "")
	b.Rule(false, []AtomID{2}, []AtomID{3, -4})

	got := sb.String()
	want := "rule(choice=false, {2}, {3,-4})\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTextBackendPrefixesEveryLine(t *testing.T) {
	var sb strings.Builder
	b := NewTextBackend(&sb, "[debug] ")
	b.BeginStep()
	b.External(2, domain.ExternalFree)

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "[debug] ") {
			t.Fatalf("expected every line prefixed, got %q", l)
		}
	}
}
