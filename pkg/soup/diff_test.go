package soup

import (
	"testing"
)

func TestDiff(t *testing.T) {
	prev := Snapshot{
		"package.json": NewSet(
			dep("react", "17.0.0", nil),
			dep("lodash", "4.17.21", nil),
		),
		"old/Cargo.toml": NewSet(dep("serde", "1.0", nil)),
	}
	next := Snapshot{
		"package.json": NewSet(
			dep("react", "18.0.0", nil),
			dep("lodash", "4.17.21", Metadata{"note": "meta changes are ignored"}),
			dep("vue", "3.0.0", nil),
		),
	}

	got := Diff(prev, next)
	want := []Change{
		{Kind: Removed, Path: "old/Cargo.toml", Name: "serde", From: "1.0"},
		{Kind: Updated, Path: "package.json", Name: "react", From: "17.0.0", To: "18.0.0"},
		{Kind: Added, Path: "package.json", Name: "vue", To: "3.0.0"},
	}

	if len(got) != len(want) {
		t.Fatalf("Diff() returned %d changes, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Diff()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	added, removed, updated := CountChanges(got)
	if added != 1 || removed != 1 || updated != 1 {
		t.Errorf("CountChanges() = %d, %d, %d, want 1, 1, 1", added, removed, updated)
	}
}

func TestDiff_NoChanges(t *testing.T) {
	s := Snapshot{"Dockerfile": NewSet(dep("debian", "12", nil))}
	if got := Diff(s, s.Clone()); len(got) != 0 {
		t.Errorf("Diff(S, S) = %v, want none", got)
	}
}

func TestChangeKind_String(t *testing.T) {
	tests := map[ChangeKind]string{Added: "added", Removed: "removed", Updated: "updated", ChangeKind(9): "unknown"}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("ChangeKind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
