package soup

import (
	"testing"
)

func dep(name, version string, meta Metadata) Dependency {
	return Dependency{Name: name, Version: version, Meta: meta}
}

func TestReconcile_Idempotent(t *testing.T) {
	s := Snapshot{
		"package.json": NewSet(
			dep("react", "^18.0.0", Metadata{"requirements": "ui"}),
			dep("lodash", "4.17.21", Metadata{}),
		),
		"Dockerfile": NewSet(
			dep("debian", "12", Metadata{"note": "base"}),
			dep("curl", "unknown", Metadata{}),
			dep("curl", "8.0", Metadata{"pinned": true}),
		),
	}

	got := Reconcile(s, s)
	if !got.Equal(s) {
		t.Errorf("Reconcile(S, S) = %v, want %v", got, s)
	}

	again := Reconcile(got, s)
	if !again.Equal(s) {
		t.Errorf("second Reconcile = %v, want %v", again, s)
	}
}

func TestReconcile_PrunesMissingPaths(t *testing.T) {
	base := Snapshot{
		"old/package.json": NewSet(dep("a", "1", Metadata{"note": "x"})),
		"Cargo.toml":       NewSet(dep("serde", "1.0", nil)),
	}
	fresh := Snapshot{
		"Cargo.toml": NewSet(dep("serde", "1.0", Metadata{})),
	}

	got := Reconcile(base, fresh)
	if _, ok := got["old/package.json"]; ok {
		t.Error("pruned path still present")
	}
	if len(got) != 1 {
		t.Errorf("len(result) = %d, want 1", len(got))
	}
}

func TestReconcile_AddsNewPaths(t *testing.T) {
	fresh := Snapshot{
		"web/package.json": NewSet(dep("vue", "3.4.0", Metadata{"requirements": ""})),
	}

	got := Reconcile(Snapshot{}, fresh)
	if !got["web/package.json"].Equal(fresh["web/package.json"]) {
		t.Errorf("result = %v, want %v", got["web/package.json"], fresh["web/package.json"])
	}
}

func TestReconcile_CarriesMetadataAcrossVersionBump(t *testing.T) {
	base := Snapshot{"package.json": NewSet(dep("some-dep", "1.0.0", Metadata{"note": "x"}))}
	fresh := Snapshot{"package.json": NewSet(dep("some-dep", "1.2.0", Metadata{}))}

	got := Reconcile(base, fresh)
	want := NewSet(dep("some-dep", "1.2.0", Metadata{"note": "x"}))
	if !got["package.json"].Equal(want) {
		t.Errorf("result = %v, want %v", got["package.json"].Items(), want.Items())
	}
}

func TestReconcile_NeverOverwritesExistingKey(t *testing.T) {
	base := Snapshot{"package.json": NewSet(dep("some-dep", "1.0.0", Metadata{"requirements": "a-requirement"}))}
	fresh := Snapshot{"package.json": NewSet(dep("some-dep", "1.0.0", Metadata{"requirements": "", "risk": ""}))}

	got := Reconcile(base, fresh)
	d, ok := got["package.json"].Get(Key{"some-dep", "1.0.0"})
	if !ok {
		t.Fatal("dependency missing from result")
	}
	if d.Meta["requirements"] != "a-requirement" {
		t.Errorf("Meta[requirements] = %v, want a-requirement", d.Meta["requirements"])
	}
	if v, ok := d.Meta["risk"]; !ok || v != "" {
		t.Errorf("Meta[risk] = %v (present %v), want empty default", v, ok)
	}
}

func TestReconcile_DropsRecordsOnlyInBase(t *testing.T) {
	base := Snapshot{"package.json": NewSet(
		dep("kept", "1", Metadata{"note": "k"}),
		dep("gone", "1", Metadata{"note": "g"}),
	)}
	fresh := Snapshot{"package.json": NewSet(
		dep("kept", "1", Metadata{}),
		dep("new", "2", Metadata{"requirements": ""}),
	)}

	got := Reconcile(base, fresh)["package.json"]
	if got.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", got.Len())
	}
	if got.Contains(Key{"gone", "1"}) {
		t.Error("record only in base survived")
	}
	n, _ := got.Get(Key{"new", "2"})
	if !n.Meta.Equal(Metadata{"requirements": ""}) {
		t.Errorf("new record meta = %v", n.Meta)
	}
}

func TestReconcile_ExactVersionMatchPreferred(t *testing.T) {
	base := Snapshot{"Dockerfile": NewSet(
		dep("curl", "7.0", Metadata{"note": "seven"}),
		dep("curl", "8.0", Metadata{"note": "eight"}),
	)}
	fresh := Snapshot{"Dockerfile": NewSet(
		dep("curl", "7.0", Metadata{}),
		dep("curl", "9.0", Metadata{}),
	)}

	got := Reconcile(base, fresh)["Dockerfile"]
	seven, _ := got.Get(Key{"curl", "7.0"})
	nine, _ := got.Get(Key{"curl", "9.0"})

	if seven.Meta["note"] != "seven" {
		t.Errorf("curl 7.0 note = %v, want seven", seven.Meta["note"])
	}
	if nine.Meta["note"] != "eight" {
		t.Errorf("curl 9.0 note = %v, want eight", nine.Meta["note"])
	}
}

func TestReconcile_DoesNotModifyInputs(t *testing.T) {
	baseMeta := Metadata{"note": "x"}
	freshMeta := Metadata{"requirements": ""}
	base := Snapshot{"package.json": NewSet(dep("a", "1", baseMeta))}
	fresh := Snapshot{"package.json": NewSet(dep("a", "2", freshMeta))}

	got := Reconcile(base, fresh)
	d, _ := got["package.json"].Get(Key{"a", "2"})
	d.Meta["note"] = "changed"

	if len(baseMeta) != 1 || baseMeta["note"] != "x" {
		t.Errorf("base meta modified: %v", baseMeta)
	}
	if len(freshMeta) != 1 {
		t.Errorf("fresh meta modified: %v", freshMeta)
	}
}

func TestMergeMeta(t *testing.T) {
	got := MergeMeta(Metadata{"a": "base", "b": nil}, Metadata{"a": "fresh", "b": "fresh", "c": "fresh"})
	want := Metadata{"a": "base", "b": nil, "c": "fresh"}
	if !got.Equal(want) {
		t.Errorf("MergeMeta() = %v, want %v", got, want)
	}
}
