package soup

import (
	"encoding/json"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Dependency
		want int
	}{
		{"by name", Dependency{Name: "a", Version: "9"}, Dependency{Name: "b", Version: "1"}, -1},
		{"by version", Dependency{Name: "a", Version: "1.0"}, Dependency{Name: "a", Version: "1.1"}, -1},
		{"equal ignores meta", Dependency{Name: "a", Version: "1", Meta: Metadata{"x": "y"}}, Dependency{Name: "a", Version: "1"}, 0},
		{"greater", Dependency{Name: "b", Version: "1"}, Dependency{Name: "a", Version: "1"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewSet_SortsAndDeduplicates(t *testing.T) {
	s := NewSet(
		Dependency{Name: "zlib", Version: "1.3"},
		Dependency{Name: "curl", Version: "8.0", Meta: Metadata{"first": true}},
		Dependency{Name: "curl", Version: "8.0", Meta: Metadata{"second": true}},
		Dependency{Name: "curl", Version: "7.0"},
	)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	want := []Key{{"curl", "7.0"}, {"curl", "8.0"}, {"zlib", "1.3"}}
	for i, d := range s.Items() {
		if d.Key() != want[i] {
			t.Errorf("Items()[%d] = %v, want %v", i, d.Key(), want[i])
		}
	}

	got, _ := s.Get(Key{"curl", "8.0"})
	if _, ok := got.Meta["first"]; !ok {
		t.Errorf("duplicate kept %v, want the first record", got.Meta)
	}
}

func TestSet_Insert(t *testing.T) {
	var s Set

	if !s.Insert(Dependency{Name: "b", Version: "1"}) {
		t.Error("Insert(b) = false, want true")
	}
	if !s.Insert(Dependency{Name: "a", Version: "1"}) {
		t.Error("Insert(a) = false, want true")
	}
	if s.Insert(Dependency{Name: "a", Version: "1", Meta: Metadata{"k": "v"}}) {
		t.Error("Insert(duplicate) = true, want false")
	}

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if s.Items()[0].Name != "a" {
		t.Errorf("Items()[0].Name = %q, want %q", s.Items()[0].Name, "a")
	}
	if d, _ := s.Get(Key{"a", "1"}); len(d.Meta) != 0 {
		t.Errorf("duplicate insert replaced metadata: %v", d.Meta)
	}
}

func TestSet_InsertDoesNotAliasCopies(t *testing.T) {
	s := NewSet(Dependency{Name: "a", Version: "1"}, Dependency{Name: "c", Version: "1"})
	cp := s
	s.Insert(Dependency{Name: "b", Version: "1"})

	if cp.Len() != 2 || cp.Items()[1].Name != "c" {
		t.Errorf("copy changed after insert: %v", cp.Items())
	}
}

func TestSet_Union(t *testing.T) {
	a := NewSet(Dependency{Name: "debian", Version: "12", Meta: Metadata{"from": "a"}})
	b := NewSet(
		Dependency{Name: "debian", Version: "12", Meta: Metadata{"from": "b"}},
		Dependency{Name: "curl", Version: "unknown"},
	)

	u := a.Union(b)
	if u.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", u.Len())
	}
	d, _ := u.Get(Key{"debian", "12"})
	if d.Meta["from"] != "a" {
		t.Errorf("Meta[from] = %v, want a", d.Meta["from"])
	}
}

func TestSet_Equal(t *testing.T) {
	a := NewSet(Dependency{Name: "x", Version: "1", Meta: Metadata{"k": "v"}})
	b := NewSet(Dependency{Name: "x", Version: "1", Meta: Metadata{"k": "v"}})
	c := NewSet(Dependency{Name: "x", Version: "1", Meta: Metadata{"k": "other"}})

	if !a.Equal(b) {
		t.Error("Equal(same) = false, want true")
	}
	if a.Equal(c) {
		t.Error("Equal(different meta) = true, want false")
	}
}

func TestMetadata_Clone(t *testing.T) {
	orig := Metadata{
		"note":   "x",
		"nested": map[string]any{"a": []any{"b"}},
		"count":  json.Number("3"),
	}
	cp := orig.Clone()

	cp["nested"].(map[string]any)["a"].([]any)[0] = "changed"
	cp["note"] = "y"

	if orig["note"] != "x" {
		t.Errorf("orig[note] = %v, want x", orig["note"])
	}
	if got := orig["nested"].(map[string]any)["a"].([]any)[0]; got != "b" {
		t.Errorf("nested value = %v, want b", got)
	}
	if cp["count"] != json.Number("3") {
		t.Errorf("cp[count] = %v, want 3", cp["count"])
	}
}

func TestMetadata_CloneNil(t *testing.T) {
	var m Metadata
	if m.Clone() == nil {
		t.Error("Clone() of nil = nil, want empty map")
	}
}

func TestMetadata_Equal(t *testing.T) {
	var empty Metadata
	if !empty.Equal(Metadata{}) {
		t.Error("nil.Equal(empty) = false, want true")
	}
	if (Metadata{"a": ""}).Equal(Metadata{"b": ""}) {
		t.Error("Equal(different keys) = true, want false")
	}
	if !(Metadata{"a": []any{"x"}}).Equal(Metadata{"a": []any{"x"}}) {
		t.Error("Equal(same nested) = false, want true")
	}
}

func TestMetadata_Filled(t *testing.T) {
	m := Metadata{"a": "", "b": "set", "c": nil, "d": false}
	if got := m.Filled(); got != 2 {
		t.Errorf("Filled() = %d, want 2", got)
	}
}

func TestNewMetadata(t *testing.T) {
	m := NewMetadata("requirements", "risk")
	if len(m) != 2 || m["requirements"] != "" || m["risk"] != "" {
		t.Errorf("NewMetadata() = %v", m)
	}
	if got := m.Keys(); got[0] != "requirements" || got[1] != "risk" {
		t.Errorf("Keys() = %v", got)
	}
}
