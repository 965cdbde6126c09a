package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/souper/pkg/cache"
	"github.com/matzehuels/souper/pkg/errors"
	pkgio "github.com/matzehuels/souper/pkg/io"
	"github.com/matzehuels/souper/pkg/soup"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing output error = %v, want INVALID_INPUT", err)
	}

	opts = Options{Output: "soups.json", Meta: []string{"ok", ""}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("empty meta key should fail")
	}

	opts = Options{Output: "soups.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("valid options failed: %v", err)
	}
	if opts.Root != "." {
		t.Errorf("Root = %q, want %q", opts.Root, ".")
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}

	// Second call is a no-op
	opts.Root = "elsewhere"
	if err := opts.ValidateAndSetDefaults(); err != nil || opts.Root != "elsewhere" {
		t.Errorf("second call changed options: root=%q err=%v", opts.Root, err)
	}
}

func TestOptionsDefaultMeta(t *testing.T) {
	opts := Options{Meta: []string{"requirements", "risk"}}
	want := soup.Metadata{"requirements": "", "risk": ""}
	if got := opts.DefaultMeta(); !got.Equal(want) {
		t.Errorf("DefaultMeta() = %v, want %v", got, want)
	}
}

func TestExecute_FirstRunWritesReport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "web", "package.json"), `{"dependencies":{"react":"^18.2.0"}}`)
	out := filepath.Join(root, "soups.json")

	res, err := NewRunner(nil, nil).Execute(context.Background(), Options{
		Root:   root,
		Output: out,
		Meta:   []string{"requirements"},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !res.Written {
		t.Error("report should be written")
	}
	if len(res.Base) != 0 {
		t.Errorf("Base = %v, want empty", res.Base)
	}
	if added, _, _ := soup.CountChanges(res.Changes); added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
	if len(res.Hash) != 16 {
		t.Errorf("Hash = %q, want 16 hex characters", res.Hash)
	}

	got, err := pkgio.ImportJSON(out)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(res.Snapshot) {
		t.Errorf("persisted = %v, want %v", got, res.Snapshot)
	}
}

func TestExecute_PreservesAnnotations(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "soups.json")
	writeFile(t, filepath.Join(root, "Cargo.toml"), "[dependencies]\nserde = \"1.0.140\"\n")
	writeFile(t, out, `{
  "Cargo.toml": [
    {"name": "serde", "version": "1.0.137", "meta": {"requirements": "a-requirement"}}
  ],
  "gone/package.json": [
    {"name": "left-pad", "version": "1.0.0", "meta": {}}
  ]
}`)

	res, err := NewRunner(nil, nil).Execute(context.Background(), Options{
		Root:   root,
		Output: out,
		Meta:   []string{"requirements", "risk"},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	want := soup.Snapshot{"Cargo.toml": soup.NewSet(soup.Dependency{
		Name:    "serde",
		Version: "1.0.140",
		Meta:    soup.Metadata{"requirements": "a-requirement", "risk": ""},
	})}
	if !res.Snapshot.Equal(want) {
		t.Errorf("Snapshot = %v, want %v", res.Snapshot, want)
	}

	added, removed, updated := soup.CountChanges(res.Changes)
	if added != 0 || removed != 1 || updated != 1 {
		t.Errorf("changes = +%d -%d ~%d, want +0 -1 ~1", added, removed, updated)
	}
}

func TestExecute_Idempotent(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "soups.json")
	writeFile(t, filepath.Join(root, "Dockerfile"), "FROM postgres:14.4\nRUN apt install curl\n")

	r := NewRunner(nil, nil)
	first, err := r.Execute(context.Background(), Options{Root: root, Output: out})
	if err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(out)

	second, err := r.Execute(context.Background(), Options{Root: root, Output: out})
	if err != nil {
		t.Fatal(err)
	}
	after, _ := os.ReadFile(out)

	if string(before) != string(after) {
		t.Errorf("second run changed the report:\n%s\nvs\n%s", before, after)
	}
	if first.Hash != second.Hash {
		t.Errorf("Hash changed: %s != %s", first.Hash, second.Hash)
	}
	if len(second.Changes) != 0 {
		t.Errorf("Changes = %v, want none", second.Changes)
	}
}

func TestExecute_Check(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "soups.json")
	writeFile(t, filepath.Join(root, "package.json"), `{"dependencies":{"a":"1"}}`)

	r := NewRunner(nil, nil)
	res, err := r.Execute(context.Background(), Options{Root: root, Output: out, Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Written {
		t.Error("check mode must not write")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("report should not exist, stat err = %v", err)
	}
	if err := CheckError(res, out); !errors.Is(err, errors.ErrCodeReportOutdated) {
		t.Errorf("CheckError = %v, want REPORT_OUTDATED", err)
	}

	if _, err := r.Execute(context.Background(), Options{Root: root, Output: out}); err != nil {
		t.Fatal(err)
	}
	res, err = r.Execute(context.Background(), Options{Root: root, Output: out, Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckError(res, out); err != nil {
		t.Errorf("CheckError after write = %v, want nil", err)
	}
}

func TestExecute_CheckMetadataOnly(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "soups.json")
	writeFile(t, filepath.Join(root, "package.json"), `{"dependencies":{"a":"1"}}`)

	r := NewRunner(nil, nil)
	if _, err := r.Execute(context.Background(), Options{Root: root, Output: out}); err != nil {
		t.Fatal(err)
	}

	res, err := r.Execute(context.Background(), Options{Root: root, Output: out, Meta: []string{"risk"}, Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Changes) != 0 {
		t.Errorf("Changes = %v, want none", res.Changes)
	}
	if !res.Changed() || !res.Outdated {
		t.Errorf("Changed() = %v, Outdated = %v, want both true", res.Changed(), res.Outdated)
	}
	if got := res.MetaChanges(); got != 1 {
		t.Errorf("MetaChanges() = %d, want 1", got)
	}
	err = CheckError(res, out)
	if !errors.Is(err, errors.ErrCodeReportOutdated) {
		t.Fatalf("CheckError = %v, want REPORT_OUTDATED", err)
	}
	if !strings.Contains(err.Error(), "1 metadata changed") {
		t.Errorf("CheckError = %q, want it to mention the metadata change", err.Error())
	}
}

func TestExecute_ParseErrorWritesNothing(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "soups.json")
	writeFile(t, out, "{}\n")
	writeFile(t, filepath.Join(root, "package.json"), `{"dependencies":`)

	_, err := NewRunner(nil, nil).Execute(context.Background(), Options{Root: root, Output: out})
	if !errors.Has(err, errors.ErrCodeInvalidStructure) {
		t.Fatalf("error = %v, want INVALID_STRUCTURE in chain", err)
	}
	data, _ := os.ReadFile(out)
	if string(data) != "{}\n" {
		t.Errorf("report was modified: %q", data)
	}
}

func TestExecute_InvalidReport(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "soups.json")
	writeFile(t, out, `["not", "a", "report"]`)

	_, err := NewRunner(nil, nil).Execute(context.Background(), Options{Root: root, Output: out})
	if !errors.Is(err, errors.ErrCodeInvalidReport) {
		t.Errorf("error = %v, want INVALID_REPORT", err)
	}
}

func TestExecute_UsesRunnerCache(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "soups.json")
	writeFile(t, filepath.Join(root, "package.json"), `{"dependencies":{"a":"1"}}`)

	c, err := cache.NewLRUCache(cache.DefaultSize)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil)
	if _, err := r.Execute(context.Background(), Options{Root: root, Output: out}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(context.Background(), Options{Root: root, Output: out})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.CacheHits != 1 || res.Stats.CacheMisses != 0 {
		t.Errorf("cache hits/misses = %d/%d, want 1/0", res.Stats.CacheHits, res.Stats.CacheMisses)
	}
}

func TestCheckError_NotOutdated(t *testing.T) {
	if err := CheckError(nil, "x"); err != nil {
		t.Errorf("CheckError(nil) = %v", err)
	}
	if err := CheckError(&Result{}, "x"); err != nil {
		t.Errorf("CheckError(up to date) = %v", err)
	}
}
