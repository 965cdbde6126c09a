package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/souper/pkg/errors"
	"github.com/matzehuels/souper/pkg/soup"
)

type record struct {
	Name    string        `json:"name"`
	Version string        `json:"version"`
	Meta    soup.Metadata `json:"meta"`
}

// WriteJSON encodes a snapshot as the canonical report and writes it to w.
//
// Paths and metadata keys are sorted, records appear in dependency order, and
// the document is indented with two spaces and ends with a newline. Every
// record carries a "meta" object, empty when there is no metadata. The output
// can be read back with [ReadJSON].
func WriteJSON(s soup.Snapshot, w io.Writer) error {
	out := make(map[string][]record, len(s))
	for path, set := range s {
		recs := make([]record, 0, set.Len())
		for _, d := range set.Items() {
			meta := d.Meta
			if meta == nil {
				meta = soup.Metadata{}
			}
			recs = append(recs, record{Name: d.Name, Version: d.Version, Meta: meta})
		}
		out[path] = recs
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode report")
	}
	return nil
}

// ExportJSON writes a snapshot to the report file at path.
//
// The report is written to a temporary file in the same directory and renamed
// into place, so a failed run never leaves a truncated report behind. An
// existing report keeps its file mode. A path naming a directory is rejected
// with INVALID_INPUT.
func ExportJSON(s soup.Snapshot, path string) (err error) {
	mode := os.FileMode(0o644)
	if fi, statErr := os.Stat(path); statErr == nil {
		if fi.IsDir() {
			return errors.New(errors.ErrCodeInvalidInput, "report path %s is a directory", path)
		}
		mode = fi.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create temp file for %s", path)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = WriteJSON(s, f); err != nil {
		return err
	}
	if err = f.Chmod(mode); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "chmod %s", tmp)
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", tmp)
	}
	if err = os.Rename(tmp, path); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "rename %s to %s", tmp, path)
	}
	return nil
}
