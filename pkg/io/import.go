package io

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/souper/pkg/errors"
	"github.com/matzehuels/souper/pkg/soup"
)

type rawRecord struct {
	Name    string        `json:"name"`
	Version *string       `json:"version"`
	Meta    soup.Metadata `json:"meta"`
}

// ReadJSON decodes a report from r into a snapshot.
//
// The input must be a JSON object mapping relative manifest paths to arrays
// of records:
//
//	{
//	  "src/package.json": [
//	    {"name": "react", "version": "^18.2.0", "meta": {"requirements": ""}}
//	  ]
//	}
//
// Each record needs a non-empty "name" and a string "version"; "meta" is
// optional and defaults to an empty object. Numbers in metadata are kept as
// [json.Number] so they are written back exactly as read. Records need not
// be sorted; duplicates keep their first occurrence.
//
// Any other shape, a path that is not a clean relative path, or trailing
// data after the object fails with INVALID_REPORT. ReadJSON does not close r.
func ReadJSON(r io.Reader) (soup.Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string][]rawRecord
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidReport, err, "decode report")
	}
	if raw == nil {
		return nil, errors.New(errors.ErrCodeInvalidReport, "report must be a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidReport, "unexpected data after report object")
	}

	s := make(soup.Snapshot, len(raw))
	for path, recs := range raw {
		if err := errors.ValidatePath(path); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidReport, err, "report key %q", path)
		}
		if recs == nil {
			return nil, errors.New(errors.ErrCodeInvalidReport, "%s: records must be an array", path)
		}

		deps := make([]soup.Dependency, 0, len(recs))
		for i, rec := range recs {
			if rec.Name == "" {
				return nil, errors.New(errors.ErrCodeInvalidReport, "%s: record %d has no name", path, i)
			}
			if rec.Version == nil {
				return nil, errors.New(errors.ErrCodeInvalidReport, "%s: record %q has no version", path, rec.Name)
			}
			meta := rec.Meta
			if meta == nil {
				meta = soup.Metadata{}
			}
			deps = append(deps, soup.Dependency{Name: rec.Name, Version: *rec.Version, Meta: meta})
		}
		s[path] = soup.NewSet(deps...)
	}
	return s, nil
}

// ImportJSON reads the report file at path.
//
// A missing file is not an error: it yields an empty snapshot, which is the
// state before the first scan. A path naming a directory fails with
// INVALID_INPUT and an unreadable file with IO_ERROR.
func ImportJSON(path string) (soup.Snapshot, error) {
	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return soup.Snapshot{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "stat %s", path)
	}
	if fi.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "report path %s is a directory", path)
	}

	s, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return s, nil
}
