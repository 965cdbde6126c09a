package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/souper/pkg/errors"
	"github.com/matzehuels/souper/pkg/manifest"
)

// SkipDirs lists directory names that are never descended into.
var SkipDirs = []string{"node_modules", "bin", "obj"}

// Manifest is a recognized file found under the scan root.
type Manifest struct {
	Path  string          // Absolute path on disk
	Rel   string          // Slash-separated path relative to the root
	Kinds []manifest.Kind // Extractors that apply, in order
}

// Walker finds manifests under a root directory.
type Walker struct {
	root     string
	dirs     []string // absolute excluded directories
	patterns []string // doublestar patterns over relative paths
}

// NewWalker creates a walker for root. Each exclusion is either a glob
// pattern, matched against slash-separated paths relative to root, or a
// directory path, absolute or relative to root.
func NewWalker(root string, exclude []string) (*Walker, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve root %s", root)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "stat root %s", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "root %s is not a directory", root)
	}

	w := &Walker{root: abs}
	for _, ex := range exclude {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}
		if isPattern(ex) {
			if !doublestar.ValidatePattern(ex) {
				return nil, errors.New(errors.ErrCodeInvalidInput, "invalid exclude pattern %q", ex)
			}
			w.patterns = append(w.patterns, ex)
			continue
		}
		if !filepath.IsAbs(ex) {
			ex = filepath.Join(abs, ex)
		}
		w.dirs = append(w.dirs, filepath.Clean(ex))
	}
	return w, nil
}

// Root returns the absolute scan root.
func (w *Walker) Root() string { return w.root }

// Walk returns every recognized manifest in lexical path order.
// Symbolic links are not followed.
func (w *Walker) Walk(ctx context.Context) ([]Manifest, error) {
	var found []Manifest
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == w.root {
			return nil
		}

		if d.IsDir() {
			if w.SkipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		kinds := manifest.Classify(d.Name())
		if len(kinds) == 0 {
			return nil
		}
		if raw, err := filepath.Rel(w.root, path); err == nil && w.excluded(filepath.ToSlash(raw)) {
			return nil
		}
		// Only discovered manifests must have a representable path.
		rel, err := w.Rel(path)
		if err != nil {
			return err
		}
		found = append(found, Manifest{Path: path, Rel: rel, Kinds: kinds})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Rel expresses path relative to the root with forward slashes.
func (w *Walker) Rel(path string) (string, error) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "relativize %s", path)
	}
	rel = filepath.ToSlash(rel)
	if err := errors.ValidatePath(rel); err != nil {
		return "", err
	}
	return rel, nil
}

// SkipDir reports whether the directory at the absolute path is excluded,
// either by name, by path, or by pattern. The root is never skipped.
func (w *Walker) SkipDir(path string) bool {
	path = filepath.Clean(path)
	if path == w.root {
		return false
	}
	if slices.Contains(SkipDirs, filepath.Base(path)) || slices.Contains(w.dirs, path) {
		return true
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return w.excluded(filepath.ToSlash(rel))
}

// Matches reports whether Walk would yield a regular file at the absolute
// path. The file itself need not exist.
func (w *Walker) Matches(path string) bool {
	path = filepath.Clean(path)
	if !manifest.Supported(filepath.Base(path)) {
		return false
	}
	rel, err := w.Rel(path)
	if err != nil || w.excluded(rel) {
		return false
	}
	for dir := filepath.Dir(path); dir != w.root; dir = filepath.Dir(dir) {
		if w.SkipDir(dir) {
			return false
		}
	}
	return true
}

func (w *Walker) excluded(rel string) bool {
	for _, p := range w.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
