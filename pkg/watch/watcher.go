package watch

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/souper/pkg/errors"
)

// Op is the kind of file system change.
type Op uint8

const (
	OpCreate Op = iota
	OpWrite
	OpRemove
	OpRename
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	}
	return "unknown"
}

// Event is a change to a path under the watched root.
type Event struct {
	Path string // Absolute path
	Op   Op
	Dir  bool // Path is, or was, a watched directory
}

const eventBuffer = 100

// Watcher reports changes under a directory tree. Directories created after
// the watcher starts are added as they appear.
type Watcher struct {
	fs     *fsnotify.Watcher
	skip   func(dir string) bool
	logger *log.Logger
	events chan Event

	mu   sync.Mutex
	dirs map[string]struct{}
}

// NewWatcher watches root and every directory below it for which skip
// returns false. A nil skip watches everything.
func NewWatcher(root string, skip func(dir string) bool, logger *log.Logger) (*Watcher, error) {
	if skip == nil {
		skip = func(string) bool { return false }
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create watcher")
	}
	w := &Watcher{
		fs:     fw,
		skip:   skip,
		logger: logger,
		events: make(chan Event, eventBuffer),
		dirs:   make(map[string]struct{}),
	}
	if err := w.addTree(root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Start forwards events until ctx is done or the watcher is closed.
// The channel returned by Events is closed when forwarding stops.
func (w *Watcher) Start(ctx context.Context) {
	go w.processEvents(ctx)
}

// Events returns the channel of observed changes.
func (w *Watcher) Events() <-chan Event { return w.events }

// Close stops watching and releases the underlying file descriptors.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// addTree adds dir and its subdirectories. Unreadable subdirectories are
// skipped; failing to watch the top directory is an error.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return errors.Wrap(errors.ErrCodeIO, err, "watch %s", path)
			}
			w.logger.Debug("skipping unreadable directory", "path", path, "err", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.skip(path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			if path == dir {
				return errors.Wrap(errors.ErrCodeIO, err, "watch %s", path)
			}
			w.logger.Warn("cannot watch directory", "path", path, "err", err)
			return nil
		}
		w.mu.Lock()
		w.dirs[filepath.Clean(path)] = struct{}{}
		w.mu.Unlock()
		return nil
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			out, ok := w.convert(ev)
			if !ok {
				continue
			}
			if out.Op == OpCreate {
				if info, err := os.Stat(out.Path); err == nil && info.IsDir() && !w.skip(out.Path) {
					out.Dir = true
					if err := w.addTree(out.Path); err != nil {
						w.logger.Warn("cannot watch new directory", "path", out.Path, "err", err)
					}
				}
			}
			select {
			case w.events <- out:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "err", err)
		}
	}
}

func (w *Watcher) convert(ev fsnotify.Event) (Event, bool) {
	out := Event{Path: filepath.Clean(ev.Name)}
	switch {
	case ev.Has(fsnotify.Write):
		out.Op = OpWrite
	case ev.Has(fsnotify.Create):
		out.Op = OpCreate
	case ev.Has(fsnotify.Remove):
		out.Op = OpRemove
	case ev.Has(fsnotify.Rename):
		out.Op = OpRename
	default:
		return Event{}, false
	}
	if out.Op == OpRemove || out.Op == OpRename {
		w.mu.Lock()
		if _, ok := w.dirs[out.Path]; ok {
			out.Dir = true
			delete(w.dirs, out.Path)
		}
		w.mu.Unlock()
	}
	return out, true
}
