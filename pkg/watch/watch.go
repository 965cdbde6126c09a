// Package watch re-runs work when manifests under a directory tree change.
//
// A [Watcher] wraps fsnotify with recursive directory registration, and a
// [Debouncer] folds bursts of events (editors often write a file several
// times per save) into a single batch. [Run] ties the two together:
//
//	err := watch.Run(ctx, watch.Options{
//	    Root:  root,
//	    Skip:  walker.SkipDir,
//	    Match: walker.Matches,
//	}, func(ctx context.Context, changed []string) error {
//	    return rescan(ctx)
//	})
package watch

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultWindow is the quiet period after the last change before work runs.
const DefaultWindow = 200 * time.Millisecond

// Options configures Run.
type Options struct {
	Root   string                 // Directory to watch
	Skip   func(dir string) bool  // Directories not to watch (optional)
	Match  func(path string) bool // Files whose changes trigger work (default: all)
	Window time.Duration          // Debounce window (default: DefaultWindow)
	Logger *log.Logger            // Debug output (optional)
}

// Run watches opts.Root and calls fn with the changed paths once changes
// settle. Calls to fn never overlap; changes that arrive while fn runs are
// batched into the next call. Removing or renaming a watched directory
// always triggers fn.
//
// Run returns nil when ctx is done, or the first error returned by fn.
func Run(ctx context.Context, opts Options, fn func(ctx context.Context, changed []string) error) error {
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Match == nil {
		opts.Match = func(string) bool { return true }
	}

	w, err := NewWatcher(opts.Root, opts.Skip, opts.Logger)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w.Start(ctx)

	// A pending batch already covers anything that arrives before it runs.
	trigger := make(chan []string, 1)
	d := NewDebouncer(opts.Window, func(paths []string) {
		select {
		case trigger <- paths:
		default:
		}
	})
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Dir || opts.Match(ev.Path) {
				w.logger.Debug("change", "path", ev.Path, "op", ev.Op)
				d.Add(ev.Path)
			}
		case changed := <-trigger:
			if err := fn(ctx, changed); err != nil {
				return err
			}
		}
	}
}
