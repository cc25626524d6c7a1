// Package watch re-triggers the analysis pipeline when the telemetry
// file changes. It polls modification times rather than using inotify:
// the recorder rewrites the whole file every few seconds, a missing file
// during rewrite must be tolerated, and a couple of stat calls per second
// cost nothing at this scale.
package watch

import (
	"context"
	"time"

	"github.com/banshee-data/nav.report/internal/fsutil"
	"github.com/banshee-data/nav.report/internal/monitoring"
)

// Watcher polls one file's modification time and invokes a callback each
// time it advances. Callbacks run on the polling goroutine, so successive
// pipeline runs are strictly sequential.
type Watcher struct {
	fsys     fsutil.FileSystem
	path     string
	interval time.Duration
	onChange func()
}

// New creates a Watcher for path. onChange is invoked once per observed
// modification; a non-positive interval falls back to 2s.
func New(fsys fsutil.FileSystem, path string, interval time.Duration, onChange func()) *Watcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Watcher{
		fsys:     fsys,
		path:     path,
		interval: interval,
		onChange: onChange,
	}
}

// Run polls until the context is cancelled and returns the context's
// error. The file's current mod time is taken as the baseline, so only
// changes after Run starts fire the callback; a file that is briefly
// absent (recorder mid-rewrite) is skipped and polling continues.
func (w *Watcher) Run(ctx context.Context) error {
	var lastModified time.Time
	if info, err := w.fsys.Stat(w.path); err == nil {
		lastModified = info.ModTime()
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			info, err := w.fsys.Stat(w.path)
			if err != nil {
				continue
			}
			if mod := info.ModTime(); mod.After(lastModified) {
				lastModified = mod
				monitoring.Logf("watch: %s modified at %s, triggering run", w.path, mod.Format(time.RFC3339))
				w.onChange()
			}
		}
	}
}
