package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lhaig/burn/internal/driver"
	"github.com/lhaig/burn/internal/logger"
)

// fileWatcher re-checks Burn files after they change. Checks run on
// timer goroutines, so output is serialized by mu. Once stopped, no
// pending timer fires a check and stop waits for running ones.
type fileWatcher struct {
	app      *app
	debounce time.Duration
	explicit map[string]bool

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
	pending sync.WaitGroup
}

func (a *app) handleWatch(ctx context.Context, args []string) error {
	files, err := a.discover(args)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer watcher.Close()

	w := &fileWatcher{
		app:      a,
		debounce: a.cfg.Watch.Debounce,
		explicit: make(map[string]bool),
		timers:   make(map[string]*time.Timer),
	}
	defer w.stop()

	dirs, err := watchDirs(args)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	for _, path := range args {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			w.explicit[filepath.Clean(path)] = true
		}
	}

	for _, path := range files {
		w.check(path)
	}
	logger.Info("watching", "dirs", len(dirs), "files", len(files))
	fmt.Fprintf(a.stdout, "Watching %d file(s). Press Ctrl-C to stop.\n", len(files))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path := filepath.Clean(ev.Name)
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if err := watcher.Add(path); err != nil {
						logger.Warn("watch failed", "dir", path, "error", err)
					}
					continue
				}
			}
			if w.wants(path) {
				w.schedule(path)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

// wants reports whether a change to path should trigger a check
func (w *fileWatcher) wants(path string) bool {
	return w.explicit[path] || filepath.Ext(path) == driver.Extension
}

// schedule checks path once no further events arrive for the debounce
// interval. Editors often write a file several times per save.
func (w *fileWatcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if t, exists := w.timers[path]; exists && t.Stop() {
		w.pending.Done()
	}

	var t *time.Timer
	w.pending.Add(1)
	t = time.AfterFunc(w.debounce, func() {
		defer w.pending.Done()
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.stopped || w.timers[path] != t {
			return
		}
		delete(w.timers, path)
		logger.Debug("file changed", "file", path)
		w.checkLocked(path)
	})
	w.timers[path] = t
}

// stop cancels pending checks and waits for any check already running
func (w *fileWatcher) stop() {
	w.mu.Lock()
	w.stopped = true
	for path, t := range w.timers {
		if t.Stop() {
			w.pending.Done()
		}
		delete(w.timers, path)
	}
	w.mu.Unlock()
	w.pending.Wait()
}

func (w *fileWatcher) check(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.checkLocked(path)
}

func (w *fileWatcher) checkLocked(path string) {
	a := w.app
	diag, err := driver.CheckFile(path, a.checkOptions())
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", err)
		return
	}
	stamp := time.Now().Format("15:04:05")
	switch {
	case diag.HasErrors():
		fmt.Fprintf(a.stderr, "[%s] %s\n%s\n", stamp, path, diag.Render(path))
	case diag.Count() > 0:
		fmt.Fprintf(a.stdout, "[%s] %s\n%s\n", stamp, path, diag.Render(path))
	default:
		fmt.Fprintf(a.stdout, "[%s] %s: ok\n", stamp, path)
	}
}

// watchDirs returns every directory to register: the given directories
// and their subdirectories, plus the parent of each given file.
func watchDirs(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(filepath.Dir(path))
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if p != path && len(d.Name()) > 1 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}
	return dirs, nil
}
