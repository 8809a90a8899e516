package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch returns a watcher on the directory holding the config file.
// Watching the directory rather than the file survives editors that
// replace the file on save.
func Watch(path string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// WaitForChange blocks until the config file is written, created, or
// replaced, then drains the event burst editors emit around one save.
// Returns false when the watcher closes.
func WaitForChange(w *fsnotify.Watcher, path string) bool {
	base := filepath.Base(path)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return false
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			deadline := time.After(100 * time.Millisecond)
			for {
				select {
				case <-w.Events:
				case <-deadline:
					return true
				}
			}
		case _, ok := <-w.Errors:
			if !ok {
				return false
			}
		}
	}
}
