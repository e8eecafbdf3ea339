package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// settle is how long a write must be quiet before the file is parsed again.
const settle = 100 * time.Millisecond

// Watcher reports writes to a set of input files. fsnotify watches their
// directories since editors often replace a file rather than write it.
type Watcher struct {
	watcher *fsnotify.Watcher
	dirs    map[string]bool
	paths   map[string]bool
}

// NewWatcher returns a new Watcher.
func NewWatcher() (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating watcher")
	}
	return &Watcher{watcher, map[string]bool{}, map[string]bool{}}, nil
}

// Close stops the watcher; the channel returned by Run is closed after.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// AddPath starts watching the file at path.
func (w *Watcher) AddPath(path string) error {
	path = filepath.Clean(path)
	info, err := os.Lstat(path)
	if err != nil {
		return errors.Wrap(err, "watching")
	}
	if IsDir(path) || !info.Mode().IsRegular() {
		return errors.Errorf("cannot watch %s: not a regular file", path)
	}
	w.paths[path] = true

	dir := filepath.Dir(path)
	if w.dirs[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "watching %s", dir)
	}
	w.dirs[dir] = true
	return nil
}

// Run watches for file changes and sends the name of every changed input.
func (w *Watcher) Run() chan string {
	files := make(chan string, 10)
	go func() {
		changetimes := map[string]time.Time{}
		for w.watcher.Events != nil && w.watcher.Errors != nil {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					w.watcher.Events = nil
					break
				}
				name := filepath.Clean(event.Name)
				if !w.paths[name] || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					break
				}
				if t, ok := changetimes[name]; !ok || settle < time.Since(t) {
					time.Sleep(settle) // wait to make sure write is finished
					files <- name
					changetimes[name] = time.Now()
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					w.watcher.Errors = nil
					break
				}
				logger.WithField("component", "watch").Error(err)
			}
		}
		close(files)
	}()
	return files
}
