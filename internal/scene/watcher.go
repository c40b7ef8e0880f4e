package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher turns edits of a YAML parameter file into Patches.
//
// File events are handled on a background goroutine that only parses; the
// resulting patches must be applied by the owner of Params, on its own
// thread, by draining Patches.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	patches chan Patch
	errs    chan error
	done    chan struct{}
}

// Watch starts watching path. The parent directory is watched so that
// editors which replace the file on save are still picked up. If the file
// already exists, its contents are delivered as the first patch.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		fsw:     fsw,
		patches: make(chan Patch, 8),
		errs:    make(chan error, 8),
		done:    make(chan struct{}),
	}

	if _, err := os.Stat(abs); err == nil {
		w.reload()
	}

	go w.loop()
	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Patches delivers one patch per successful reload.
func (w *Watcher) Patches() <-chan Patch {
	return w.patches
}

// Errors delivers read, parse and watch errors.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.reload()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.sendErr(fmt.Errorf("reading %s: %w", w.path, err))
		return
	}
	patch, err := ParsePatch(data)
	if err != nil {
		w.sendErr(fmt.Errorf("parsing %s: %w", w.path, err))
		return
	}
	if patch.Empty() {
		return
	}
	select {
	case w.patches <- patch:
	case <-w.done:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.errs <- err:
	default:
		// Drop when nobody is draining errors.
	}
}
