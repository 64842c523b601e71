package host

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the configuration whenever the file changes on disk and calls onChange after each reload. The
// directory is watched rather than the file, as editors commonly replace files by renaming. Call Close to stop.
func (h *Host) Watch(onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	dir := filepath.Dir(h.path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch config: %w", err)
	}
	h.mu.Lock()
	h.watcher = w
	h.mu.Unlock()
	go h.watch(w, onChange)
	return nil
}

func (h *Host) watch(w *fsnotify.Watcher, onChange func()) {
	target := filepath.Clean(h.path)
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := h.reload(); err != nil {
				h.log.WithField("cause", err).Warning("Could not reload config")
				continue
			}
			h.log.WithField("path", h.path).Debug("Config reloaded")
			if onChange != nil {
				onChange()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			h.log.WithField("cause", err).Warning("Config watcher error")
		}
	}
}

func (h *Host) reload() error {
	v, err := h.load()
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.v = v
	h.mu.Unlock()
	return nil
}

// Close stops watching the configuration file.
func (h *Host) Close() error {
	h.mu.Lock()
	w := h.watcher
	h.watcher = nil
	h.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Close()
}
