package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceWindow = 100 * time.Millisecond

// Watcher reports prefab and script file changes on disk, debounced, so
// tuning edits reload without restarting the game.
type Watcher struct {
	fs     *fsnotify.Watcher
	Events chan string
	Errors chan error
	once   sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:     fs,
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.fs.Close()
	})
	return err
}

// run forwards filtered change events until the underlying watcher closes.
// Editor saves arrive as bursts (write, rename, chmod in quick succession),
// so repeats within the debounce window collapse into one event per file.
func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	seen := make(map[string]time.Time)
	for {
		select {
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !reloadable(evt.Name) {
				continue
			}
			now := time.Now()
			if now.Sub(seen[evt.Name]) < debounceWindow {
				continue
			}
			seen[evt.Name] = now
			select {
			case w.Events <- evt.Name:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		}
	}
}

// reloadable reports whether an edit to path should trigger a reload.
// Yaml files hold tuning specs and the upgrade catalog, tengo files are
// hazard phase scripts.
func reloadable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".tengo":
		return true
	}
	return false
}
