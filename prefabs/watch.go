package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind classifies a reloadable file.
type ChangeKind int

const (
	ChangeTuning ChangeKind = iota
	ChangePrefab
	ChangeScript
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeTuning:
		return "tuning"
	case ChangePrefab:
		return "prefab"
	case ChangeScript:
		return "script"
	default:
		return "unknown"
	}
}

// Change reports one settled edit to a reloadable file.
type Change struct {
	Path string
	Kind ChangeKind
}

// DefaultDebounce collapses the burst of writes editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports edits to tuning, prefab and script files under the watched
// directories. Changes and Errors are closed once Close returns.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	Changes  chan Change
	Errors   chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
}

func NewWatcher(debounce time.Duration, dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher:  fw,
		debounce: debounce,
		Changes:  make(chan Change, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Changes)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			kind, ok := ClassifyChange(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, seen := last[event.Name]; seen && now.Sub(t) < w.debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Changes <- Change{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// ClassifyChange maps a file path to the reload it requires.
func ClassifyChange(path string) (ChangeKind, bool) {
	base := strings.ToLower(filepath.Base(path))
	switch filepath.Ext(base) {
	case ".yaml", ".yml":
		if base == TuningFile {
			return ChangeTuning, true
		}
		return ChangePrefab, true
	case ".tengo":
		return ChangeScript, true
	}
	return 0, false
}
