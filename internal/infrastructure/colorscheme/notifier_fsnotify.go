package colorscheme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileNotifier is the events-based registration: it watches the directories
// holding the desktop settings files and signals on writes to those files.
// Directories are watched instead of files so atomic renames are seen.
type FileNotifier struct {
	files   map[string]bool
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewFileNotifier creates a notifier for the given files.
func NewFileNotifier(files ...string) *FileNotifier {
	set := make(map[string]bool, len(files))
	for _, f := range files {
		set[filepath.Clean(f)] = true
	}
	return &FileNotifier{files: set}
}

// Name implements port.ChangeNotifier.
func (*FileNotifier) Name() string { return "fsnotify" }

// Watchable reports whether at least one parent directory exists.
func (n *FileNotifier) Watchable() bool {
	for _, dir := range n.dirs() {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func (n *FileNotifier) dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for f := range n.files {
		dir := filepath.Dir(f)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Start implements port.ChangeNotifier.
func (n *FileNotifier) Start(onSignal func()) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.watcher != nil {
		return errors.New("file notifier already started")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	added := 0
	for _, dir := range n.dirs() {
		if err := watcher.Add(dir); err == nil {
			added++
		}
	}
	if added == 0 {
		_ = watcher.Close()
		return errors.New("no settings directory can be watched")
	}

	n.watcher = watcher
	n.done = make(chan struct{})
	go n.loop(watcher, n.done, onSignal)
	return nil
}

func (n *FileNotifier) loop(watcher *fsnotify.Watcher, done chan struct{}, onSignal func()) {
	defer close(done)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !n.files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				onSignal()
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Stop implements port.ChangeNotifier.
func (n *FileNotifier) Stop() error {
	n.mu.Lock()
	watcher, done := n.watcher, n.done
	n.watcher, n.done = nil, nil
	n.mu.Unlock()

	if watcher == nil {
		return nil
	}
	err := watcher.Close()
	<-done
	return err
}
