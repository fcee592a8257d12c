package util

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"pratdiff/internal/logging"
)

const DefaultSettleInterval = 250 * time.Millisecond

// FileWatcher reports changes below a set of paths. Bursts of events (editors usually write a
// file in several steps) are collapsed into a single call of the action.
type FileWatcher struct {
	Paths          []string
	SettleInterval time.Duration
	stop           chan bool
	done           chan struct{}
	actionLock     sync.Mutex
	files          map[string]bool
	dirs           []string

	// guards watcher and stopped
	lifecycleLock sync.Mutex
	stopped       bool
	watcher       *fsnotify.Watcher
}

func NewFileWatcher(paths ...string) *FileWatcher {
	return &FileWatcher{
		Paths:          paths,
		SettleInterval: DefaultSettleInterval,
		stop:           make(chan bool),
		done:           make(chan struct{}),
		actionLock:     sync.Mutex{},
		files:          map[string]bool{},
	}
}

// Watch starts watching all paths, directories recursively. The action is called with the
// name of the last changed file and never concurrently with itself. Watching a FileWatcher that
// has already been stopped does nothing.
func (fileWatcher *FileWatcher) Watch(action func(s string)) error {
	fileWatcher.lifecycleLock.Lock()
	defer fileWatcher.lifecycleLock.Unlock()
	if fileWatcher.stopped {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	fileWatcher.watcher = watcher

	for _, path := range fileWatcher.Paths {
		if err := fileWatcher.addWatch(path); err != nil {
			_ = watcher.Close()
			fileWatcher.watcher = nil
			return err
		}
	}

	go fileWatcher.loop(action)
	return nil
}

// Stop ends watching and waits until a running action has returned
func (fileWatcher *FileWatcher) Stop() {
	fileWatcher.lifecycleLock.Lock()
	defer fileWatcher.lifecycleLock.Unlock()
	fileWatcher.stopped = true
	if fileWatcher.watcher == nil {
		return
	}
	select {
	case fileWatcher.stop <- true:
		<-fileWatcher.done
	case <-fileWatcher.done:
	}
}

func (fileWatcher *FileWatcher) loop(action func(s string)) {
	defer close(fileWatcher.done)

	t := time.NewTicker(fileWatcher.SettleInterval)
	defer t.Stop()

	var pending *fsnotify.Event
	for {
		select {
		case <-t.C:
			if pending == nil {
				continue
			}
			event := pending
			pending = nil

			fileWatcher.actionLock.Lock()
			action(event.Name)
			fileWatcher.actionLock.Unlock()
		// watch for events
		case event, ok := <-fileWatcher.watcher.Events:
			if !ok {
				return
			}
			if !fileWatcher.isRelevant(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				// new directories have to be watched as well
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := fileWatcher.addWatch(event.Name); err != nil {
						logging.Warning("Unable to watch %s: %v", event.Name, err)
					}
				}
			}
			pending = &event
		// watch for errors
		case err, ok := <-fileWatcher.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("File watcher error: %v", err)
		case <-fileWatcher.stop:
			err := fileWatcher.watcher.Close()
			if err != nil {
				logging.Error("Unable to close file watcher: %v", err)
			}
			return
		}
	}
}

// addWatch watches a single file or a directory tree
func (fileWatcher *FileWatcher) addWatch(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		// watching the parent catches editors that replace the file instead of writing it
		fileWatcher.files[filepath.Clean(path)] = true
		return fileWatcher.watcher.Add(filepath.Dir(path))
	}
	fileWatcher.dirs = append(fileWatcher.dirs, filepath.Clean(path))
	return filepath.Walk(path, fileWatcher.addFolderWatch)
}

// isRelevant filters out events for siblings of watched files
func (fileWatcher *FileWatcher) isRelevant(name string) bool {
	name = filepath.Clean(name)
	if fileWatcher.files[name] {
		return true
	}
	for _, dir := range fileWatcher.dirs {
		if name == dir || strings.HasPrefix(name, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// adds a path to the watcher
func (fileWatcher *FileWatcher) addFolderWatch(path string, fi os.FileInfo, err error) error {
	// since fsnotify can watch all the files in a directory, watchers only need
	// to be added to each nested directory
	if err != nil {
		return err
	}

	if fi.Mode().IsDir() {
		return fileWatcher.watcher.Add(path)
	}

	return nil
}
