package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"sysmon/internal/logger"
)

// FileWatcher monitors a single file for changes and invokes a callback on
// modification. Used in watch mode to pick up alert threshold changes
// without restarting the agent.
type FileWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func()

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	done     chan struct{}
}

// NewFileWatcher creates a watcher that calls onChange when path is modified.
func NewFileWatcher(path string, onChange func()) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		path:     path,
		watcher:  w,
		onChange: onChange,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching for file changes. The parent directory is watched
// because editors commonly replace files via rename.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	fw.running = true
	fw.mu.Unlock()

	log := logger.WithComponent("config-watcher")

	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		return err
	}

	log.Info().Str("path", fw.path).Msg("Started watching config file")

	go fw.watch()
	return nil
}

// Stop stops watching and releases the underlying watcher.
func (fw *FileWatcher) Stop() {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		return
	}
	fw.running = false
	fw.mu.Unlock()

	close(fw.stopChan)
	<-fw.done
	fw.watcher.Close()
}

func (fw *FileWatcher) watch() {
	defer close(fw.done)

	log := logger.WithComponent("config-watcher")
	target := filepath.Clean(fw.path)

	for {
		select {
		case <-fw.stopChan:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug().Str("event", event.Op.String()).Msg("Config file changed")
			fw.onChange()
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("Config watcher error")
		}
	}
}
