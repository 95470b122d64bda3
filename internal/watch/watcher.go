// Package watch monitors declaration files and triggers recompilation when
// they change. Events are debounced so editors that fire several writes per
// save cause a single rebuild.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// quietPeriod is how long the watcher waits after the last write before
// rebuilding. Editors that write a file several times per save land well
// inside this window.
const quietPeriod = 100 * time.Millisecond

// FileWatcher monitors a source directory and runs a rebuild callback with
// the batch of .stx files that changed since the last rebuild.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	quiet    time.Duration
	onChange func([]string) error
	logger   *zap.Logger

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewFileWatcher creates a watcher over dir. Only .stx files trigger the
// callback.
func NewFileWatcher(dir string, logger *zap.Logger, onChange func([]string) error) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		dir:      dir,
		quiet:    quietPeriod,
		onChange: onChange,
		logger:   logger,
		pending:  make(map[string]struct{}),
		stopChan: make(chan struct{}),
	}, nil
}

// Start begins watching the source directory and its subdirectories
func (fw *FileWatcher) Start() error {
	err := filepath.WalkDir(fw.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != fw.dir {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		fw.logger.Debug("watching directory", zap.String("dir", path))
		return nil
	})
	if err != nil {
		return err
	}

	fw.wg.Add(1)
	go fw.watch()

	return nil
}

// Stop stops the file watcher
func (fw *FileWatcher) Stop() error {
	select {
	case <-fw.stopChan:
		// Already stopped
		return nil
	default:
		close(fw.stopChan)
	}

	fw.wg.Wait()

	fw.mu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mu.Unlock()

	return fw.watcher.Close()
}

// enqueue records a changed file and restarts the quiet-period timer, so a
// burst of writes produces one rebuild.
func (fw *FileWatcher) enqueue(file string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.pending[file] = struct{}{}

	if fw.timer == nil {
		fw.timer = time.AfterFunc(fw.quiet, fw.rebuild)
		return
	}
	fw.timer.Reset(fw.quiet)
}

// rebuild drains the pending batch and runs the callback. The batch is
// sorted so a multi-file save reports its files in a stable order.
func (fw *FileWatcher) rebuild() {
	fw.mu.Lock()
	if len(fw.pending) == 0 {
		fw.mu.Unlock()
		return
	}
	files := make([]string, 0, len(fw.pending))
	for file := range fw.pending {
		files = append(files, file)
	}
	fw.pending = make(map[string]struct{})
	fw.mu.Unlock()

	sort.Strings(files)
	if err := fw.onChange(files); err != nil {
		fw.logger.Error("failed to handle file changes", zap.Error(err))
	}
}

// watch is the main event loop
func (fw *FileWatcher) watch() {
	defer fw.wg.Done()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if fw.shouldIgnore(event.Name) {
				continue
			}

			// New subdirectories need to be added to the watch set
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					fw.watcher.Add(event.Name)
					continue
				}
			}

			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if filepath.Ext(event.Name) == ".stx" {
					fw.logger.Info("file changed", zap.String("file", event.Name))
					fw.enqueue(event.Name)
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("watch error", zap.Error(err))

		case <-fw.stopChan:
			return
		}
	}
}

// shouldIgnore filters editor temp files and hidden paths
func (fw *FileWatcher) shouldIgnore(path string) bool {
	baseName := filepath.Base(path)
	if strings.HasPrefix(baseName, ".") {
		return true
	}
	for _, suffix := range []string{".swp", ".swo", "~"} {
		if strings.HasSuffix(baseName, suffix) {
			return true
		}
	}
	return false
}
