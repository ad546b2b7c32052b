package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tristendillon/importfix/core/logger"
	"github.com/tristendillon/importfix/core/walker"
)

const DefaultDebounce = 500 * time.Millisecond

// FileWatcher batches filesystem events under RootDir and hands the changed
// matching files to OnChange once events stop arriving for Debounce.
type FileWatcher struct {
	RootDir  string
	Debounce time.Duration
	OnChange func(paths []string) error
	OnRemove func(path string)

	walker  walker.FileWalker
	watcher *fsnotify.Watcher

	mutex   sync.Mutex
	timer   *time.Timer
	pending map[string]bool
	closed  bool

	// serializes OnChange calls
	runMutex sync.Mutex
}

func NewFileWatcher(rootDir string, w walker.FileWalker) (*FileWatcher, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", rootDir, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &FileWatcher{
		RootDir:  absRoot,
		Debounce: DefaultDebounce,
		OnChange: func([]string) error { return fmt.Errorf("OnChange not set") },
		OnRemove: func(string) {},
		walker:   w,
		watcher:  fsw,
		pending:  make(map[string]bool),
	}, nil
}

// Watch blocks until ctx is done or the underlying watcher fails.
func (fw *FileWatcher) Watch(ctx context.Context) error {
	if err := fw.addWatchersRecursively(fw.RootDir); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	rel, ok := fw.relative(event.Name)
	if !ok || fw.walker.Excluded(rel) {
		return
	}

	logger.Debug("File event: %s %s", event.Op, event.Name)

	if event.Has(fsnotify.Create) {
		if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
			logger.Debug("Adding watcher for new directory: %s", event.Name)
			if err := fw.addWatchersRecursively(event.Name); err != nil {
				logger.Warn("Could not watch %s: %v", event.Name, err)
			}
			return
		}
	}

	if !fw.walker.Match(rel) {
		return
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		fw.OnRemove(event.Name)
		fw.unqueue(event.Name)
		return
	}

	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
		fw.queue(event.Name)
	}
}

func (fw *FileWatcher) queue(path string) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()

	if fw.closed {
		return
	}
	fw.pending[path] = true

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.Debounce, fw.flush)
}

func (fw *FileWatcher) unqueue(path string) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	delete(fw.pending, path)
}

func (fw *FileWatcher) flush() {
	fw.mutex.Lock()
	if fw.closed || len(fw.pending) == 0 {
		fw.mutex.Unlock()
		return
	}
	paths := make([]string, 0, len(fw.pending))
	for p := range fw.pending {
		paths = append(paths, p)
	}
	fw.pending = make(map[string]bool)
	fw.mutex.Unlock()

	sort.Strings(paths)

	fw.runMutex.Lock()
	defer fw.runMutex.Unlock()

	logger.Debug("File changes detected in %d file(s), rewriting...", len(paths))
	if err := fw.OnChange(paths); err != nil {
		logger.Error("Watcher.OnChange failed: %v", err)
	}
}

func (fw *FileWatcher) Close() error {
	fw.mutex.Lock()
	fw.closed = true
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mutex.Unlock()

	// wait for an in-flight OnChange
	fw.runMutex.Lock()
	defer fw.runMutex.Unlock()

	return fw.watcher.Close()
}

func (fw *FileWatcher) relative(path string) (string, bool) {
	rel, err := filepath.Rel(fw.RootDir, path)
	if err != nil || rel == "." {
		return "", false
	}
	return rel, true
}

func (fw *FileWatcher) addWatchersRecursively(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Skipping inaccessible path %s: %v", path, err)
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if rel, ok := fw.relative(path); ok && fw.walker.Excluded(rel) {
			logger.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}

		logger.Debug("Adding watcher for: %s", path)
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}
		return nil
	})
}
