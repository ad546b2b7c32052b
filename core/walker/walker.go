package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tristendillon/importfix/core/logger"
)

var DefaultInclude = []string{"**/*.tsx"}

var DefaultExclude = []string{
	"**/.git/**", "**/node_modules/**", "**/vendor/**", "**/.next/**",
	"**/build/**", "**/dist/**", "**/__pycache__/**",
}

type FileWalker interface {
	Walk(root string) (*Discovery, error)
	Match(rel string) bool
	Excluded(rel string) bool
}

// WalkError is a path the walk could not enter or stat. It does not stop the walk.
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

type Discovery struct {
	Files  []string
	Errors []*WalkError
}

type Walker struct {
	Include []string
	Exclude []string
}

func New(include, exclude []string) (*Walker, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, pattern := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return &Walker{Include: include, Exclude: exclude}, nil
}

// Match reports whether rel (relative to the walk root) selects a file.
func (w *Walker) Match(rel string) bool {
	return matchAny(w.Include, filepath.ToSlash(rel))
}

func (w *Walker) Excluded(rel string) bool {
	normalized := filepath.ToSlash(rel)
	return matchAny(w.Exclude, normalized) || matchAny(w.Exclude, normalized+"/")
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// Walk collects every regular file under root selected by Include and not
// under an Exclude pattern. Paths are returned sorted.
func (w *Walker) Walk(root string) (*Discovery, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	discovery := &Discovery{}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("Skipping %s: %v", path, err)
			discovery.Errors = append(discovery.Errors, &WalkError{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		if w.Excluded(relPath) {
			if d.IsDir() {
				logger.Debug("Excluding directory: %s", relPath)
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !w.Match(relPath) {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				logger.Warn("Skipping %s: %v", path, err)
				discovery.Errors = append(discovery.Errors, &WalkError{Path: path, Err: err})
				return nil
			}
			if !info.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		discovery.Files = append(discovery.Files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(discovery.Files)
	logger.Debug("Discovered %d file(s) under %s", len(discovery.Files), root)
	return discovery, nil
}
