package rewriter

import (
	"errors"
	"fmt"

	"github.com/tristendillon/importfix/core/logger"
)

type FileChange struct {
	Path         string
	Replacements []Replacement
	Diff         string
}

func (c FileChange) Count() int {
	total := 0
	for _, r := range c.Replacements {
		total += r.Count
	}
	return total
}

// FileError is a failure scoped to one path. It never aborts a run.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

type Result struct {
	FilesScanned  int
	FilesModified int
	DryRun        bool
	Changes       []FileChange
	Failures      []*FileError
	// Skipped lists files whose content is not text. They are never modified.
	Skipped []string
}

// Err joins every per-file failure, or returns nil when the run was clean.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

func (r *Result) Failed() bool {
	return len(r.Failures) > 0
}

func (r *Result) Log(level logger.LogLevel) {
	log := logger.GetLogFromLevel(level)
	verb := "updated"
	if r.DryRun {
		verb = "would be updated"
	}
	log("%d file(s) scanned, %d file(s) %s, %d failed, %d skipped",
		r.FilesScanned, r.FilesModified, verb, len(r.Failures), len(r.Skipped))
}
