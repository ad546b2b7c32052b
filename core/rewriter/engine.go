package rewriter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/tristendillon/importfix/core/cache"
	"github.com/tristendillon/importfix/core/classification"
	"github.com/tristendillon/importfix/core/logger"
	"github.com/tristendillon/importfix/core/walker"
	"golang.org/x/sync/errgroup"
)

var errNotRegular = errors.New("not a regular file")

type Options struct {
	// DryRun computes changes without writing them.
	DryRun bool
	// Diff attaches a line diff to every change.
	Diff bool
	// Workers bounds how many files are processed at once. Values below 1 mean 1.
	Workers int
	// Cache, when set, skips files whose content is unchanged since the cache last saw them.
	Cache *cache.ContentCache
}

// Engine rewrites flat "./Component" imports to their category folder.
type Engine struct {
	table  *classification.Table
	walker walker.FileWalker
	rules  []rule
	opts   Options
	differ *Differ
}

func NewEngine(table *classification.Table, w walker.FileWalker, opts Options) (*Engine, error) {
	if table == nil {
		return nil, fmt.Errorf("classification table is required")
	}
	if w == nil {
		return nil, fmt.Errorf("file walker is required")
	}

	rules, err := compileRules(table)
	if err != nil {
		return nil, err
	}

	if opts.Workers < 1 {
		opts.Workers = 1
	}

	logger.Debug("Compiled %d import rules for %d components", len(rules), table.Len())

	return &Engine{
		table:  table,
		walker: w,
		rules:  rules,
		opts:   opts,
		differ: NewDiffer(),
	}, nil
}

func (e *Engine) Table() *classification.Table {
	return e.table
}

// RewriteContent applies every rule to content and reports what changed.
func (e *Engine) RewriteContent(content string) (string, []Replacement) {
	return applyRules(e.rules, content)
}

// Run rewrites every matching file under root. The returned error is reserved
// for conditions that stop the whole run; per-file problems land in the Result.
func (e *Engine) Run(ctx context.Context, root string) (*Result, error) {
	discovery, err := e.walker.Walk(root)
	if err != nil {
		return nil, err
	}

	result, err := e.process(ctx, discovery.Files)
	if err != nil {
		return result, err
	}

	for _, we := range discovery.Errors {
		result.Failures = append(result.Failures, &FileError{Path: we.Path, Op: "walk", Err: we.Err})
	}
	sort.SliceStable(result.Failures, func(i, j int) bool {
		return result.Failures[i].Path < result.Failures[j].Path
	})

	return result, nil
}

// RunFiles processes only the given paths, which need not exist any more.
func (e *Engine) RunFiles(ctx context.Context, paths []string) (*Result, error) {
	unique := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			unique = append(unique, p)
		}
	}
	sort.Strings(unique)

	return e.process(ctx, unique)
}

type status int

const (
	statusUnchanged status = iota
	statusModified
	statusSkipped
	statusFailed
)

type outcome struct {
	status  status
	change  *FileChange
	failure *FileError
}

func (e *Engine) process(ctx context.Context, paths []string) (*Result, error) {
	outcomes := make([]outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	scheduled := 0
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		scheduled++
		g.Go(func() error {
			outcomes[i] = e.processFile(path)
			return nil
		})
	}
	_ = g.Wait()

	result := &Result{DryRun: e.opts.DryRun}
	for i, path := range paths[:scheduled] {
		o := outcomes[i]
		result.FilesScanned++
		switch o.status {
		case statusModified:
			result.FilesModified++
			result.Changes = append(result.Changes, *o.change)
		case statusSkipped:
			result.Skipped = append(result.Skipped, path)
		case statusFailed:
			result.Failures = append(result.Failures, o.failure)
		}
	}

	if e.opts.Cache != nil {
		e.opts.Cache.LogStats()
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("rewrite interrupted after %d file(s): %w", result.FilesScanned, err)
	}
	return result, nil
}

func (e *Engine) processFile(path string) outcome {
	fail := func(op string, err error) outcome {
		logger.Warn("importfix: failed to %s %s: %v", op, path, err)
		return outcome{status: statusFailed, failure: &FileError{Path: path, Op: op, Err: err}}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fail("stat", err)
	}
	if !info.Mode().IsRegular() {
		return fail("read", errNotRegular)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fail("read", err)
	}

	if e.opts.Cache != nil && !e.opts.Cache.UpdateContent(path, data) {
		logger.Debug("Unchanged since last pass: %s", path)
		return outcome{status: statusUnchanged}
	}

	if !isText(data) {
		logger.Warn("importfix: skipping %s: content is not text", path)
		return outcome{status: statusSkipped}
	}

	original := string(data)
	updated, replacements := e.RewriteContent(original)
	if updated == original {
		return outcome{status: statusUnchanged}
	}

	change := &FileChange{Path: path, Replacements: replacements}
	if e.opts.Diff {
		change.Diff = e.differ.LineDiff(path, original, updated)
	}

	if e.opts.DryRun {
		e.forget(path)
	} else {
		if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
			e.forget(path)
			return fail("write", err)
		}
		if e.opts.Cache != nil {
			e.opts.Cache.RecordWrite(path, []byte(updated))
		}
	}

	logger.Debug("Rewrote %d import(s) in %s", change.Count(), path)
	return outcome{status: statusModified, change: change}
}

// forget drops path from the cache so a file that still holds old imports is
// picked up again on the next pass.
func (e *Engine) forget(path string) {
	if e.opts.Cache != nil {
		e.opts.Cache.RemoveContent(path)
	}
}

func isText(data []byte) bool {
	return utf8.Valid(data) && bytes.IndexByte(data, 0) < 0
}
