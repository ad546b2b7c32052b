package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristendillon/importfix/core/config"
	"github.com/tristendillon/importfix/core/logger"
	"github.com/tristendillon/importfix/core/rewriter"
	"github.com/tristendillon/importfix/core/version"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// flag variables outlive a single Execute
	dryRun, showDiff, strict, workers = false, false, false, 0
	force, verbose, noColor, logfile, configPath = false, false, false, "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFixRewritesTree(t *testing.T) {
	root := writeTree(t, map[string]string{
		"work/Dashboard.tsx": "import Header from './Header';\nimport X from './Unknown';\n",
		"common/Header.tsx":  "export default function Header() {}\n",
	})

	out, err := run(t, "fix", root)
	require.NoError(t, err)

	assert.Equal(t,
		"import Header from '../common/Header';\nimport X from './Unknown';\n",
		read(t, filepath.Join(root, "work", "Dashboard.tsx")))
	assert.Contains(t, out, "✓ "+filepath.Join(root, "work", "Dashboard.tsx"))
	assert.Contains(t, out, "2 file(s) scanned, 1 file(s) updated")

	out, err = run(t, "fix", root)
	require.NoError(t, err)
	assert.Contains(t, out, "2 file(s) scanned, 0 file(s) updated")
}

func TestFixDryRunWithDiff(t *testing.T) {
	original := "import Header from \"./Header\";\n"
	root := writeTree(t, map[string]string{"work/Dashboard.tsx": original})

	out, err := run(t, "fix", "--dry-run", "--diff", root)
	require.NoError(t, err)

	assert.Equal(t, original, read(t, filepath.Join(root, "work", "Dashboard.tsx")))
	assert.Contains(t, out, "-import Header from \"./Header\";")
	assert.Contains(t, out, "+import Header from \"../common/Header\";")
	assert.Contains(t, out, "1 file(s) would be updated")
}

func TestFixMissingRootFails(t *testing.T) {
	_, err := run(t, "fix", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRootUsesConfiguredRoot(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"ui/Page.tsx": "import Modal from './Modal';\n",
	})
	cfgPath := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("root: "+filepath.Join(dir, "ui")+"\ncategories:\n  dialogs: [Modal]\n"), 0644))

	out, err := run(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "1 file(s) updated")
	assert.Equal(t, "import Modal from '../dialogs/Modal';\n", read(t, filepath.Join(dir, "ui", "Page.tsx")))
}

func TestRootRejectsPositionalArgs(t *testing.T) {
	_, err := run(t, "somewhere")
	assert.Error(t, err)
}

func TestFinishResultStrict(t *testing.T) {
	failed := &rewriter.Result{Failures: []*rewriter.FileError{
		{Path: "a.tsx", Op: "write", Err: errors.New("read-only file system")},
	}}

	assert.NoError(t, finishResult(failed, false))

	err := finishResult(failed, true)
	require.Error(t, err)
	assert.ErrorContains(t, err, "1 file(s) failed")
	assert.ErrorContains(t, err, "read-only file system")

	assert.NoError(t, finishResult(&rewriter.Result{}, true))
}

func TestTableLookup(t *testing.T) {
	out, err := run(t, "table", "Header", "NotAComponent")
	require.NoError(t, err)
	assert.Regexp(t, `Header\s+common`, out)
	assert.Regexp(t, `NotAComponent\s+\(unclassified\)`, out)
}

func TestTableListsEverything(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "table")
	require.NoError(t, err)
	assert.Contains(t, out, "58 component(s) in 7 folder(s)")
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "init", dir)
	require.NoError(t, err)
	target := filepath.Join(dir, config.FileName)
	assert.Contains(t, out, "Wrote "+target)

	cfg, err := config.Load(target)
	require.NoError(t, err)
	table, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, 58, table.Len())

	_, err = run(t, "init", dir)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "init", "--force", dir)
	assert.NoError(t, err)
}

func TestNoColorFlag(t *testing.T) {
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	t.Cleanup(func() { logger.SetOutput(io.Discard) })

	_, err := run(t, "--no-color", "--verbose", "table", "Header")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "DEBUG")
	assert.NotContains(t, logs.String(), "\033[")

	logs.Reset()
	_, err = run(t, "--verbose", "table", "Header")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), logger.ColorGray)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "importfix "+version.Version+"\n", out)
}
