package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
}

func TestWalkSelectsExtensionRecursively(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"App.tsx",
		"work/Dashboard.tsx",
		"work/deep/nested/Card.tsx",
		"common/Header.ts",
		"common/styles.css",
		"node_modules/lib/index.tsx",
		"dist/bundle.tsx",
	)

	w, err := New(nil, DefaultExclude)
	require.NoError(t, err)

	discovery, err := w.Walk(root)
	require.NoError(t, err)
	assert.Empty(t, discovery.Errors)
	assert.Equal(t, []string{
		filepath.Join(root, "App.tsx"),
		filepath.Join(root, "work", "Dashboard.tsx"),
		filepath.Join(root, "work", "deep", "nested", "Card.tsx"),
	}, discovery.Files)
}

func TestWalkCustomInclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.tsx", "b.jsx", "c.ts")

	w, err := New([]string{"**/*.jsx", "**/*.ts"}, nil)
	require.NoError(t, err)

	discovery, err := w.Walk(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "b.jsx"), filepath.Join(root, "c.ts")}, discovery.Files)
}

func TestWalkRootErrors(t *testing.T) {
	w, err := New(nil, nil)
	require.NoError(t, err)

	_, err = w.Walk(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.tsx")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = w.Walk(file)
	assert.ErrorContains(t, err, "is not a directory")
}

func TestWalkSkipsDirectoryNamedLikeFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Odd.tsx"), 0755))
	writeTree(t, root, "Odd.tsx/Inner.tsx")

	w, err := New(nil, nil)
	require.NoError(t, err)
	discovery, err := w.Walk(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "Odd.tsx", "Inner.tsx")}, discovery.Files)
}

func TestWalkFollowsSymlinkedFiles(t *testing.T) {
	root := t.TempDir()
	elsewhere := t.TempDir()
	writeTree(t, elsewhere, "Real.txt", "shared/Card.tsx")

	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "Real.txt"), filepath.Join(root, "Link.tsx")))
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "shared"), filepath.Join(root, "Shared.tsx")))
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "gone.tsx"), filepath.Join(root, "Broken.tsx")))

	w, err := New(nil, nil)
	require.NoError(t, err)
	discovery, err := w.Walk(root)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "Link.tsx")}, discovery.Files)
	require.Len(t, discovery.Errors, 1)
	assert.Equal(t, filepath.Join(root, "Broken.tsx"), discovery.Errors[0].Path)
	assert.ErrorIs(t, discovery.Errors[0].Err, os.ErrNotExist)
}

func TestNewRejectsBadPattern(t *testing.T) {
	_, err := New([]string{"[unclosed"}, nil)
	assert.Error(t, err)
	_, err = New(nil, []string{"{a,b"})
	assert.Error(t, err)
}

func TestMatchAndExcluded(t *testing.T) {
	w, err := New(nil, DefaultExclude)
	require.NoError(t, err)

	assert.True(t, w.Match("Dashboard.tsx"))
	assert.True(t, w.Match(filepath.Join("work", "Dashboard.tsx")))
	assert.False(t, w.Match("Dashboard.ts"))

	assert.True(t, w.Excluded("node_modules"))
	assert.True(t, w.Excluded(filepath.Join("node_modules", "x", "y.tsx")))
	assert.True(t, w.Excluded(filepath.Join("work", ".git")))
	assert.False(t, w.Excluded("work"))
}
