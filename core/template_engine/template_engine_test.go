package template_engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristendillon/importfix/core/classification"
	"github.com/tristendillon/importfix/core/config"
)

func TestInitConfigRoundTrip(t *testing.T) {
	engine := NewTemplateEngine()

	out := filepath.Join(t.TempDir(), "nested", config.FileName)
	data := NewConfigTemplateData(config.Default(), classification.Default())
	require.NoError(t, engine.GenerateFile(TEMPLATES.INIT_CONFIG, out, data))

	cfg, err := config.Load(out)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Root, cfg.Root)
	assert.Equal(t, config.Default().Exclude, cfg.Exclude)

	table, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, classification.Default().Entries(), table.Entries())
}

func TestRenderCustomTable(t *testing.T) {
	table, err := classification.New(map[classification.CategoryFolder][]classification.ComponentName{
		"work":      {"TodayWork", "Dashboard"},
		"shared/ui": {"Header"},
	})
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Root = "src/components"
	cfg.Workers = 3

	out, err := NewTemplateEngine().Render(TEMPLATES.INIT_CONFIG, NewConfigTemplateData(cfg, table))
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, `root: "src/components"`)
	assert.Contains(t, text, "workers: 3")
	assert.Contains(t, text, "  shared/ui:\n    - Header\n")
	assert.Contains(t, text, "  work:\n    - Dashboard\n    - TodayWork\n")
}

func TestRenderMissingTemplate(t *testing.T) {
	_, err := NewTemplateEngine().Render(TemplateRef{Path: "init/missing.tmpl"}, nil)
	assert.ErrorContains(t, err, "failed to read template file")
}
