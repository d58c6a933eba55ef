package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"WORKSPACE_DIR", "WORKER_COUNT", "CODE_DENSITY_MAX", "SKIP_PREFIXES", "GLOSSARY_BACKEND"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "rpy-workspace", cfg.WorkspaceDir)
	assert.Equal(t, "game", cfg.AnchorDir)
	assert.Equal(t, 1, cfg.WorkerCount)
	assert.InDelta(t, 0.4, cfg.CodeDensityMax, 1e-9)
	assert.Equal(t, GlossaryNone, cfg.GlossaryBackend)
	assert.Contains(t, cfg.SkipPrefixes, "define")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WORKSPACE_DIR", "/tmp/ws")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("CODE_DENSITY_MAX", "0.6")
	t.Setenv("SHORT_LINE_MAX", "oops")
	t.Setenv("EMPHASIS_MARKER", "")
	t.Setenv("SKIP_PREFIXES", " play , ,voice")
	t.Setenv("GLOSSARY_BACKEND", "Postgres")

	cfg := Load()

	assert.Equal(t, "/tmp/ws", cfg.WorkspaceDir)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.InDelta(t, 0.6, cfg.CodeDensityMax, 1e-9)
	assert.Equal(t, 5, cfg.ShortLineMax)
	assert.Empty(t, cfg.EmphasisMarker)
	assert.Equal(t, []string{"play", "voice"}, cfg.SkipPrefixes)
	assert.Equal(t, GlossaryPostgres, cfg.GlossaryBackend)
}
