package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"anchor parent", "/home/u/MyGame/game/script.rpy", "MyGame"},
		{"nearest anchor", "/games/game/Other/game/tl/french/script.rpy", "Other"},
		{"no anchor", "/tmp/chapter1.rpy", "chapter1"},
		{"unsafe characters", "/tmp/Who?/game/a.rpy", "Who"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectName(filepath.FromSlash(tt.path), "game"))
		})
	}
}

func TestSanitizeBase(t *testing.T) {
	assert.Equal(t, "scriptv2", SanitizeBase(`script<v2>`))
	assert.Equal(t, "a b", SanitizeBase(" a b. "))
	assert.Equal(t, "tab", SanitizeBase("t\ta\x00b"))
	assert.Equal(t, "untitled", SanitizeBase(`..?*`))
}

func TestPaths(t *testing.T) {
	root := t.TempDir()
	p := NewLayout(root, "game").For(filepath.Join("/x", "Demo", "game", "script.rpy"))

	assert.Equal(t, "Demo", p.Project)
	assert.Equal(t, "script", p.Base)
	assert.Equal(t, filepath.Join(root, "extracted", "Demo", "script.txt"), p.Extracted(Main))
	assert.Equal(t, filepath.Join(root, "extracted", "Demo", "script_emphasis.txt"), p.Extracted(Emphasis))
	assert.Equal(t, filepath.Join(root, "mappings", "Demo", "script_codes.map"), p.Mapping(Main))
	assert.Equal(t, filepath.Join(root, "mappings", "Demo", "script_glossary.map"), p.Mapping(Glossary))
	assert.Equal(t, filepath.Join(root, "mappings", "Demo", "script_positions.json"), p.Positions())
	assert.Equal(t, filepath.Join(root, "warnings", "Demo", "script_warnings.txt"), p.Warnings())
	assert.Len(t, p.Ephemeral(), 5)

	assert.Equal(t, p.Extracted(Empty), p.Edited(Empty))
	require.NoError(t, WriteLines(p.Translated(Empty), []string{""}))
	assert.Equal(t, p.Translated(Empty), p.Edited(Empty))
}

func TestWriteAndReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "a.txt")

	require.NoError(t, WriteLines(path, []string{"one", "", "  three"}))
	got, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "", "  three"}, got)

	require.NoError(t, WriteLines(path, nil))
	got, err = ReadLines(path)
	require.NoError(t, err)
	assert.Empty(t, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestReadLines_BOMAndCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFBonjour\r\nSalut\r\n"), 0o644))

	got, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bonjour", "Salut"}, got)
}

func TestReadGlossaryLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.txt")
	require.NoError(t, WriteLines(path, []string{"# glossary translations", "Ilina", "bonjour"}))

	got, err := ReadGlossaryLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ilina", "bonjour"}, got)
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	require.NoError(t, WriteFile(a, []byte("x")))

	assert.NoError(t, Remove(a, filepath.Join(dir, "missing")))
	assert.False(t, Exists(a))
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		expected int
		lines    []string
		want     Count
	}{
		{"match", Main, 2, []string{"a", "b"}, Count{Kind: Main, Expected: 2, Actual: 2}},
		{"missing", Main, 3, []string{"a"}, Count{Kind: Main, Expected: 3, Actual: 1, Missing: 2}},
		{"extra", Emphasis, 1, []string{"a", "b"}, Count{Kind: Emphasis, Expected: 1, Actual: 2, Extra: 1}},
		{"empty kind tolerates missing", Empty, 3, []string{""}, Count{Kind: Empty, Expected: 3, Actual: 1}},
		{"empty kind tolerates blank surplus", Empty, 1, []string{"", " "}, Count{Kind: Empty, Expected: 1, Actual: 2}},
		{"empty kind counts text surplus", Empty, 1, []string{"", "x"}, Count{Kind: Empty, Expected: 1, Actual: 2, Extra: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.kind, tt.expected, tt.lines)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Missing == 0 && tt.want.Extra == 0, got.OK())
		})
	}
}

func TestValidation(t *testing.T) {
	v := Validation{Counts: []Count{
		{Kind: Main, Missing: 2},
		{Kind: Glossary, Extra: 1},
		{Kind: Empty},
	}}
	assert.False(t, v.OK())
	assert.Equal(t, 2, v.Missing())
	assert.Equal(t, 1, v.Extra())
	assert.True(t, Validation{}.OK())
}
