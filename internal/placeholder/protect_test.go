package placeholder

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLiterals(text string, t *Table) string {
	return RestoreFunc(text, t, func(_ int, e Entry) string { return e.Literal })
}

func TestProtectCodes(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     string
		literals []string
	}{
		{
			name:     "tags and variables",
			text:     "Click {b}here{/b}, [name]!",
			want:     "Click (01)here(02), (03)!",
			literals: []string{"{b}", "{/b}", "[name]"},
		},
		{
			name:     "repeated literal reuses placeholder",
			text:     "{i}a{/i} {i}b{/i}",
			want:     "(01)a(02) (01)b(02)",
			literals: []string{"{i}", "{/i}"},
		},
		{
			name:     "percent variables and escapes",
			text:     `100%% of %(count)d items\nnext %s`,
			want:     "100(01) of (02) items(04)next (03)",
			literals: []string{"%%", "%(count)d", "%s", `\n`},
		},
		{
			name:     "dashes and ellipses",
			text:     "Wait... no—stop -- now…",
			want:     "Wait(01) no(02)stop (03) now(04)",
			literals: []string{"...", "—", "--", "…"},
		},
		{
			name:     "escaped brackets before tags",
			text:     "{{not a tag} [[nope]",
			want:     "(01)not a tag} (02)nope]",
			literals: []string{"{{", "[["},
		},
		{
			name: "plain text untouched",
			text: "Hello there",
			want: "Hello there",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes := NewTable()
			got := ProtectCodes(tt.text, codes)
			assert.Equal(t, tt.want, got)

			var literals []string
			for _, e := range codes.Entries() {
				literals = append(literals, e.Literal)
			}
			assert.Equal(t, tt.literals, literals)
			assert.Equal(t, tt.text, restoreLiterals(got, codes))
		})
	}
}

func TestProtectCodesAcrossCalls(t *testing.T) {
	codes := NewTable()
	first := ProtectCodes("{b}Hi{/b}", codes)
	second := ProtectCodes("[name] {b}", codes)

	assert.Equal(t, "(01)Hi(02)", first)
	assert.Equal(t, "(03) (01)", second)
	assert.Equal(t, 3, codes.Len())
}

func TestPlaceholderBijection(t *testing.T) {
	codes := NewTable()
	var text string
	for i := 0; i < 120; i++ {
		text += fmt.Sprintf("[v%d] ", i)
	}
	protected := ProtectCodes(text, codes)
	require.Equal(t, 120, codes.Len())

	seen := make(map[string]string)
	for _, e := range codes.Entries() {
		prev, dup := seen[e.Placeholder]
		require.False(t, dup, "placeholder %s bound to %q and %q", e.Placeholder, prev, e.Literal)
		seen[e.Placeholder] = e.Literal
		assert.Equal(t, e.Literal, restoreLiterals(e.Placeholder, codes))
	}
	assert.Equal(t, text, restoreLiterals(protected, codes))
}

func TestProtectEscapes(t *testing.T) {
	empty := NewTable()
	got := ProtectEscapes(`Say \"hi\"`, empty)
	assert.Equal(t, "Say (ESC1)hi(ESC1)", got)
	assert.Equal(t, 1, empty.Len())

	again := ProtectEscapes(`\"`, empty)
	assert.Equal(t, "(ESC1)", again)
	assert.Equal(t, 1, empty.Len())

	assert.Equal(t, "plain", ProtectEscapes("plain", empty))
}

func TestProtectEscapesSkipsEscapedBackslash(t *testing.T) {
	empty := NewTable()
	line := `e "Path C:\\" (x)`
	assert.Equal(t, line, ProtectEscapes(line, empty))
	assert.Equal(t, 0, empty.Len())

	assert.Equal(t, `a\\(ESC1)b`, ProtectEscapes(`a\\\"b`, empty))
	assert.Equal(t, 1, empty.Len())
}

func TestProtectReserved(t *testing.T) {
	codes := NewTable()
	text := "(02) then (01), (D1) (C2) (ESC3) (GLOSS001) (x) (1)"

	got := ProtectReserved(text, codes)
	assert.Equal(t, "(01) then (02), (03) (04) (05) (06) (x) (1)", got)

	tagged := ProtectCodes(got+" {b}", codes)
	assert.Equal(t, got+" (07)", tagged)

	assert.Equal(t, text+" (07)", RestoreReserved(tagged, codes))
	e, ok := codes.Get("(07)")
	require.True(t, ok)
	assert.False(t, IsReserved(e.Literal))
}

func TestIsReserved(t *testing.T) {
	for _, s := range []string{"(01)", "(123)", "(D4)", "(C1)", "(ESC2)", "(GLOSS010)"} {
		assert.True(t, IsReserved(s), s)
	}
	for _, s := range []string{"(1)", "{b}", "x (01)", "(01) x", "(Dx)"} {
		assert.False(t, IsReserved(s), s)
	}
}

func TestProtectEmptyStrings(t *testing.T) {
	empty := NewTable()
	line, contents := ProtectEmptyStrings(`e "" "Hello" "  "`, empty)
	assert.Equal(t, `e (C1) "Hello" (C2)`, line)
	assert.Equal(t, []string{"", "  "}, contents)

	entries := empty.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, `""`, entries[0].Literal)
	assert.Equal(t, `"  "`, entries[1].Literal)

	line, contents = ProtectEmptyStrings(`e "Hello" "World"`, empty)
	assert.Equal(t, `e "Hello" "World"`, line)
	assert.Nil(t, contents)
}

func TestEmptyAndEscapeNumbering(t *testing.T) {
	empty := NewTable()
	ProtectEscapes(`\"`, empty)
	line, _ := ProtectEmptyStrings(`e ""`, empty)
	assert.Equal(t, "e (C1)", line)
}

func TestEmphasis(t *testing.T) {
	table := NewTable()
	em := NewEmphasis("*")
	got, inner := em.Protect("I *really* mean *it (01)*", table)
	assert.Equal(t, "I (D1) mean (D2)", got)
	assert.Equal(t, []string{"really", "it (01)"}, inner)
	assert.Equal(t, "I *really* mean *it (01)*", restoreLiterals(got, table))

	got, inner = em.Protect("2 * 3 * 4", table)
	assert.Equal(t, "2 * 3 * 4", got)
	assert.Nil(t, inner)

	disabled := NewEmphasis("")
	got, inner = disabled.Protect("*x*", table)
	assert.Equal(t, "*x*", got)
	assert.Nil(t, inner)
}

func TestRestoreFuncNewestFirst(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Add("(D1)", "*a*", ""))
	require.NoError(t, table.Add("(D2)", "*b*", ""))

	got := RestoreFunc("(D2) (D1)", table, func(i int, e Entry) string {
		return fmt.Sprintf("<%d:%s>", i, e.Literal)
	})
	assert.Equal(t, "<1:*b*> <0:*a*>", got)
}

func TestTableRejectsDuplicatePlaceholder(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Add("(01)", "{b}", ""))
	assert.Error(t, table.Add("(01)", "{i}", ""))
}

func TestOrdinal(t *testing.T) {
	assert.Equal(t, 7, Ordinal("(07)"))
	assert.Equal(t, 3, Ordinal("(D3)"))
	assert.Equal(t, 12, Ordinal("(C12)"))
	assert.Equal(t, 1, Ordinal("(ESC1)"))
	assert.Equal(t, 42, Ordinal("(GLOSS042)"))
	assert.Equal(t, 0, Ordinal("(x)"))
}

func TestMappingRoundTrip(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Add("(C1)", `"  "`, ""))
	require.NoError(t, table.Add("(C2)", `""`, ""))

	var buf bytes.Buffer
	require.NoError(t, WriteMapping(&buf, table, false))
	assert.Equal(t, "(C1) => \"  \"\n(C2) => \"\"\n", buf.String())

	read, err := ReadMapping(&buf, false)
	require.NoError(t, err)
	assert.Equal(t, table.Entries(), read.Entries())
}

func TestGlossaryMapping(t *testing.T) {
	read, err := ReadMapping(bytes.NewBufferString("(GLOSS001) => good morning => bonjour\r\n\n"), true)
	require.NoError(t, err)
	e, ok := read.Get("(GLOSS001)")
	require.True(t, ok)
	assert.Equal(t, "good morning", e.Literal)
	assert.Equal(t, "bonjour", e.Translation)

	_, err = ReadMapping(bytes.NewBufferString("(01) {b}\n"), false)
	assert.Error(t, err)
}

func TestWriteMappingRejectsUnreadableFields(t *testing.T) {
	glossary := NewTable()
	require.NoError(t, glossary.Add("(GLOSS001)", "go => stop", "x"))
	assert.Error(t, WriteMapping(&bytes.Buffer{}, glossary, true))

	broken := NewTable()
	require.NoError(t, broken.Add("(GLOSS001)", "term", "line\nbreak"))
	assert.Error(t, WriteMapping(&bytes.Buffer{}, broken, true))

	codes := NewTable()
	require.NoError(t, codes.Add("(01)", "{a => b}", ""))
	var buf bytes.Buffer
	require.NoError(t, WriteMapping(&buf, codes, false))
	read, err := ReadMapping(&buf, false)
	require.NoError(t, err)
	assert.Equal(t, codes.Entries(), read.Entries())
}
