package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpy-translator/internal/glossary"
	"rpy-translator/internal/script"
)

var sample = []string{
	`label start:`,
	`    e "Hello, {b}world{/b}!" (whisper)`,
	`    # e "Commented"`,
	`    old "Start"`,
	`    new "Commencer"`,
	`    "Narration with *emphasis* here."`,
	`    e ""`,
	`    define e = Character("Eileen")`,
	`    e "Say \"hi\"" "second"`,
}

func TestExtract_Segments(t *testing.T) {
	res, err := New(DefaultOptions()).Extract(script.FromLines(sample), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`Hello, (01)world(02)!`,
		`Commencer`,
		`Narration with (D1) here.`,
		`Say (ESC1)hi(ESC1)`,
		`second`,
	}, res.Segments)
	assert.Equal(t, []string{"emphasis"}, res.Emphasis)
	assert.Equal(t, []string{""}, res.Empty)
	assert.Empty(t, res.Glossary)
	assert.Equal(t, len(res.Segments), res.Positions.Total())
}

func TestExtract_PositionIndex(t *testing.T) {
	res, err := New(DefaultOptions()).Extract(script.FromLines(sample), nil)
	require.NoError(t, err)

	e, ok := res.Positions.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 1, e.Count)
	assert.Equal(t, "    e ", e.Prefix)
	assert.Equal(t, " (whisper)", e.Suffix)

	e, ok = res.Positions.Lookup(8)
	require.True(t, ok)
	assert.Equal(t, 2, e.Count)
	assert.Equal(t, []string{" "}, e.Separators)

	for _, line := range []int{0, 2, 3, 6, 7} {
		_, ok := res.Positions.Lookup(line)
		assert.False(t, ok, "line %d", line)
	}
	assert.Equal(t, `    e (C1)`, res.Positions.Protected[6])
}

func TestExtract_NeverTouchesCommentsOrOldLines(t *testing.T) {
	res, err := New(DefaultOptions()).Extract(script.FromLines(sample), []glossary.Entry{{Source: "Start", Target: "Debut"}})
	require.NoError(t, err)

	for _, seg := range res.Segments {
		assert.NotContains(t, seg, "Commented")
		assert.NotContains(t, seg, "Start")
	}
	assert.Equal(t, sample[2], res.Lines[2])
	assert.Equal(t, sample[3], res.Lines[3])
	assert.Zero(t, res.Mappings.Glossary.Len())
}

func TestExtract_CodesMapping(t *testing.T) {
	res, err := New(DefaultOptions()).Extract(script.FromLines(sample), nil)
	require.NoError(t, err)

	codes := res.Mappings.Codes.Entries()
	require.Len(t, codes, 2)
	assert.Equal(t, "{b}", codes[0].Literal)
	assert.Equal(t, "{/b}", codes[1].Literal)

	empty := res.Mappings.Empty.Entries()
	require.Len(t, empty, 2)
	assert.Equal(t, `(C1)`, empty[0].Placeholder)
	assert.Equal(t, `""`, empty[0].Literal)
	assert.Equal(t, `(ESC1)`, empty[1].Placeholder)
}

func TestExtract_GlossaryPrecedence(t *testing.T) {
	doc := script.FromLines([]string{`    e "He said good morning."`})
	entries := glossary.SortLongestFirst([]glossary.Entry{
		{Source: "morning", Target: "Y"},
		{Source: "good morning", Target: "X"},
	})

	res, err := New(DefaultOptions()).Extract(doc, entries)
	require.NoError(t, err)

	assert.Equal(t, []string{"He said (GLOSS001)."}, res.Segments)
	assert.Equal(t, []string{"X"}, res.Glossary)
	g, ok := res.Mappings.Glossary.Get("(GLOSS001)")
	require.True(t, ok)
	assert.Equal(t, "good morning", g.Literal)
}

func TestExtract_PlaceholderShapedText(t *testing.T) {
	doc := script.FromLines([]string{`    e "Room (GLOSS001) is cold"`})
	entries := []glossary.Entry{{Source: "cold", Target: "froid"}}

	res, err := New(DefaultOptions()).Extract(doc, entries)
	require.NoError(t, err)

	assert.Equal(t, []string{"Room (01) is (GLOSS001)"}, res.Segments)
	code, ok := res.Mappings.Codes.Get("(01)")
	require.True(t, ok)
	assert.Equal(t, "(GLOSS001)", code.Literal)
	g, ok := res.Mappings.Glossary.Get("(GLOSS001)")
	require.True(t, ok)
	assert.Equal(t, "cold", g.Literal)
}

func TestExtract_EscapedBackslashBeforeQuote(t *testing.T) {
	doc := script.FromLines([]string{`    e "Path C:\\" (x)`})

	res, err := New(DefaultOptions()).Extract(doc, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Path C:(01)"}, res.Segments)
	assert.Empty(t, res.Positions.Protected)
	e, ok := res.Positions.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, " (x)", e.Suffix)
}

func TestExtract_EmphasisDisabled(t *testing.T) {
	res, err := New(Options{}).Extract(script.FromLines([]string{`e "a *b* c"`}), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a *b* c"}, res.Segments)
	assert.Empty(t, res.Emphasis)
}

func TestExtract_EmptyDocument(t *testing.T) {
	x := New(DefaultOptions())

	_, err := x.Extract(script.FromLines(nil), nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = x.Extract(script.FromLines([]string{"", "   "}), nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestExtract_NoDialogue(t *testing.T) {
	res, err := New(DefaultOptions()).Extract(script.FromLines([]string{"label start:", "    return"}), nil)
	require.NoError(t, err)

	assert.Empty(t, res.Segments)
	assert.Zero(t, res.Positions.Len())
}

func TestEligible(t *testing.T) {
	x := New(DefaultOptions())
	tests := []struct {
		line string
		want bool
	}{
		{`    e "Hi"`, true},
		{`    new "Hi"`, true},
		{`    old "Hi"`, false},
		{`# e "Hi"`, false},
		{`translate french start_1234:`, false},
		{`    play music "theme.ogg"`, false},
		{`    default name = "Sylvie"`, false},
		{`    defaulted "Hi"`, true},
		{``, false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.line), func(t *testing.T) {
			assert.Equal(t, tt.want, x.Eligible(tt.line))
		})
	}
}
