package placeholder

import (
	"fmt"
	"regexp"
	"strings"

	"rpy-translator/internal/script"
)

// codePatterns are tried in order on every string. Earlier patterns win:
// once a span is replaced by a placeholder later patterns cannot see it.
var codePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{\{|\[\[`),         // escaped brace / bracket
	regexp.MustCompile(`%%`),                // literal percent
	regexp.MustCompile(`\{[^{}]*\}`),        // text tags: {b}, {/i}, {color=#f00}
	regexp.MustCompile(`\[[^\[\]]*\]`),      // interpolation: [name], [player.hp]
	regexp.MustCompile(`%\([A-Za-z_][A-Za-z0-9_]*\)[-#0+]*[0-9]*(?:\.[0-9]+)?[sdifrxXeEgGc]`), // %(name)s
	regexp.MustCompile(`%[-#0+]*[0-9]*(?:\.[0-9]+)?[sdifrxXc]`), // %s, %d, %2.1f
	regexp.MustCompile(`\\[nt\\]`),          // \n, \t, \\
	regexp.MustCompile(`—|–|…|\.\.\.|--`),  // dashes and ellipses
}

const escapedQuote = `\"`

// ProtectCodes replaces markup spans in text with (NN) placeholders. Literals
// already present in codes reuse their placeholder; new ones are appended.
func ProtectCodes(text string, codes *Table) string {
	for _, re := range codePatterns {
		text = re.ReplaceAllStringFunc(text, codes.codeFor)
	}
	return text
}

// ProtectReserved replaces text that already has the shape of a placeholder
// with a code placeholder. Such entries are restored by RestoreReserved once
// every other placeholder is gone.
func ProtectReserved(text string, codes *Table) string {
	return reservedShape.ReplaceAllStringFunc(text, codes.codeFor)
}

// RestoreReserved puts back the literals protected by ProtectReserved in a
// single pass, so a restored literal is never read as a placeholder again.
func RestoreReserved(text string, codes *Table) string {
	if codes == nil {
		return text
	}
	return codeShape.ReplaceAllStringFunc(text, func(ph string) string {
		if e, ok := codes.Get(ph); ok && IsReserved(e.Literal) {
			return e.Literal
		}
		return ph
	})
}

func (t *Table) codeFor(literal string) string {
	if ph, ok := t.Lookup(literal); ok {
		return ph
	}
	ph := CodeHolder(t.Len() + 1)
	t.mustAdd(ph, literal, "")
	return ph
}

// ProtectEscapes replaces escaped quotes with one shared (ESCn) placeholder.
// An escaped backslash is skipped as a pair, so in `"C:\\"` the closing quote
// stays a quote.
func ProtectEscapes(text string, empty *Table) string {
	if !strings.Contains(text, escapedQuote) {
		return text
	}
	var (
		out strings.Builder
		ph  string
	)
	for i := 0; i < len(text); i++ {
		if text[i] != '\\' || i+1 == len(text) {
			out.WriteByte(text[i])
			continue
		}
		if text[i+1] != script.Quote {
			out.WriteString(text[i : i+2])
			i++
			continue
		}
		if ph == "" {
			var ok bool
			if ph, ok = empty.Lookup(escapedQuote); !ok {
				ph = EscapeHolder(empty.count(escapeHolder) + 1)
				empty.mustAdd(ph, escapedQuote, "")
			}
		}
		out.WriteString(ph)
		i++
	}
	return out.String()
}

// ProtectEmptyStrings replaces every quoted string of line that is empty or
// whitespace only, quotes included, with its own (Cn) placeholder. It returns
// the new line and the string contents in the order they were found.
func ProtectEmptyStrings(line string, empty *Table) (string, []string) {
	spans := script.QuotedSpans(line)
	var (
		out      strings.Builder
		contents []string
		last     int
	)
	for _, s := range spans {
		content := s.Content(line)
		if strings.TrimSpace(content) != "" {
			continue
		}
		ph := ContentHolder(empty.count(contentHolder) + 1)
		empty.mustAdd(ph, line[s.Start:s.End], "")
		out.WriteString(line[last:s.Start])
		out.WriteString(ph)
		last = s.End
		contents = append(contents, content)
	}
	if contents == nil {
		return line, nil
	}
	out.WriteString(line[last:])
	return out.String(), contents
}

// Emphasis protects spans wrapped in a single-character marker, such as *word*.
type Emphasis struct {
	marker string
	re     *regexp.Regexp
}

// NewEmphasis builds an emphasis protector. An empty marker disables it.
func NewEmphasis(marker string) *Emphasis {
	if marker == "" {
		return &Emphasis{}
	}
	q := regexp.QuoteMeta(marker)
	return &Emphasis{
		marker: marker,
		re:     regexp.MustCompile(fmt.Sprintf(`%s([^%s\s](?:[^%s]*[^%s\s])?)%s`, q, q, q, q, q)),
	}
}

// Protect replaces every emphasis span of text with a (Dk) placeholder and
// returns the inner texts, in order, as separately translatable segments.
func (e *Emphasis) Protect(text string, table *Table) (string, []string) {
	if e.re == nil {
		return text, nil
	}
	var inner []string
	out := e.re.ReplaceAllStringFunc(text, func(literal string) string {
		ph := EmphasisHolder(table.Len() + 1)
		table.mustAdd(ph, literal, "")
		inner = append(inner, literal[len(e.marker):len(literal)-len(e.marker)])
		return ph
	})
	return out, inner
}

// RestoreFunc replaces every placeholder of t found in text with value(i, e),
// where i is the entry's insertion index. Entries are visited newest first so
// that a literal restored from a later entry cannot be mistaken for an
// earlier placeholder.
func RestoreFunc(text string, t *Table, value func(i int, e Entry) string) string {
	if t == nil {
		return text
	}
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		if strings.Contains(text, e.Placeholder) {
			text = strings.ReplaceAll(text, e.Placeholder, value(i, e))
		}
	}
	return text
}
