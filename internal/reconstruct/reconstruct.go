// Package reconstruct puts translated segments back into a script document.
package reconstruct

import (
	"strings"
	"unicode/utf8"

	"rpy-translator/internal/placeholder"
	"rpy-translator/internal/position"
	"rpy-translator/internal/script"
)

// Translations are the edited segment streams, one per category.
type Translations struct {
	Segments []string
	Emphasis []string
	Empty    []string
	Glossary []string
}

// Input is everything needed to rebuild one document.
type Input struct {
	// Lines are the lines of the original, unprotected document.
	Lines        []string
	Positions    *position.Index
	Mappings     placeholder.Set
	Translations Translations
}

// Stats describes how the main segment stream matched the position index.
type Stats struct {
	Expected  int
	Consumed  int
	Shortfall int
	Surplus   int
	// Skipped counts indexed lines beyond the end of the document.
	Skipped int
}

// Reconstruct returns the translated lines. Missing main segments become
// empty strings; missing category translations fall back to the original
// literal.
func Reconstruct(in Input) ([]string, Stats) {
	r := restorer{mappings: in.Mappings, tr: in.Translations}
	stats := Stats{Expected: in.Positions.Total()}

	out := make([]string, len(in.Lines))
	copy(out, in.Lines)
	for line, text := range in.Positions.Protected {
		if line >= 0 && line < len(out) {
			out[line] = r.restore(text)
		}
	}

	next := 0
	take := func() string {
		if next >= len(in.Translations.Segments) {
			stats.Shortfall++
			return ""
		}
		s := in.Translations.Segments[next]
		next++
		stats.Consumed++
		return s
	}

	for _, e := range in.Positions.Entries {
		if e.Line < 0 || e.Line >= len(out) {
			stats.Skipped++
			for i := 0; i < e.Count; i++ {
				take()
			}
			continue
		}
		out[e.Line] = r.restore(rebuild(e, in.Lines[e.Line], take))
	}

	if extra := len(in.Translations.Segments) - next; extra > 0 {
		stats.Surplus = extra
	}
	return out, stats
}

func rebuild(e position.Entry, original string, take func() string) string {
	prefix, seps := e.Prefix, e.Separators
	if e.Legacy {
		prefix, seps = original, nil
		if q := strings.IndexByte(original, script.Quote); q >= 0 {
			prefix = original[:q]
		}
	}

	var b strings.Builder
	b.WriteString(prefix)
	for i := 0; i < e.Count; i++ {
		if i > 0 {
			sep := " "
			if i-1 < len(seps) {
				sep = seps[i-1]
			}
			b.WriteString(sep)
		}
		b.WriteByte(script.Quote)
		b.WriteString(take())
		b.WriteByte(script.Quote)
	}
	b.WriteString(e.Suffix)
	return b.String()
}

type restorer struct {
	mappings placeholder.Set
	tr       Translations
}

// restore undoes protection in the reverse order it was applied: emphasis,
// codes, escapes and empty strings, glossary, and last the text that already
// looked like a placeholder.
func (r restorer) restore(text string) string {
	text = placeholder.RestoreFunc(text, r.mappings.Emphasis, func(_ int, e placeholder.Entry) string {
		tr, ok := pick(r.tr.Emphasis, e.Placeholder)
		if !ok || strings.TrimSpace(tr) == "" {
			return e.Literal
		}
		marker := emphasisMarker(e.Literal)
		return marker + tr + marker
	})
	text = placeholder.RestoreFunc(text, r.mappings.Codes, func(_ int, e placeholder.Entry) string {
		if placeholder.IsReserved(e.Literal) {
			return e.Placeholder
		}
		return e.Literal
	})
	text = placeholder.RestoreFunc(text, r.mappings.Empty, func(_ int, e placeholder.Entry) string {
		if !placeholder.IsContentHolder(e.Placeholder) {
			return e.Literal
		}
		tr, ok := pick(r.tr.Empty, e.Placeholder)
		if !ok {
			return e.Literal
		}
		return string(script.Quote) + tr + string(script.Quote)
	})
	text = placeholder.RestoreFunc(text, r.mappings.Glossary, func(_ int, e placeholder.Entry) string {
		if tr, ok := pick(r.tr.Glossary, e.Placeholder); ok && strings.TrimSpace(tr) != "" {
			return tr
		}
		if e.Translation != "" {
			return e.Translation
		}
		return e.Literal
	})
	return placeholder.RestoreReserved(text, r.mappings.Codes)
}

// pick returns the translation at the placeholder's ordinal.
func pick(list []string, ph string) (string, bool) {
	k := placeholder.Ordinal(ph)
	if k < 1 || k > len(list) {
		return "", false
	}
	return list[k-1], true
}

func emphasisMarker(literal string) string {
	_, size := utf8.DecodeRuneInString(literal)
	return literal[:size]
}
