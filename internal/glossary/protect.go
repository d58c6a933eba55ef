package glossary

import (
	"strings"
	"unicode/utf8"

	"rpy-translator/internal/placeholder"
	"rpy-translator/internal/script"
	"rpy-translator/internal/textutil"
)

// Protect replaces glossary terms inside the quoted strings of eligible lines
// with (GLOSSnnn) placeholders, recording literal and translation in table.
//
// entries must be sorted longest first. For every line and every entry the
// first remaining whole-word occurrence is replaced, so a longer term always
// claims its text before a shorter overlapping one can. The input slice is not
// modified.
func Protect(lines []string, eligible func(i int) bool, entries []Entry, table *placeholder.Table) []string {
	out := append([]string(nil), lines...)
	if len(entries) == 0 {
		return out
	}
	for i, line := range out {
		if eligible != nil && !eligible(i) {
			continue
		}
		for _, e := range entries {
			if e.Source == "" || e.Check() != nil || !strings.Contains(line, e.Source) {
				continue
			}
			line = replaceFirst(line, e, table)
		}
		out[i] = line
	}
	return out
}

func replaceFirst(line string, e Entry, table *placeholder.Table) string {
	for _, span := range script.QuotedSpans(line) {
		content := span.Content(line)
		offset := span.Start + 1
		from := 0
		for from < len(content) {
			idx := strings.Index(content[from:], e.Source)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(e.Source)
			if textutil.IsWholeWord(content, start, end) {
				ph := placeholder.GlossaryHolder(table.Len() + 1)
				if err := table.Add(ph, e.Source, e.Target); err != nil {
					return line
				}
				return line[:offset+start] + ph + line[offset+end:]
			}
			_, size := utf8.DecodeRuneInString(content[start:])
			from = start + size
		}
	}
	return line
}
