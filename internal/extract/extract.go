// Package extract pulls the translatable text out of a script document.
package extract

import (
	"errors"
	"strings"

	"rpy-translator/internal/glossary"
	"rpy-translator/internal/placeholder"
	"rpy-translator/internal/position"
	"rpy-translator/internal/script"
)

// ErrEmptyDocument is returned for a document without any non-blank line.
var ErrEmptyDocument = errors.New("document is empty")

// DefaultSkipPrefixes are statements whose strings are never dialogue.
var DefaultSkipPrefixes = []string{
	"define", "default", "image", "init", "play", "queue", "stop", "voice", "style", "python",
}

// Options controls extraction.
type Options struct {
	// EmphasisMarker delimits emphasis spans. Empty disables emphasis extraction.
	EmphasisMarker string
	// SkipPrefixes lists statement keywords whose lines are left alone.
	SkipPrefixes []string
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		EmphasisMarker: "*",
		SkipPrefixes:   DefaultSkipPrefixes,
	}
}

// Result holds everything produced by one extraction.
type Result struct {
	// Segments is the main segment stream in document order.
	Segments []string
	// Emphasis holds the inner text of every emphasis span, (D1) first.
	Emphasis []string
	// Empty holds the content of every empty or blank string, (C1) first.
	Empty []string
	// Glossary holds the fixed translation of every glossary hit, (GLOSS001) first.
	Glossary []string

	Positions *position.Index
	Mappings  placeholder.Set
	// Lines is the document after protection.
	Lines []string
}

// Extractor runs the protection passes and collects segments.
type Extractor struct {
	opts     Options
	emphasis *placeholder.Emphasis
}

// New creates an extractor.
func New(opts Options) *Extractor {
	return &Extractor{
		opts:     opts,
		emphasis: placeholder.NewEmphasis(opts.EmphasisMarker),
	}
}

// Eligible reports whether a line may be protected and extracted.
func (x *Extractor) Eligible(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if script.IsComment(line) || script.IsTranslateHeader(line) || script.IsOldLine(line) {
		return false
	}
	return !script.HasPrefixWord(line, x.opts.SkipPrefixes)
}

// Extract protects doc and splits it into segments. entries must be sorted
// longest source first; nil means no glossary.
func (x *Extractor) Extract(doc *script.Document, entries []glossary.Entry) (*Result, error) {
	if isBlank(doc) {
		return nil, ErrEmptyDocument
	}

	res := &Result{
		Positions: position.NewIndex(),
		Mappings:  placeholder.NewSet(),
	}

	eligible := make([]bool, doc.Len())
	for i, line := range doc.Lines {
		eligible[i] = x.Eligible(line)
	}

	lines := make([]string, doc.Len())
	for i, line := range doc.Lines {
		if eligible[i] {
			line = placeholder.ProtectReserved(line, res.Mappings.Codes)
		}
		lines[i] = line
	}

	lines = glossary.Protect(lines, func(i int) bool { return eligible[i] }, entries, res.Mappings.Glossary)
	for _, e := range res.Mappings.Glossary.Entries() {
		res.Glossary = append(res.Glossary, e.Translation)
	}

	for i, line := range lines {
		if !eligible[i] {
			continue
		}
		lines[i] = x.extractLine(i, line, doc.Lines[i], res)
	}
	res.Lines = lines
	return res, nil
}

func (x *Extractor) extractLine(n int, line, original string, res *Result) string {
	set := res.Mappings

	line = placeholder.ProtectEscapes(line, set.Empty)
	line, empties := placeholder.ProtectEmptyStrings(line, set.Empty)
	res.Empty = append(res.Empty, empties...)

	line = script.MapSpans(line, func(content string) string {
		return placeholder.ProtectCodes(content, set.Codes)
	})
	line = script.MapSpans(line, func(content string) string {
		out, inner := x.emphasis.Protect(content, set.Emphasis)
		res.Emphasis = append(res.Emphasis, inner...)
		return out
	})

	var kept []script.Span
	for _, s := range script.QuotedSpans(line) {
		content := s.Content(line)
		if strings.TrimSpace(content) == "" || placeholder.ReservedToken.MatchString(content) {
			continue
		}
		kept = append(kept, s)
	}

	if len(kept) == 0 {
		if line != original {
			res.Positions.Protected[n] = line
		}
		return line
	}

	entry := position.Entry{
		Line:   n,
		Count:  len(kept),
		Prefix: line[:kept[0].Start],
		Suffix: line[kept[len(kept)-1].End:],
	}
	for i, s := range kept {
		if i > 0 {
			entry.Separators = append(entry.Separators, line[kept[i-1].End:s.Start])
		}
		res.Segments = append(res.Segments, s.Content(line))
	}
	res.Positions.Add(entry)
	return line
}

func isBlank(doc *script.Document) bool {
	if doc == nil {
		return true
	}
	for _, line := range doc.Lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}
