package coherence

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"rpy-translator/internal/script"
)

// Options tunes the missing-reference heuristics.
type Options struct {
	// ShortLineMax is the longest content, in runes, that may lack a reference.
	ShortLineMax int
	// CodeDensityMax is the markup share at which a line may lack a reference.
	CodeDensityMax float64
	// ContextLookback is how many preceding non-blank lines are searched for
	// a strings block, menu or translate header.
	ContextLookback int
	// SkipPrefixes lists statement keywords that are never translations.
	SkipPrefixes []string
}

// DefaultOptions returns the stock thresholds.
func DefaultOptions() Options {
	return Options{
		ShortLineMax:    5,
		CodeDensityMax:  0.4,
		ContextLookback: 3,
	}
}

// Checker runs the coherence audit.
type Checker struct {
	opts Options
}

// New creates a checker.
func New(opts Options) *Checker {
	return &Checker{opts: opts}
}

type pendingOld struct {
	line int
	text string
}

// Check walks the lines of a translated document and pairs every reference
// line with the translation that follows it.
func (c *Checker) Check(lines []string) *Report {
	report := &Report{}
	var (
		pending    *pendingOld
		seenHeader bool
	)

	for i, line := range lines {
		switch {
		case script.IsTranslateHeader(line):
			seenHeader = true
			pending = nil
		case script.IsReferenceLine(line):
			pending = &pendingOld{line: i, text: line}
		case script.IsTranslatedLine(line) && !script.HasPrefixWord(line, c.opts.SkipPrefixes):
			if pending != nil {
				report.Issues = append(report.Issues, c.ComparePair(pending.text, line, pending.line+1, i+1)...)
				pending = nil
				continue
			}
			if c.missingOld(lines, i, seenHeader) {
				report.Issues = append(report.Issues, Issue{
					Type:   MissingOld,
					Line:   i + 1,
					Detail: "translation has no reference line above it",
					New:    line,
				})
			}
		}
	}
	return report
}

// missingOld applies the exculpatory rules in order; the first that
// matches clears the line.
func (c *Checker) missingOld(lines []string, i int, seenHeader bool) bool {
	if !seenHeader {
		return false
	}
	if c.nearContext(lines, i) {
		return false
	}
	content := strings.TrimSpace(strings.Join(contents(lines[i]), " "))
	if utf8.RuneCountInString(content) <= c.opts.ShortLineMax {
		return false
	}
	if codeDensity(content) >= c.opts.CodeDensityMax {
		return false
	}
	return true
}

func (c *Checker) nearContext(lines []string, i int) bool {
	seen := 0
	for j := i - 1; j >= 0 && seen < c.opts.ContextLookback; j-- {
		prev := lines[j]
		if strings.TrimSpace(prev) == "" {
			continue
		}
		seen++
		if script.IsStringsHeader(prev) || script.IsMenuLine(prev) || script.IsTranslateHeader(prev) {
			return true
		}
	}
	return false
}

// ComparePair checks a reference line against its translation. oldLine
// and newLine are the 1-based line numbers used in the issues.
func (c *Checker) ComparePair(old, translated string, oldLine, newLine int) []Issue {
	var issues []Issue
	add := func(t IssueType, detail string) {
		issues = append(issues, Issue{Type: t, Line: newLine, OldLine: oldLine, Detail: detail, Old: old, New: translated})
	}

	oldParts, newParts := contents(old), contents(translated)
	if len(oldParts) != len(newParts) {
		add(QuoteCountMismatch, fmt.Sprintf("old has %d quoted strings, new has %d", len(oldParts), len(newParts)))
	}

	n := min(len(oldParts), len(newParts))
	for k := 0; k < n; k++ {
		o, t := oldParts[k], newParts[k]

		if a, b := tags(o), tags(t); !equalLists(a, b) {
			add(TagMismatch, fmt.Sprintf("tags %v became %v", a, b))
		}
		if a, b := variables(o), variables(t); !equalLists(a, b) {
			add(VariableMismatch, fmt.Sprintf("variables %v became %v", a, b))
		}
		if a, b := placeholders(o), placeholders(t); !equalLists(a, b) {
			add(PlaceholderMismatch, fmt.Sprintf("placeholders %v became %v", a, b))
		}
		if m := malformed(o, t); m != "" {
			add(MalformedPlaceholder, fmt.Sprintf("unclosed placeholder %q", m))
		}
		stripped := strings.ReplaceAll(t, "{{", "")
		if openTagPattern.MatchString(stripped) || closeTagPattern.MatchString(stripped) {
			add(OrphanedTag, "tag is cut at the start or end of the text")
		}
		if a, b := specialCodes(o), specialCodes(t); !equalLists(a, b) {
			add(SpecialCodeMismatch, fmt.Sprintf("special codes %v became %v", a, b))
		}
	}
	return issues
}
