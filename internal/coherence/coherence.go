// Package coherence audits a translated script for structural differences
// between each untranslated reference line and its translation.
package coherence

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"rpy-translator/internal/script"
)

// IssueType names a kind of structural problem.
type IssueType string

const (
	QuoteCountMismatch   IssueType = "QUOTE_COUNT_MISMATCH"
	TagMismatch          IssueType = "TAG_MISMATCH"
	VariableMismatch     IssueType = "VARIABLE_MISMATCH"
	PlaceholderMismatch  IssueType = "PLACEHOLDER_MISMATCH"
	MalformedPlaceholder IssueType = "MALFORMED_PLACEHOLDER"
	OrphanedTag          IssueType = "ORPHANED_TAG"
	SpecialCodeMismatch  IssueType = "SPECIAL_CODE_MISMATCH"
	MissingOld           IssueType = "MISSING_OLD"
)

// IssueTypes lists every type in report order.
var IssueTypes = []IssueType{
	QuoteCountMismatch,
	TagMismatch,
	VariableMismatch,
	PlaceholderMismatch,
	MalformedPlaceholder,
	OrphanedTag,
	SpecialCodeMismatch,
	MissingOld,
}

// Issue is one finding. Line numbers are 1-based; OldLine is 0 when there
// is no reference line.
type Issue struct {
	Type    IssueType
	Line    int
	OldLine int
	Detail  string
	Old     string
	New     string
}

var (
	tagPattern         = regexp.MustCompile(`\{[^{}]*\}`)
	variablePattern    = regexp.MustCompile(`\[[^\[\]]*\]`)
	placeholderPattern = regexp.MustCompile(`\(\d+\)`)
	malformedPattern   = regexp.MustCompile(`\(\d+(?:[^\d)]|$)`)
	openTagPattern     = regexp.MustCompile(`\{[^{}]*$`)
	closeTagPattern    = regexp.MustCompile(`^[^{}]*\}`)
	specialCodePattern = regexp.MustCompile(`\\n|--|%[^%\s]+%`)

	// codePattern covers everything counted as code when measuring density.
	codePattern = regexp.MustCompile(`\{[^{}]*\}|\[[^\[\]]*\]|\(\d+\)|\\n|--|%[^%\s]+%|%\([A-Za-z_]\w*\)[sdif]|%[sdif]`)
)

func tags(s string) []string {
	return tagPattern.FindAllString(strings.ReplaceAll(s, "{{", ""), -1)
}

func variables(s string) []string {
	return variablePattern.FindAllString(strings.ReplaceAll(s, "[[", ""), -1)
}

func placeholders(s string) []string {
	return placeholderPattern.FindAllString(s, -1)
}

func specialCodes(s string) []string {
	return specialCodePattern.FindAllString(s, -1)
}

// contents returns the quoted strings of a line; a leading comment marker
// is ignored so commented reference lines can be read.
func contents(line string) []string {
	body := strings.TrimLeft(line, " \t")
	body = strings.TrimPrefix(body, script.CommentMarker)
	spans := script.QuotedSpans(body)
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		out = append(out, s.Content(body))
	}
	return out
}

// codeDensity is the share of runes of s that belong to markup.
func codeDensity(s string) float64 {
	total := utf8.RuneCountInString(s)
	if total == 0 {
		return 0
	}
	code := 0
	for _, m := range codePattern.FindAllString(s, -1) {
		code += utf8.RuneCountInString(m)
	}
	return float64(code) / float64(total)
}

func equalLists(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// malformed returns the first unclosed placeholder of translated that the
// reference text does not contain as well.
func malformed(old, translated string) string {
	for _, m := range malformedPattern.FindAllString(translated, -1) {
		if !strings.Contains(old, m) {
			return m
		}
	}
	return ""
}
