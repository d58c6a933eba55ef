// Package placeholder assigns reversible placeholders to spans of text that
// must survive translation untouched, and restores them afterwards.
package placeholder

import (
	"fmt"
	"regexp"
	"strconv"
)

// Entry is one placeholder and the literal it stands for.
type Entry struct {
	Placeholder string
	Literal     string
	// Translation is only used by glossary tables.
	Translation string
}

// Table is an append-only mapping between placeholders and literals. Entries
// keep their insertion order and a placeholder can never be bound twice.
type Table struct {
	entries   []Entry
	byHolder  map[string]int
	byLiteral map[string]int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		byHolder:  make(map[string]int),
		byLiteral: make(map[string]int),
	}
}

// Add binds placeholder to literal. It fails if the placeholder is already bound.
func (t *Table) Add(placeholder, literal, translation string) error {
	if _, exists := t.byHolder[placeholder]; exists {
		return fmt.Errorf("placeholder %s already bound", placeholder)
	}
	t.byHolder[placeholder] = len(t.entries)
	if _, seen := t.byLiteral[literal]; !seen {
		t.byLiteral[literal] = len(t.entries)
	}
	t.entries = append(t.entries, Entry{Placeholder: placeholder, Literal: literal, Translation: translation})
	return nil
}

// mustAdd is used by allocators that generate fresh placeholders themselves.
func (t *Table) mustAdd(placeholder, literal, translation string) {
	if err := t.Add(placeholder, literal, translation); err != nil {
		panic(err)
	}
}

// Lookup returns the first placeholder bound to literal.
func (t *Table) Lookup(literal string) (string, bool) {
	idx, ok := t.byLiteral[literal]
	if !ok {
		return "", false
	}
	return t.entries[idx].Placeholder, true
}

// Get returns the entry bound to placeholder.
func (t *Table) Get(placeholder string) (Entry, bool) {
	idx, ok := t.byHolder[placeholder]
	if !ok {
		return Entry{}, false
	}
	return t.entries[idx], true
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the entries in insertion order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// count returns how many placeholders match re.
func (t *Table) count(re *regexp.Regexp) int {
	n := 0
	for _, e := range t.entries {
		if re.MatchString(e.Placeholder) {
			n++
		}
	}
	return n
}

// Set groups the four tables produced by one extraction run.
type Set struct {
	Codes    *Table
	Emphasis *Table
	Empty    *Table
	Glossary *Table
}

// NewSet creates a set of empty tables.
func NewSet() Set {
	return Set{
		Codes:    NewTable(),
		Emphasis: NewTable(),
		Empty:    NewTable(),
		Glossary: NewTable(),
	}
}

var (
	codeHolder     = regexp.MustCompile(`^\((\d{2,})\)$`)
	emphasisHolder = regexp.MustCompile(`^\(D(\d+)\)$`)
	contentHolder  = regexp.MustCompile(`^\(C(\d+)\)$`)
	escapeHolder   = regexp.MustCompile(`^\(ESC(\d+)\)$`)
	glossaryHolder = regexp.MustCompile(`^\(GLOSS(\d+)\)$`)

	// codeShape finds code placeholders anywhere in a text.
	codeShape = regexp.MustCompile(`\(\d{2,}\)`)
	// reservedShape finds text that could be read back as any placeholder.
	reservedShape = regexp.MustCompile(`\((?:\d{2,}|D\d+|C\d+|ESC\d+|GLOSS\d+)\)`)

	// ReservedToken matches a quoted string made only of empty-string or escape placeholders.
	ReservedToken = regexp.MustCompile(`^(?:\((?:ESC|C)\d+\)\s*)+$`)
)

// CodeHolder formats the n-th code placeholder: (01), (02), ...
func CodeHolder(n int) string { return fmt.Sprintf("(%02d)", n) }

// EmphasisHolder formats the n-th emphasis placeholder: (D1), (D2), ...
func EmphasisHolder(n int) string { return fmt.Sprintf("(D%d)", n) }

// ContentHolder formats the n-th empty-string placeholder: (C1), (C2), ...
func ContentHolder(n int) string { return fmt.Sprintf("(C%d)", n) }

// EscapeHolder formats the n-th escape placeholder: (ESC1), ...
func EscapeHolder(n int) string { return fmt.Sprintf("(ESC%d)", n) }

// GlossaryHolder formats the n-th glossary placeholder: (GLOSS001), ...
func GlossaryHolder(n int) string { return fmt.Sprintf("(GLOSS%03d)", n) }

// Ordinal extracts the 1-based sequence number of a placeholder, or 0 if the
// token is not a placeholder.
func Ordinal(placeholder string) int {
	for _, re := range []*regexp.Regexp{codeHolder, emphasisHolder, contentHolder, escapeHolder, glossaryHolder} {
		if m := re.FindStringSubmatch(placeholder); m != nil {
			n, _ := strconv.Atoi(m[1])
			return n
		}
	}
	return 0
}

// IsContentHolder reports whether placeholder is an empty-string (Cn) placeholder.
func IsContentHolder(placeholder string) bool { return contentHolder.MatchString(placeholder) }

// IsReserved reports whether literal is exactly one placeholder-shaped token.
func IsReserved(literal string) bool {
	loc := reservedShape.FindStringIndex(literal)
	return loc != nil && loc[0] == 0 && loc[1] == len(literal)
}
