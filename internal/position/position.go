// Package position records where extracted segments came from so they can be
// put back into the same lines.
package position

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Entry describes one line that produced main segments.
type Entry struct {
	Line  int
	Count int
	// Prefix is the protected text before the first segment's opening quote.
	Prefix string
	// Suffix is the protected text after the last segment's closing quote.
	Suffix string
	// Separators holds the text between consecutive segments, Count-1 items.
	Separators []string
	// Legacy entries carry no prefix or separators; they are derived from the
	// original line at reconstruction.
	Legacy bool
}

// Index is the position record of one extracted file.
type Index struct {
	Entries []Entry
	// Protected holds lines that were changed by protection but carry no main
	// segment, keyed by line number.
	Protected map[int]string

	byLine map[int]int
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		Protected: make(map[int]string),
		byLine:    make(map[int]int),
	}
}

// Add appends an entry. Entries must be added in line order.
func (ix *Index) Add(e Entry) {
	if ix.byLine == nil {
		ix.byLine = make(map[int]int)
	}
	ix.byLine[e.Line] = len(ix.Entries)
	ix.Entries = append(ix.Entries, e)
}

// Lookup returns the entry of a line.
func (ix *Index) Lookup(line int) (Entry, bool) {
	i, ok := ix.byLine[line]
	if !ok {
		return Entry{}, false
	}
	return ix.Entries[i], true
}

// Total is the number of main segments the index expects.
func (ix *Index) Total() int {
	n := 0
	for _, e := range ix.Entries {
		n += e.Count
	}
	return n
}

// Len is the number of indexed lines.
func (ix *Index) Len() int { return len(ix.Entries) }

type indexFile struct {
	Lines      []int          `json:"lines"`
	Counts     []int          `json:"counts"`
	Suffixes   []string       `json:"suffixes"`
	Prefixes   []string       `json:"prefixes,omitempty"`
	Separators [][]string     `json:"separators,omitempty"`
	Protected  map[int]string `json:"protected,omitempty"`
}

// Write encodes the index as JSON.
func (ix *Index) Write(w io.Writer) error {
	f := indexFile{
		Lines:      make([]int, 0, len(ix.Entries)),
		Counts:     make([]int, 0, len(ix.Entries)),
		Suffixes:   make([]string, 0, len(ix.Entries)),
		Prefixes:   make([]string, 0, len(ix.Entries)),
		Separators: make([][]string, 0, len(ix.Entries)),
		Protected:  ix.Protected,
	}
	for _, e := range ix.Entries {
		seps := e.Separators
		if seps == nil {
			seps = []string{}
		}
		f.Lines = append(f.Lines, e.Line)
		f.Counts = append(f.Counts, e.Count)
		f.Suffixes = append(f.Suffixes, e.Suffix)
		f.Prefixes = append(f.Prefixes, e.Prefix)
		f.Separators = append(f.Separators, seps)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(f); err != nil {
		return fmt.Errorf("encode position index: %w", err)
	}
	return nil
}

// Read decodes an index. Besides the current format it accepts an object
// without prefixes and separators, and the legacy bare list of line numbers
// meaning one segment and no suffix per line.
func Read(r io.Reader) (*Index, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read position index: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("position index is empty")
	}

	ix := NewIndex()
	if data[0] == '[' {
		var lines []int
		if err := json.Unmarshal(data, &lines); err != nil {
			return nil, fmt.Errorf("decode legacy position index: %w", err)
		}
		sort.Ints(lines)
		for _, n := range lines {
			ix.Add(Entry{Line: n, Count: 1, Legacy: true})
		}
		return ix, nil
	}

	var f indexFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode position index: %w", err)
	}
	legacy := len(f.Prefixes) < len(f.Lines) || len(f.Separators) < len(f.Lines)
	for i, n := range f.Lines {
		e := Entry{Line: n, Count: 1, Legacy: legacy}
		if i < len(f.Counts) {
			e.Count = f.Counts[i]
		}
		if e.Count < 0 {
			return nil, fmt.Errorf("position index: negative count for line %d", n)
		}
		if i < len(f.Suffixes) {
			e.Suffix = f.Suffixes[i]
		}
		if !legacy {
			e.Prefix = f.Prefixes[i]
			e.Separators = f.Separators[i]
		}
		ix.Add(e)
	}
	for line, text := range f.Protected {
		ix.Protected[line] = text
	}
	return ix, nil
}
