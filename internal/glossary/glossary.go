// Package glossary supplies fixed term translations and protects glossary
// terms in a document before any other placeholder pass runs.
package glossary

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"rpy-translator/internal/placeholder"
)

// ErrUnavailable is returned when a backing store cannot be reached.
var ErrUnavailable = errors.New("glossary store unavailable")

// Entry is a literal term and its fixed translation.
type Entry struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Check reports whether the entry can be stored in a glossary mapping file.
// Terms live on one script line, so line breaks are rejected, and the source
// may not contain the mapping separator.
func (e Entry) Check() error {
	if strings.ContainsAny(e.Source, "\r\n") || strings.ContainsAny(e.Target, "\r\n") {
		return fmt.Errorf("glossary entry %q: line breaks are not allowed", e.Source)
	}
	if strings.Contains(e.Source, placeholder.Separator) {
		return fmt.Errorf("glossary entry %q: source contains %q", e.Source, placeholder.Separator)
	}
	return nil
}

// Store supplies the glossary of a project, longest source literal first.
type Store interface {
	Entries(ctx context.Context, project string) ([]Entry, error)
}

// Editable is a store that can also be written to and listed in full.
type Editable interface {
	Store
	Upsert(ctx context.Context, project string, entries []Entry) (int, error)
}

// SortLongestFirst drops empty and duplicate sources (the first occurrence
// wins) and orders the rest by source length, longest first. Ties are broken
// alphabetically so the order is deterministic.
func SortLongestFirst(entries []Entry) []Entry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Source == "" {
			continue
		}
		if _, dup := seen[e.Source]; dup {
			continue
		}
		seen[e.Source] = struct{}{}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(out[i].Source), utf8.RuneCountInString(out[j].Source)
		if li != lj {
			return li > lj
		}
		return out[i].Source < out[j].Source
	})
	return out
}

// MemoryStore keeps glossaries in memory. Shared entries apply to every
// project; project entries take precedence over shared ones.
type MemoryStore struct {
	mu        sync.RWMutex
	shared    []Entry
	byProject map[string][]Entry
}

// NewMemoryStore creates a store holding the given shared entries.
func NewMemoryStore(shared ...Entry) *MemoryStore {
	return &MemoryStore{
		shared:    shared,
		byProject: make(map[string][]Entry),
	}
}

// Entries returns the project entries followed by the shared ones.
func (m *MemoryStore) Entries(_ context.Context, project string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := append(append([]Entry(nil), m.byProject[project]...), m.shared...)
	return SortLongestFirst(all), nil
}

// Upsert adds or replaces project entries.
func (m *MemoryStore) Upsert(_ context.Context, project string, entries []Entry) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	merged := mergeEntries(m.byProject[project], entries)
	m.byProject[project] = merged
	return len(entries), nil
}

// mergeEntries overrides targets of existing sources and appends new ones.
func mergeEntries(existing, updates []Entry) []Entry {
	index := make(map[string]int, len(existing))
	out := append([]Entry(nil), existing...)
	for i, e := range out {
		index[e.Source] = i
	}
	for _, e := range updates {
		if i, ok := index[e.Source]; ok {
			out[i].Target = e.Target
			continue
		}
		index[e.Source] = len(out)
		out = append(out, e)
	}
	return out
}
