package artifact

import "strings"

// Count compares the expected and actual number of segments of one kind.
type Count struct {
	Kind     Kind
	Expected int
	Actual   int
	Missing  int
	Extra    int
}

// OK reports whether nothing is missing or extra.
func (c Count) OK() bool {
	return c.Missing == 0 && c.Extra == 0
}

// Validation is the count check of a translated file set.
type Validation struct {
	Counts []Count
}

// OK reports whether every kind matches.
func (v Validation) OK() bool {
	for _, c := range v.Counts {
		if !c.OK() {
			return false
		}
	}
	return true
}

// Missing is the total number of missing lines.
func (v Validation) Missing() int {
	n := 0
	for _, c := range v.Counts {
		n += c.Missing
	}
	return n
}

// Extra is the total number of surplus lines.
func (v Validation) Extra() int {
	n := 0
	for _, c := range v.Counts {
		n += c.Extra
	}
	return n
}

// Compare counts lines against the expected number. Blank content is
// legitimate for the empty kind, so there missing trailing lines are not
// reported and surplus lines only count when they are not blank.
func Compare(kind Kind, expected int, lines []string) Count {
	c := Count{Kind: kind, Expected: expected, Actual: len(lines)}
	if kind == Empty {
		for i := expected; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) != "" {
				c.Extra++
			}
		}
		return c
	}
	switch {
	case c.Actual < expected:
		c.Missing = expected - c.Actual
	case c.Actual > expected:
		c.Extra = c.Actual - expected
	}
	return c
}
