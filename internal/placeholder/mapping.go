package placeholder

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Separator sits between the fields of a mapping file line.
const Separator = " => "

// WriteMapping writes one `PLACEHOLDER => LITERAL` line per entry, or
// `PLACEHOLDER => LITERAL => TRANSLATION` when withTranslation is set. Fields
// that would not read back as the same entry are an error.
func WriteMapping(w io.Writer, t *Table, withTranslation bool) error {
	bw := bufio.NewWriter(w)
	for _, e := range t.entries {
		if strings.ContainsAny(e.Literal+e.Translation, "\r\n") {
			return fmt.Errorf("write mapping: %s holds a line break", e.Placeholder)
		}
		if withTranslation && strings.Contains(e.Literal, Separator) {
			return fmt.Errorf("write mapping: %s literal contains %q", e.Placeholder, Separator)
		}
		line := e.Placeholder + Separator + e.Literal
		if withTranslation {
			line += Separator + e.Translation
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("write mapping: %w", err)
		}
	}
	return bw.Flush()
}

// ReadMapping parses a file written by WriteMapping. Literals are kept
// verbatim, surrounding whitespace included.
func ReadMapping(r io.Reader, withTranslation bool) (*Table, error) {
	fields := 2
	if withTranslation {
		fields = 3
	}

	t := NewTable()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, Separator, fields)
		if len(parts) != fields {
			return nil, fmt.Errorf("mapping line %d: expected %d fields, got %d", lineNum, fields, len(parts))
		}
		translation := ""
		if withTranslation {
			translation = parts[2]
		}
		if err := t.Add(parts[0], parts[1], translation); err != nil {
			return nil, fmt.Errorf("mapping line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mapping: %w", err)
	}
	return t, nil
}
