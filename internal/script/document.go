package script

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a script file held as lines. Terminators and a leading BOM are
// kept aside so that writing the document back reproduces the original bytes.
type Document struct {
	// Path is the file the document was loaded from (empty for in-memory documents).
	Path string
	// Lines holds the line contents without terminators.
	Lines []string
	// Endings holds the terminator of each line: "\n", "\r\n" or "" for an unterminated last line.
	Endings []string
	// BOM records whether the file started with a UTF-8 byte order mark.
	BOM bool
}

// Load reads a script file from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script file: %w", err)
	}
	doc := Parse(data)
	doc.Path = path
	return doc, nil
}

// Parse splits raw bytes into a Document.
func Parse(data []byte) *Document {
	doc := &Document{}
	if bytes.HasPrefix(data, utf8BOM) {
		doc.BOM = true
		data = data[len(utf8BOM):]
	}

	text := string(data)
	for len(text) > 0 {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			doc.Lines = append(doc.Lines, text)
			doc.Endings = append(doc.Endings, "")
			break
		}
		line, ending := text[:idx], "\n"
		if strings.HasSuffix(line, "\r") {
			line, ending = line[:len(line)-1], "\r\n"
		}
		doc.Lines = append(doc.Lines, line)
		doc.Endings = append(doc.Endings, ending)
		text = text[idx+1:]
	}
	return doc
}

// FromLines builds a document with "\n" terminators on every line.
func FromLines(lines []string) *Document {
	doc := &Document{
		Lines:   append([]string(nil), lines...),
		Endings: make([]string, len(lines)),
	}
	for i := range doc.Endings {
		doc.Endings[i] = "\n"
	}
	return doc
}

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.Lines) }

// WithLines returns a copy of the document carrying new line contents but the
// same terminators and BOM. lines must have the same length as d.Lines.
func (d *Document) WithLines(lines []string) *Document {
	return &Document{
		Path:    d.Path,
		Lines:   append([]string(nil), lines...),
		Endings: append([]string(nil), d.Endings...),
		BOM:     d.BOM,
	}
}

// Bytes serializes the document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	if d.BOM {
		buf.Write(utf8BOM)
	}
	for i, line := range d.Lines {
		buf.WriteString(line)
		if i < len(d.Endings) {
			buf.WriteString(d.Endings[i])
		} else {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// CommentedOut returns a copy with every non-blank line prefixed by the
// comment marker.
func (d *Document) CommentedOut() *Document {
	lines := make([]string, len(d.Lines))
	for i, line := range d.Lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = line
			continue
		}
		lines[i] = CommentMarker + " " + line
	}
	return d.WithLines(lines)
}
