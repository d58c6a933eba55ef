package script

// Span locates one quoted string in a line. Start is the index of the opening
// quote and End the index just past the closing quote.
type Span struct {
	Start int
	End   int
}

// Content returns the text between the quotes.
func (s Span) Content(line string) string {
	return line[s.Start+1 : s.End-1]
}

// QuotedSpans returns the quoted strings of a line in order. A backslash
// inside a string escapes the next byte, an unterminated string is ignored and
// a comment marker outside of a string ends the scan.
func QuotedSpans(line string) []Span {
	var spans []Span
	start := -1
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if start < 0 {
			switch ch {
			case Quote:
				start = i
			case CommentMarker[0]:
				return spans
			}
			continue
		}
		switch ch {
		case '\\':
			i++
		case Quote:
			spans = append(spans, Span{Start: start, End: i + 1})
			start = -1
		}
	}
	return spans
}

// MapSpans rebuilds line with the content of every quoted string passed
// through fn. Quotes and text outside strings are kept as they are.
func MapSpans(line string, fn func(content string) string) string {
	spans := QuotedSpans(line)
	if len(spans) == 0 {
		return line
	}
	out := make([]byte, 0, len(line))
	last := 0
	for _, s := range spans {
		out = append(out, line[last:s.Start+1]...)
		out = append(out, fn(s.Content(line))...)
		out = append(out, Quote)
		last = s.End
	}
	out = append(out, line[last:]...)
	return string(out)
}
