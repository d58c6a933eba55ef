package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func contents(line string) []string {
	var out []string
	for _, s := range QuotedSpans(line) {
		out = append(out, s.Content(line))
	}
	return out
}

func TestQuotedSpans(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"single", `e "Hello"`, []string{"Hello"}},
		{"several", `e "Hello" "World"`, []string{"Hello", "World"}},
		{"escaped quote", `e "Say \"hi\"" (whisper)`, []string{`Say \"hi\"`}},
		{"escaped backslash before close", `e "C:\\" ok`, []string{`C:\\`}},
		{"empty string", `e ""`, []string{""}},
		{"unterminated", `e "Hello`, nil},
		{"trailing comment", `e "Hi" # note "x"`, []string{"Hi"}},
		{"hash inside string", `e "#1 fan"`, []string{"#1 fan"}},
		{"no quotes", `jump start`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contents(tt.line))
		})
	}
}

func TestMapSpans(t *testing.T) {
	got := MapSpans(`e "ab" x "cd" (y)`, strings.ToUpper)
	assert.Equal(t, `e "AB" x "CD" (y)`, got)
	assert.Equal(t, "label a:", MapSpans("label a:", strings.ToUpper))
}
