package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWholeWord(t *testing.T) {
	tests := []struct {
		name       string
		s          string
		start, end int
		want       bool
	}{
		{"standalone", "good morning", 5, 12, true},
		{"glued left", "goodmorning", 4, 11, false},
		{"glued right", "mornings", 0, 7, false},
		{"punctuation", "morning.", 0, 7, true},
		{"accented neighbour", "émorning", 2, 9, false},
		{"whole string", "morning", 0, 7, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWholeWord(tt.s, tt.start, tt.end))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab...", Truncate("abcdef", 2))
	assert.Equal(t, "éé...", Truncate("éééé", 2))
}
