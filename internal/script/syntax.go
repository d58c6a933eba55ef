package script

import (
	"regexp"
	"strings"
)

// CommentMarker starts a comment line.
const CommentMarker = "#"

// Quote delimits dialogue strings.
const Quote = '"'

var (
	translateHeaderPattern = regexp.MustCompile(`^\s*translate\s+\S+\s+\S+\s*:\s*$`)
	stringsHeaderPattern   = regexp.MustCompile(`^\s*translate\s+\S+\s+strings\s*:\s*$`)
	oldLinePattern         = regexp.MustCompile(`^\s*old\s+"`)
	newLinePattern         = regexp.MustCompile(`^\s*new\s+"`)
	menuLinePattern        = regexp.MustCompile(`^\s*menu(?:\s+[A-Za-z_]\w*)?\s*(?:\(.*\))?\s*:\s*$`)

	// commentedDialoguePattern matches the untranslated reference kept above a
	// translation: `# e "Hello"`, `# "Narration"` or `# old "Start"`.
	commentedDialoguePattern = regexp.MustCompile(`^\s*#\s*(?:[A-Za-z_][\w.]*\s+)*"`)
	dialoguePattern          = regexp.MustCompile(`^\s*(?:[A-Za-z_][\w.]*\s+)*"`)
)

// IsComment reports whether the first non-blank character is the comment marker.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), CommentMarker)
}

// IsTranslateHeader matches `translate <lang> <id>:` block headers, strings blocks included.
func IsTranslateHeader(line string) bool {
	return translateHeaderPattern.MatchString(line)
}

// IsStringsHeader matches `translate <lang> strings:`.
func IsStringsHeader(line string) bool {
	return stringsHeaderPattern.MatchString(line)
}

// IsOldLine matches `old "..."` lines of a strings block.
func IsOldLine(line string) bool {
	return oldLinePattern.MatchString(line)
}

// IsNewLine matches `new "..."` lines of a strings block.
func IsNewLine(line string) bool {
	return newLinePattern.MatchString(line)
}

// IsMenuLine matches a `menu:` statement.
func IsMenuLine(line string) bool {
	return menuLinePattern.MatchString(line)
}

// IsReferenceLine reports whether line holds an untranslated reference: an
// `old "..."` line or a commented-out dialogue line.
func IsReferenceLine(line string) bool {
	return IsOldLine(line) || commentedDialoguePattern.MatchString(line)
}

// IsTranslatedLine reports whether line holds a translation: a `new "..."`
// line or an uncommented dialogue line.
func IsTranslatedLine(line string) bool {
	if IsComment(line) || IsOldLine(line) {
		return false
	}
	return IsNewLine(line) || dialoguePattern.MatchString(line)
}

// HasPrefixWord reports whether the trimmed line starts with one of the given
// statement keywords, followed by a space, a colon or the end of the line.
func HasPrefixWord(line string, words []string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, w := range words {
		if !strings.HasPrefix(trimmed, w) {
			continue
		}
		rest := trimmed[len(w):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == ':' {
			return true
		}
	}
	return false
}
