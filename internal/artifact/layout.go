// Package artifact lays out and reads/writes the per-file artifacts of an
// extraction cycle.
package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Kind is a segment category. Each kind has its own segment file and
// mapping file.
type Kind int

const (
	Main Kind = iota
	Emphasis
	Empty
	Glossary
)

// Kinds lists every category in file order.
var Kinds = []Kind{Main, Emphasis, Empty, Glossary}

func (k Kind) String() string {
	switch k {
	case Main:
		return "main"
	case Emphasis:
		return "emphasis"
	case Empty:
		return "empty"
	case Glossary:
		return "glossary"
	}
	return "unknown"
}

func (k Kind) segmentSuffix() string {
	if k == Main {
		return ""
	}
	return "_" + k.String()
}

func (k Kind) mappingSuffix() string {
	if k == Main {
		return "_codes"
	}
	return "_" + k.String()
}

const (
	extractedDir  = "extracted"
	translatedDir = "translated"
	mappingsDir   = "mappings"
	warningsDir   = "warnings"
)

// Layout resolves artifact paths under a workspace root.
type Layout struct {
	Root   string
	Anchor string
}

// NewLayout creates a layout. anchor is the directory name whose parent
// names the project, usually "game".
func NewLayout(root, anchor string) *Layout {
	return &Layout{Root: root, Anchor: anchor}
}

// Paths are the artifact locations of one source file.
type Paths struct {
	Root    string
	Project string
	Base    string
}

// For returns the artifact paths of a source script.
func (l *Layout) For(source string) Paths {
	return Paths{
		Root:    l.Root,
		Project: ProjectName(source, l.Anchor),
		Base:    SanitizeBase(strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))),
	}
}

func (p Paths) join(dir, name string) string {
	return filepath.Join(p.Root, dir, p.Project, name)
}

// Extracted is the segment file written by extraction.
func (p Paths) Extracted(k Kind) string {
	return p.join(extractedDir, p.Base+k.segmentSuffix()+".txt")
}

// Translated is where a translator may put the edited segment file.
func (p Paths) Translated(k Kind) string {
	return p.join(translatedDir, p.Base+k.segmentSuffix()+".txt")
}

// Edited returns the translated segment file if it exists, otherwise the
// extracted one, which is then assumed to have been edited in place.
func (p Paths) Edited(k Kind) string {
	if t := p.Translated(k); fileExists(t) {
		return t
	}
	return p.Extracted(k)
}

// Mapping is the placeholder mapping file of a kind; the main kind maps codes.
func (p Paths) Mapping(k Kind) string {
	return p.join(mappingsDir, p.Base+k.mappingSuffix()+".map")
}

// Positions is the position index file.
func (p Paths) Positions() string {
	return p.join(mappingsDir, p.Base+"_positions.json")
}

// Warnings is the coherence report file.
func (p Paths) Warnings() string {
	return p.join(warningsDir, p.Base+"_warnings.txt")
}

// Ephemeral lists the files deleted after a successful reconstruction.
func (p Paths) Ephemeral() []string {
	files := make([]string, 0, len(Kinds)+1)
	for _, k := range Kinds {
		files = append(files, p.Mapping(k))
	}
	return append(files, p.Positions())
}

// ProjectName derives the project of a script from the directory above the
// nearest anchor directory in its path. Without an anchor it falls back to
// the file's base name.
func ProjectName(path, anchor string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	parts := strings.Split(filepath.ToSlash(filepath.Dir(abs)), "/")
	if anchor != "" {
		for i := len(parts) - 1; i > 0; i-- {
			if parts[i] == anchor && parts[i-1] != "" {
				if name := SanitizeBase(parts[i-1]); name != "" {
					return name
				}
			}
		}
	}
	base := filepath.Base(path)
	return SanitizeBase(strings.TrimSuffix(base, filepath.Ext(base)))
}

// SanitizeBase removes characters that are unsafe in file names.
func SanitizeBase(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	cleaned = strings.Trim(cleaned, " .")
	if cleaned == "" {
		return "untitled"
	}
	return cleaned
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
