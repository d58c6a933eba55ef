package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// ScriptExtension is the extension of the script files handled by the tool.
const ScriptExtension = ".rpy"

// DefaultSkipDirs are directories never descended into.
var DefaultSkipDirs = map[string]bool{
	".git":        true,
	"cache":       true,
	"saves":       true,
	"__pycache__": true,
}

// Walker discovers script files.
type Walker struct {
	skipDirs map[string]bool
	// suffix marks generated translated copies, which are not sources.
	suffix string
}

// NewWalker creates a Walker. Files whose name ends with translatedSuffix
// before the extension are skipped.
func NewWalker(translatedSuffix string) *Walker {
	return &Walker{
		skipDirs: DefaultSkipDirs,
		suffix:   translatedSuffix,
	}
}

// Walk returns the script files under root in lexical order. A root that
// is a file is returned as is.
func (w *Walker) Walk(root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if d.IsDir() {
			if path != root && w.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if w.accept(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	sort.Strings(files)
	log.Info().Int("count", len(files)).Str("root", root).Msg("Discovered files")
	return files, nil
}

func (w *Walker) accept(name string) bool {
	ext := filepath.Ext(name)
	if !strings.EqualFold(ext, ScriptExtension) {
		return false
	}
	stem := strings.TrimSuffix(name, ext)
	return w.suffix == "" || !strings.HasSuffix(stem, w.suffix)
}
