package glossary

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadTSV parses `source<TAB>target` lines. Blank lines and lines starting
// with # are skipped.
func ReadTSV(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("glossary line %d: expected source<TAB>target", lineNum)
		}
		entries = append(entries, Entry{
			Source: unescapeTSV(parts[0]),
			Target: unescapeTSV(parts[1]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan glossary: %w", err)
	}
	return entries, nil
}

// WriteTSV writes entries with a header comment.
func WriteTSV(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# source\ttarget")
	for _, e := range entries {
		fmt.Fprintf(bw, "%s\t%s\n", escapeTSV(e.Source), escapeTSV(e.Target))
	}
	return bw.Flush()
}

// escapeTSV replaces tabs and newlines in a string for TSV safety.
func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}

func unescapeTSV(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 't':
			sb.WriteByte('\t')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// FileStore reads glossaries from TSV files. If path is a directory each
// project has its own `<project>.tsv`; otherwise the one file serves every
// project.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) fileFor(project string) string {
	if info, err := os.Stat(fs.path); err == nil && info.IsDir() {
		return filepath.Join(fs.path, project+".tsv")
	}
	return fs.path
}

// Entries loads the project glossary. A missing file is an empty glossary.
func (fs *FileStore) Entries(_ context.Context, project string) ([]Entry, error) {
	f, err := os.Open(fs.fileFor(project))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()

	entries, err := ReadTSV(f)
	if err != nil {
		return nil, err
	}
	return SortLongestFirst(entries), nil
}

// Upsert merges entries into the project file.
func (fs *FileStore) Upsert(ctx context.Context, project string, entries []Entry) (int, error) {
	existing, err := fs.Entries(ctx, project)
	if err != nil {
		return 0, err
	}
	merged := SortLongestFirst(mergeEntries(existing, entries))

	path := fs.fileFor(project)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create glossary directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create glossary file: %w", err)
	}
	defer f.Close()

	if err := WriteTSV(f, merged); err != nil {
		return 0, fmt.Errorf("write glossary file: %w", err)
	}
	return len(entries), nil
}
