package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"rpy-translator/internal/artifact"
	"rpy-translator/internal/extract"
	"rpy-translator/internal/glossary"
	"rpy-translator/internal/placeholder"
	"rpy-translator/internal/script"
)

const glossaryHeader = "# Glossary translations, one per line. Lines starting with # are ignored."

// ExtractResult summarises one extraction.
type ExtractResult struct {
	Source   string
	Paths    artifact.Paths
	Lines    int
	Segments int
	Emphasis int
	Empty    int
	Glossary int
	// Warnings are soft problems, such as an unreachable glossary store.
	Warnings []string
}

// ExtractFile protects and extracts a script and writes its segment,
// mapping and position artifacts.
func (s *Service) ExtractFile(ctx context.Context, path string) (*ExtractResult, error) {
	doc, err := script.Load(path)
	if err != nil {
		return nil, err
	}

	paths := s.layout.For(path)
	result := &ExtractResult{Source: path, Paths: paths, Lines: doc.Len()}

	entries := s.glossaryEntries(ctx, paths.Project, result)

	res, err := s.extractor.Extract(doc, entries)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	if err := writeSegments(paths, res); err != nil {
		return nil, err
	}
	if err := writeMappings(paths, res); err != nil {
		return nil, err
	}

	result.Segments = len(res.Segments)
	result.Emphasis = len(res.Emphasis)
	result.Empty = len(res.Empty)
	result.Glossary = len(res.Glossary)

	log.Info().
		Str("file", path).
		Str("project", paths.Project).
		Int("segments", result.Segments).
		Int("emphasis", result.Emphasis).
		Int("empty", result.Empty).
		Int("glossary", result.Glossary).
		Msg("Extracted script")
	return result, nil
}

// glossaryEntries never fails: an unavailable store means no glossary.
func (s *Service) glossaryEntries(ctx context.Context, project string, result *ExtractResult) []glossary.Entry {
	if s.glossary == nil {
		return nil
	}
	entries, err := s.glossary.Entries(ctx, project)
	if err != nil {
		log.Warn().Err(err).Str("project", project).Msg("Glossary unavailable, continuing without it")
		result.Warnings = append(result.Warnings, fmt.Sprintf("glossary unavailable: %v", err))
		return nil
	}
	return glossary.SortLongestFirst(entries)
}

func writeSegments(paths artifact.Paths, res *extract.Result) error {
	if err := artifact.WriteLines(paths.Extracted(artifact.Main), res.Segments); err != nil {
		return fmt.Errorf("write segments: %w", err)
	}

	optional := []struct {
		kind  artifact.Kind
		lines []string
	}{
		{artifact.Emphasis, res.Emphasis},
		{artifact.Empty, res.Empty},
		{artifact.Glossary, res.Glossary},
	}
	for _, o := range optional {
		path := paths.Extracted(o.kind)
		if len(o.lines) == 0 {
			if err := artifact.Remove(path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Failed to remove stale segment file")
			}
			continue
		}
		lines := o.lines
		if o.kind == artifact.Glossary {
			lines = append([]string{glossaryHeader}, lines...)
		}
		if err := artifact.WriteLines(path, lines); err != nil {
			return fmt.Errorf("write %s segments: %w", o.kind, err)
		}
	}
	return nil
}

func writeMappings(paths artifact.Paths, res *extract.Result) error {
	tables := map[artifact.Kind]*placeholder.Table{
		artifact.Main:     res.Mappings.Codes,
		artifact.Emphasis: res.Mappings.Emphasis,
		artifact.Empty:    res.Mappings.Empty,
		artifact.Glossary: res.Mappings.Glossary,
	}
	for _, kind := range artifact.Kinds {
		var buf bytes.Buffer
		if err := placeholder.WriteMapping(&buf, tables[kind], kind == artifact.Glossary); err != nil {
			return err
		}
		if err := artifact.WriteFile(paths.Mapping(kind), buf.Bytes()); err != nil {
			return fmt.Errorf("write %s mapping: %w", kind, err)
		}
	}

	var buf bytes.Buffer
	if err := res.Positions.Write(&buf); err != nil {
		return err
	}
	if err := artifact.WriteFile(paths.Positions(), buf.Bytes()); err != nil {
		return fmt.Errorf("write position index: %w", err)
	}
	return nil
}
