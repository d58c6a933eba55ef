package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"rpy-translator/internal/artifact"
	"rpy-translator/internal/reconstruct"
	"rpy-translator/internal/script"
)

// ValidateFile compares the edited segment files with the counts recorded
// at extraction.
func (s *Service) ValidateFile(ctx context.Context, path string) (*artifact.Validation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st, err := loadState(s.layout.For(path))
	if err != nil {
		return nil, err
	}
	return validate(st), nil
}

func validate(st *state) *artifact.Validation {
	v := &artifact.Validation{}
	for _, kind := range artifact.Kinds {
		v.Counts = append(v.Counts, artifact.Compare(kind, st.expected(kind), st.lines[kind]))
	}
	return v
}

// ReconstructResult summarises one reconstruction.
type ReconstructResult struct {
	Source     string
	Output     string
	Mode       SaveMode
	Stats      reconstruct.Stats
	Validation *artifact.Validation
	// Warnings are soft problems that did not stop the reconstruction.
	Warnings []string
}

// TranslatedPath is the output path used by NewFile mode.
func (s *Service) TranslatedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + s.suffix + ext
}

// ReconstructFile rebuilds a script from its edited segment files and
// deletes the mapping and position artifacts on success.
func (s *Service) ReconstructFile(ctx context.Context, path string, mode SaveMode) (*ReconstructResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := script.Load(path)
	if err != nil {
		return nil, err
	}
	paths := s.layout.For(path)
	st, err := loadState(paths)
	if err != nil {
		return nil, err
	}

	lines, stats := reconstruct.Reconstruct(reconstruct.Input{
		Lines:        doc.Lines,
		Positions:    st.positions,
		Mappings:     st.mappings,
		Translations: st.translations,
	})

	result := &ReconstructResult{
		Source:     path,
		Output:     path,
		Mode:       mode,
		Stats:      stats,
		Validation: validate(st),
	}
	if stats.Shortfall > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d segments missing, left empty", stats.Shortfall))
	}
	if stats.Surplus > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d surplus segments ignored", stats.Surplus))
	}
	if stats.Skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d indexed lines are beyond the end of the script", stats.Skipped))
	}

	if mode == NewFile {
		result.Output = s.TranslatedPath(path)
	}
	if err := artifact.WriteFile(result.Output, doc.WithLines(lines).Bytes()); err != nil {
		return nil, fmt.Errorf("write translated script: %w", err)
	}

	if mode == NewFile {
		if err := artifact.WriteFile(path, doc.CommentedOut().Bytes()); err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Failed to comment out original script")
			result.Warnings = append(result.Warnings, fmt.Sprintf("original not commented out: %v", err))
		}
	}

	if err := artifact.Remove(paths.Ephemeral()...); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Failed to clean up mapping files")
		result.Warnings = append(result.Warnings, fmt.Sprintf("cleanup failed: %v", err))
	}

	log.Info().
		Str("file", path).
		Str("output", result.Output).
		Str("mode", mode.String()).
		Int("consumed", stats.Consumed).
		Int("expected", stats.Expected).
		Msg("Reconstructed script")
	return result, nil
}
