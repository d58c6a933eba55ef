package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"rpy-translator/internal/artifact"
	"rpy-translator/internal/coherence"
	"rpy-translator/internal/script"
)

// CheckResult is the coherence report of one file. WarningsPath is empty
// when no issue was found and nothing was written.
type CheckResult struct {
	Report       *coherence.Report
	WarningsPath string
}

// CheckFile audits a translated script and writes the warning report when
// it finds issues.
func (s *Service) CheckFile(ctx context.Context, path string) (*CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := script.Load(path)
	if err != nil {
		return nil, err
	}

	report := s.checker.Check(doc.Lines)
	report.File = path
	result := &CheckResult{Report: report}
	if !report.HasIssues() {
		log.Info().Str("file", path).Msg("No coherence issues")
		return result, nil
	}

	var buf bytes.Buffer
	if err := report.Format(&buf); err != nil {
		return nil, err
	}
	result.WarningsPath = s.layout.For(path).Warnings()
	if err := artifact.WriteFile(result.WarningsPath, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("write warnings: %w", err)
	}

	log.Warn().
		Str("file", path).
		Int("issues", len(report.Issues)).
		Str("report", result.WarningsPath).
		Msg("Coherence issues found")
	return result, nil
}
