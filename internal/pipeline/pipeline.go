// Package pipeline runs the extract, validate, reconstruct and check steps
// for script files and manages their artifacts.
package pipeline

import (
	"errors"

	"rpy-translator/internal/artifact"
	"rpy-translator/internal/coherence"
	"rpy-translator/internal/extract"
	"rpy-translator/internal/glossary"
)

// ErrArtifactsMissing is returned by reconstruction and validation when the
// artifacts of an extraction are not found.
var ErrArtifactsMissing = errors.New("files missing, run extraction first")

// SaveMode selects where a reconstructed script is written.
type SaveMode int

const (
	// Overwrite replaces the original script.
	Overwrite SaveMode = iota
	// NewFile writes a sibling `<name><suffix>.rpy` and comments out the
	// original.
	NewFile
)

func (m SaveMode) String() string {
	if m == NewFile {
		return "new-file"
	}
	return "overwrite"
}

// Options configures a Service.
type Options struct {
	Extract          extract.Options
	Coherence        coherence.Options
	TranslatedSuffix string
}

// Service processes script files. It is safe for concurrent use as long as
// no two calls target the same source file.
type Service struct {
	layout    *artifact.Layout
	glossary  glossary.Store
	extractor *extract.Extractor
	checker   *coherence.Checker
	suffix    string
}

// New creates a service. store may be nil when no glossary is configured.
func New(layout *artifact.Layout, store glossary.Store, opts Options) *Service {
	suffix := opts.TranslatedSuffix
	if suffix == "" {
		suffix = "_translated"
	}
	return &Service{
		layout:    layout,
		glossary:  store,
		extractor: extract.New(opts.Extract),
		checker:   coherence.New(opts.Coherence),
		suffix:    suffix,
	}
}

// Paths returns the artifact paths of a source script.
func (s *Service) Paths(source string) artifact.Paths {
	return s.layout.For(source)
}
