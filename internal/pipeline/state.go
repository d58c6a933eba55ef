package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"rpy-translator/internal/artifact"
	"rpy-translator/internal/placeholder"
	"rpy-translator/internal/position"
	"rpy-translator/internal/reconstruct"
)

// state is what an extraction left behind plus the edited segment files.
type state struct {
	positions    *position.Index
	mappings     placeholder.Set
	translations reconstruct.Translations
	lines        map[artifact.Kind][]string
}

func (st *state) expected(kind artifact.Kind) int {
	switch kind {
	case artifact.Main:
		return st.positions.Total()
	case artifact.Emphasis:
		return st.mappings.Emphasis.Len()
	case artifact.Empty:
		n := 0
		for _, e := range st.mappings.Empty.Entries() {
			if placeholder.IsContentHolder(e.Placeholder) {
				n++
			}
		}
		return n
	case artifact.Glossary:
		return st.mappings.Glossary.Len()
	}
	return 0
}

func loadState(paths artifact.Paths) (*state, error) {
	st := &state{lines: make(map[artifact.Kind][]string)}

	positions, err := readPositions(paths.Positions())
	if err != nil {
		return nil, err
	}
	st.positions = positions

	tables := make(map[artifact.Kind]*placeholder.Table, len(artifact.Kinds))
	for _, kind := range artifact.Kinds {
		t, err := readMapping(paths.Mapping(kind), kind == artifact.Glossary)
		if err != nil {
			return nil, err
		}
		tables[kind] = t
	}
	st.mappings = placeholder.Set{
		Codes:    tables[artifact.Main],
		Emphasis: tables[artifact.Emphasis],
		Empty:    tables[artifact.Empty],
		Glossary: tables[artifact.Glossary],
	}

	for _, kind := range artifact.Kinds {
		lines, err := readSegments(paths.Edited(kind), kind)
		if errors.Is(err, fs.ErrNotExist) {
			if kind == artifact.Main || st.expected(kind) > 0 {
				return nil, fmt.Errorf("%w: %s", ErrArtifactsMissing, paths.Edited(kind))
			}
			lines = nil
		} else if err != nil {
			return nil, err
		}
		st.lines[kind] = lines
	}
	st.translations = reconstruct.Translations{
		Segments: st.lines[artifact.Main],
		Emphasis: st.lines[artifact.Emphasis],
		Empty:    st.lines[artifact.Empty],
		Glossary: st.lines[artifact.Glossary],
	}
	return st, nil
}

func readPositions(path string) (*position.Index, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactsMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open position index: %w", err)
	}
	defer f.Close()

	ix, err := position.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ix, nil
}

func readMapping(path string, withTranslation bool) (*placeholder.Table, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactsMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open mapping: %w", err)
	}
	defer f.Close()

	t, err := placeholder.ReadMapping(f, withTranslation)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func readSegments(path string, kind artifact.Kind) ([]string, error) {
	if kind == artifact.Glossary {
		return artifact.ReadGlossaryLines(path)
	}
	return artifact.ReadLines(path)
}
