package glossary

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// GraphStore keeps glossary terms as (:Term {project, source, target}) nodes
// in Neo4j.
type GraphStore struct {
	driver neo4j.DriverWithContext
}

// NewGraphStore creates a Neo4j-backed store.
func NewGraphStore(driver neo4j.DriverWithContext) *GraphStore {
	return &GraphStore{driver: driver}
}

// EnsureSchema creates the uniqueness constraint on terms.
func (gs *GraphStore) EnsureSchema(ctx context.Context) error {
	session := gs.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	if _, err := session.Run(ctx,
		"CREATE CONSTRAINT IF NOT EXISTS FOR (t:Term) REQUIRE (t.project, t.source) IS UNIQUE", nil); err != nil {
		return fmt.Errorf("create constraint: %w", err)
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// Entries returns the project and shared terms.
func (gs *GraphStore) Entries(ctx context.Context, project string) ([]Entry, error) {
	session := gs.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (t:Term)
		WHERE t.project = $project OR t.project = ''
		RETURN t.project AS project, t.source AS source, t.target AS target
		ORDER BY size(t.source) DESC
	`, map[string]any{"project": project})
	if err != nil {
		return nil, fmt.Errorf("%w: query terms: %v", ErrUnavailable, err)
	}

	var own, shared []Entry
	for result.Next(ctx) {
		owner, e := recordEntry(result.Record())
		if owner == "" {
			shared = append(shared, e)
		} else {
			own = append(own, e)
		}
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("iterate terms: %w", err)
	}

	return SortLongestFirst(append(own, shared...)), nil
}

// Upsert merges term nodes for a project.
func (gs *GraphStore) Upsert(ctx context.Context, project string, entries []Entry) (int, error) {
	session := gs.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	written := 0
	for _, e := range entries {
		if e.Source == "" {
			continue
		}
		_, err := session.Run(ctx, `
			MERGE (t:Term {project: $project, source: $source})
			SET t.target = $target
		`, map[string]any{
			"project": project,
			"source":  e.Source,
			"target":  e.Target,
		})
		if err != nil {
			return written, fmt.Errorf("upsert term %s: %w", e.Source, err)
		}
		written++
	}

	log.Info().Str("project", project).Int("terms", written).Msg("Upserted glossary terms")
	return written, nil
}

func recordEntry(record *neo4j.Record) (string, Entry) {
	owner, _ := record.Get("project")
	source, _ := record.Get("source")
	target, _ := record.Get("target")
	return stringValue(owner), Entry{
		Source: stringValue(source),
		Target: stringValue(target),
	}
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
