package glossary

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// DB is the subset of *pgxpool.Pool used by PostgresStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const (
	schemaSQL = `CREATE TABLE IF NOT EXISTS glossary_entries (
	project    TEXT NOT NULL DEFAULT '',
	source     TEXT NOT NULL,
	target     TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (project, source)
)`

	selectEntriesSQL = `SELECT project, source, target FROM glossary_entries
WHERE project = $1 OR project = ''
ORDER BY char_length(source) DESC, source`

	upsertEntrySQL = `INSERT INTO glossary_entries (project, source, target)
VALUES ($1, $2, $3)
ON CONFLICT (project, source) DO UPDATE SET target = EXCLUDED.target, updated_at = now()`
)

// PostgresStore keeps glossaries in PostgreSQL. Rows with an empty project
// are shared by every project.
type PostgresStore struct {
	db DB
}

// NewPostgresStore creates a store on top of a pool or connection.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the glossary table if it does not exist.
func (ps *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := ps.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create glossary table: %w", err)
	}
	return nil
}

// Entries returns project and shared entries. A project entry overrides a
// shared entry with the same source.
func (ps *PostgresStore) Entries(ctx context.Context, project string) ([]Entry, error) {
	rows, err := ps.db.Query(ctx, selectEntriesSQL, project)
	if err != nil {
		return nil, fmt.Errorf("%w: query glossary: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var own, shared []Entry
	for rows.Next() {
		var owner string
		var e Entry
		if err := rows.Scan(&owner, &e.Source, &e.Target); err != nil {
			return nil, fmt.Errorf("scan glossary row: %w", err)
		}
		if owner == "" {
			shared = append(shared, e)
		} else {
			own = append(own, e)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate glossary rows: %w", err)
	}

	return SortLongestFirst(append(own, shared...)), nil
}

// Upsert inserts or updates entries for a project.
func (ps *PostgresStore) Upsert(ctx context.Context, project string, entries []Entry) (int, error) {
	written := 0
	for _, e := range entries {
		if e.Source == "" {
			continue
		}
		tag, err := ps.db.Exec(ctx, upsertEntrySQL, project, e.Source, e.Target)
		if err != nil {
			return written, fmt.Errorf("upsert glossary entry %q: %w", e.Source, err)
		}
		if tag.RowsAffected() > 0 {
			written++
		}
	}

	log.Info().Str("project", project).Int("written", written).Msg("Upserted glossary entries")
	return written, nil
}
