package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"

	"rpy-translator/internal/config"
	"rpy-translator/internal/glossary"
)

// openGlossary connects the configured glossary backend. It returns a nil
// store for the "none" backend.
func openGlossary(ctx context.Context, cfg *config.Config) (glossary.Editable, func(), error) {
	switch cfg.GlossaryBackend {
	case "", config.GlossaryNone:
		return nil, func() {}, nil

	case config.GlossaryFile:
		return glossary.NewFileStore(cfg.GlossaryFile), func() {}, nil

	case config.GlossaryPostgres:
		pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect PostgreSQL: %w", err)
		}
		if err := pgPool.Ping(ctx); err != nil {
			pgPool.Close()
			return nil, nil, fmt.Errorf("ping PostgreSQL: %w", err)
		}
		log.Info().Msg("Connected to PostgreSQL")

		store := glossary.NewPostgresStore(pgPool)
		if err := store.EnsureSchema(ctx); err != nil {
			pgPool.Close()
			return nil, nil, err
		}
		return store, pgPool.Close, nil

	case config.GlossaryNeo4j:
		driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
		if err != nil {
			return nil, nil, fmt.Errorf("connect Neo4j: %w", err)
		}
		if err := driver.VerifyConnectivity(ctx); err != nil {
			driver.Close(ctx)
			return nil, nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
		}
		log.Info().Msg("Connected to Neo4j")

		store := glossary.NewGraphStore(driver)
		if err := store.EnsureSchema(ctx); err != nil {
			driver.Close(ctx)
			return nil, nil, err
		}
		return store, func() { driver.Close(context.Background()) }, nil
	}

	return nil, nil, fmt.Errorf("unknown glossary backend %q", cfg.GlossaryBackend)
}
