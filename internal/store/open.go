package store

import (
	"context"
	"fmt"

	"creative-evaluator-backend/internal/config"
	"creative-evaluator-backend/internal/database"
	"creative-evaluator-backend/internal/supabase"

	"github.com/rs/zerolog/log"
)

// Open returns the store selected by STORE_DRIVER. SQL drivers have their
// schema migrated before the store is returned.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case "supabase":
		client, err := supabase.NewClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Supabase client: %w", err)
		}
		log.Info().Msg("Using Supabase REST store")
		return NewPostgRESTStore(client.Supabase), nil
	case "postgres":
		s, err := openSQL(ctx, database.Postgres, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite", "":
		s, err := openSQL(ctx, database.SQLite, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// OpenSQLite opens and migrates a SQLite database at path. ":memory:" is
// accepted for tests.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	return openSQL(ctx, database.SQLite, path)
}

func openSQL(ctx context.Context, dialect database.Dialect, dsn string) (*SQLStore, error) {
	db, err := database.Open(ctx, dialect, dsn)
	if err != nil {
		return nil, err
	}

	if err := database.NewMigrator(db, dialect).Run(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	log.Info().Str("dialect", string(dialect)).Msg("Database migrations complete")

	return NewSQLStore(db, dialect), nil
}
