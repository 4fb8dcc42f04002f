// Package migrations embeds the goose SQL migrations of the session store
// and of the mock backend.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed session/*.sql mock/sqlite/*.sql mock/postgres/*.sql
var embedMigrations embed.FS

// Dialect names the SQL flavour of the target database.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

var errNilDB = errors.New("db is nil")

// MigrateSession applies the session store schema (SQLite only).
func MigrateSession(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, goose.DialectSQLite3, "session")
}

// MigrateMock applies the mock backend schema for the given dialect.
func MigrateMock(ctx context.Context, db *sql.DB, dialect Dialect) error {
	switch dialect {
	case DialectSQLite:
		return migrate(ctx, db, goose.DialectSQLite3, "mock/sqlite")
	case DialectPostgres:
		return migrate(ctx, db, goose.DialectPostgres, "mock/postgres")
	default:
		return fmt.Errorf("migration error: unsupported dialect %q", dialect)
	}
}

func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", errNilDB)
	}

	fsys, err := fs.Sub(embedMigrations, dir)
	if err != nil {
		return fmt.Errorf("migration error opening %s: %w", dir, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("migration error creating provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
