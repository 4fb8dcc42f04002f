package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
)

// SessionStorage is the console's durable session store.
type SessionStorage struct {
	db *DB
	KV KeyValueStore
}

// NewSessionStorage opens (creating if needed) the SQLite file at dsn,
// migrates the session_kv table and returns the store.
func NewSessionStorage(ctx context.Context, dsn string, log *logger.Logger) (*SessionStorage, error) {
	log.Info().Msg("opening session storage...")

	db, err := NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateSession(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &SessionStorage{
		db: db,
		KV: NewSessionKVRepository(db, log),
	}, nil
}

// Close releases the database connection.
func (s *SessionStorage) Close() error {
	return s.db.Close()
}
