package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
)

// sessionKVRepository is the SQL-backed [KeyValueStore] over the session_kv
// table.
type sessionKVRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSessionKVRepository returns a [KeyValueStore] backed by db. The schema
// must already be migrated with [DB.MigrateSession].
func NewSessionKVRepository(db *DB, log *logger.Logger) KeyValueStore {
	log.Debug().Msg("creating session kv repository")
	return &sessionKVRepository{db: db, logger: log}
}

func (r *sessionKVRepository) Get(ctx context.Context, key string) (string, error) {
	query, args, err := buildGetKVQuery(r.db.builder, key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		r.logger.Err(err).Str("func", "*sessionKVRepository.Get").Str("key", key).Msg("error reading key")
		return "", r.db.classify(err)
	}

	return value, nil
}

func (r *sessionKVRepository) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	query, args, err := buildUpsertKVQuery(r.db.builder, values, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.db.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			r.logger.Err(err).Str("func", "*sessionKVRepository.SetMany").Msg("error writing keys")
			return r.db.classify(err)
		}
		return nil
	})
}

func (r *sessionKVRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := buildDeleteKVQuery(r.db.builder, keys)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "*sessionKVRepository.Delete").Msg("error deleting keys")
		return r.db.classify(err)
	}
	return nil
}
