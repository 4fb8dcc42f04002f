package store

import (
	"context"
	"database/sql"
	"fmt"
)

// expectAffected turns an UPDATE or DELETE that touched no row into
// [ErrNotFound].
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, db *DB, table string, id int64) error {
	query, args, err := buildDeleteByIDQuery(db.builder, table, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		db.logger.Err(err).Str("func", "deleteByID").Str("table", table).Int64("id", id).Msg("error deleting row")
		return db.classify(err)
	}
	return expectAffected(res)
}

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func count(ctx context.Context, db *DB, q queryRower, query string, args []any) (int64, error) {
	var total int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, db.classify(err)
	}
	return total, nil
}
