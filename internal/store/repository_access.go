package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/models"
)

type accessRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewAccessRepository(db *DB, log *logger.Logger) AccessRepository {
	log.Debug().Msg("creating access repository")
	return &accessRepository{db: db, logger: log}
}

func (r *accessRepository) ListAccess(ctx context.Context, userID int64) ([]models.AccessGrant, error) {
	query, args, err := buildListAccessQuery(r.db.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accessRepository.ListAccess").Msg("error querying grants")
		return nil, r.db.classify(err)
	}
	defer rows.Close()

	grants := make([]models.AccessGrant, 0)
	for rows.Next() {
		var g models.AccessGrant
		if err := rows.Scan(&g.UserID, &g.TemplateID, &g.GrantedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, r.db.classify(err)
	}

	return grants, nil
}

// GrantAccess is idempotent: granting an existing pair returns the original
// grant unchanged.
func (r *accessRepository) GrantAccess(ctx context.Context, grant models.AccessGrant) (models.AccessGrant, error) {
	if grant.GrantedAt.IsZero() {
		grant.GrantedAt = time.Now().UTC()
	}

	query, args, err := buildGrantAccessQuery(r.db.builder, grant)
	if err != nil {
		return models.AccessGrant{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accessRepository.GrantAccess").Msg("error granting access")
		return models.AccessGrant{}, r.db.classify(err)
	}

	query, args, err = buildGetAccessQuery(r.db.builder, grant.UserID, grant.TemplateID)
	if err != nil {
		return models.AccessGrant{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var stored models.AccessGrant
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&stored.UserID, &stored.TemplateID, &stored.GrantedAt); err != nil {
		return models.AccessGrant{}, r.db.classify(err)
	}
	return stored, nil
}

func (r *accessRepository) RevokeAccess(ctx context.Context, userID, templateID int64) error {
	query, args, err := buildRevokeAccessQuery(r.db.builder, userID, templateID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accessRepository.RevokeAccess").Msg("error revoking access")
		return r.db.classify(err)
	}
	return expectAffected(res)
}
