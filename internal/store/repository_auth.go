package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
)

type authRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewAuthRepository(db *DB, log *logger.Logger) AuthRepository {
	log.Debug().Msg("creating auth repository")
	return &authRepository{db: db, logger: log}
}

func (r *authRepository) SaveOTP(ctx context.Context, phone, codeHash string, expiresAt time.Time) error {
	query, args, err := buildUpsertOTPQuery(r.db.builder, phone, codeHash, expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authRepository.SaveOTP").Msg("error saving otp")
		return r.db.classify(err)
	}
	return nil
}

func (r *authRepository) GetOTP(ctx context.Context, phone string) (string, time.Time, error) {
	query, args, err := buildGetOTPQuery(r.db.builder, phone)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		codeHash  string
		expiresAt time.Time
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&codeHash, &expiresAt); err != nil {
		return "", time.Time{}, r.db.classify(err)
	}
	return codeHash, expiresAt, nil
}

func (r *authRepository) DeleteOTP(ctx context.Context, phone string) error {
	query, args, err := buildDeleteOTPQuery(r.db.builder, phone)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return r.db.classify(err)
	}
	return nil
}

func (r *authRepository) SaveRefreshToken(ctx context.Context, tokenHash string, userID int64, expiresAt time.Time) error {
	query, args, err := buildInsertRefreshTokenQuery(r.db.builder, tokenHash, userID, expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authRepository.SaveRefreshToken").Msg("error saving refresh token")
		return r.db.classify(err)
	}
	return nil
}

// ConsumeRefreshToken reads and deletes the token in one transaction so a
// refresh token can be exchanged only once.
func (r *authRepository) ConsumeRefreshToken(ctx context.Context, tokenHash string) (int64, time.Time, error) {
	var (
		userID    int64
		expiresAt time.Time
	)

	err := r.db.inTx(ctx, func(tx *sql.Tx) error {
		query, args, err := buildGetRefreshTokenQuery(r.db.builder, tokenHash)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&userID, &expiresAt); err != nil {
			return r.db.classify(err)
		}

		query, args, err = buildDeleteRefreshTokenQuery(r.db.builder, tokenHash)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return r.db.classify(err)
		}
		return expectAffected(res)
	})
	if err != nil {
		return 0, time.Time{}, err
	}

	return userID, expiresAt, nil
}
