package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/models"
)

// userRepository is the SQL implementation of [UserRepository].
type userRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, log *logger.Logger) UserRepository {
	log.Debug().Msg("creating user repository")
	return &userRepository{db: db, logger: log}
}

func (r *userRepository) ListUsers(ctx context.Context, page models.PageRequest) ([]models.UserProfile, int64, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountUsersQuery(r.db.builder)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	total, err := count(ctx, r.db, r.db, countQuery, countArgs)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error counting users")
		return nil, 0, err
	}

	query, args, err := buildListUsersQuery(r.db.builder, page)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error querying users")
		return nil, 0, r.db.classify(err)
	}
	defer rows.Close()

	users := make([]models.UserProfile, 0)
	for rows.Next() {
		var u models.UserProfile
		if err := rows.Scan(&u.ID, &u.FullName, &u.PhoneNumber, &u.Role); err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.db.classify(err)
	}

	return users, total, nil
}

func (r *userRepository) GetUser(ctx context.Context, id int64) (models.UserProfile, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *userRepository) FindUserByPhone(ctx context.Context, phone string) (models.UserProfile, error) {
	return r.findOne(ctx, sq.Eq{"phone_number": phone})
}

func (r *userRepository) findOne(ctx context.Context, where sq.Eq) (models.UserProfile, error) {
	query, args, err := buildGetUserQuery(r.db.builder, where)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var u models.UserProfile
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.FullName, &u.PhoneNumber, &u.Role); err != nil {
		return models.UserProfile{}, r.db.classify(err)
	}
	return u, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user models.UserProfile) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	if user.Role == "" {
		user.Role = models.RoleStudent
	}

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.UserProfile{}, r.db.classify(err)
	}

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user models.UserProfile) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	if user.Role == "" {
		user.Role = models.RoleStudent
	}

	query, args, err := buildUpdateUserQuery(r.db.builder, user)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		return models.UserProfile{}, r.db.classify(err)
	}
	if err := expectAffected(res); err != nil {
		return models.UserProfile{}, err
	}

	return user, nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, tableUsers, id)
}
