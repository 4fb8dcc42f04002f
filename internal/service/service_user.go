package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/store"
	"github.com/MKhiriev/go-exam-admin/models"
)

type userService struct {
	users  store.UserRepository
	access store.AccessRepository

	now    func() time.Time
	logger *logger.Logger
}

func NewUserService(storages *store.MockStorages, logger *logger.Logger) UserService {
	return &userService{
		users:  storages.Users,
		access: storages.Access,
		now:    time.Now,
		logger: logger,
	}
}

func (u *userService) Users(ctx context.Context, page models.PageRequest) (models.Page[models.UserProfile], error) {
	users, total, err := u.users.ListUsers(ctx, page)
	if err != nil {
		return models.Page[models.UserProfile]{}, fmt.Errorf("list users: %w", err)
	}

	return models.Page[models.UserProfile]{Items: users, Pageable: models.NewPageable(page, total)}, nil
}

func (u *userService) User(ctx context.Context, id int64) (models.UserProfile, error) {
	user, err := u.users.GetUser(ctx, id)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

func (u *userService) CreateUser(ctx context.Context, user models.UserProfile) (models.UserProfile, error) {
	if user.Role == "" {
		user.Role = models.RoleStudent
	}

	created, err := u.users.CreateUser(ctx, user)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("create user: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}

func (u *userService) UpdateUser(ctx context.Context, user models.UserProfile) (models.UserProfile, error) {
	if user.Role == "" {
		current, err := u.users.GetUser(ctx, user.ID)
		if err != nil {
			return models.UserProfile{}, fmt.Errorf("get user %d: %w", user.ID, err)
		}
		user.Role = current.Role
	}

	updated, err := u.users.UpdateUser(ctx, user)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("update user %d: %w", user.ID, err)
	}
	return updated, nil
}

func (u *userService) DeleteUser(ctx context.Context, id int64) error {
	if err := u.users.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (u *userService) Access(ctx context.Context, userID int64) ([]models.AccessGrant, error) {
	if _, err := u.users.GetUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}

	grants, err := u.access.ListAccess(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list access of user %d: %w", userID, err)
	}
	return grants, nil
}

// GrantAccess is idempotent: granting an existing pair returns the original
// grant.
func (u *userService) GrantAccess(ctx context.Context, request models.AccessRequest) (models.AccessGrant, error) {
	grant, err := u.access.GrantAccess(ctx, models.AccessGrant{
		UserID:     request.UserID,
		TemplateID: request.TemplateID,
		GrantedAt:  u.now().UTC().Truncate(time.Second),
	})
	if err != nil {
		return models.AccessGrant{}, fmt.Errorf("grant access: %w", err)
	}

	logger.FromContext(ctx).Info().
		Int64("user_id", request.UserID).
		Int64("template_id", request.TemplateID).
		Msg("access granted")
	return grant, nil
}

func (u *userService) RevokeAccess(ctx context.Context, request models.AccessRequest) error {
	if err := u.access.RevokeAccess(ctx, request.UserID, request.TemplateID); err != nil {
		return fmt.Errorf("revoke access: %w", err)
	}

	logger.FromContext(ctx).Info().
		Int64("user_id", request.UserID).
		Int64("template_id", request.TemplateID).
		Msg("access revoked")
	return nil
}
