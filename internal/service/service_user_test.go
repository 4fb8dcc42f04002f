package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/mock"
	"github.com/MKhiriev/go-exam-admin/internal/store"
	"github.com/MKhiriev/go-exam-admin/models"
)

func newTestUserSvc(t *testing.T, ctrl *gomock.Controller) (*userService, *mock.MockUserRepository, *mock.MockAccessRepository) {
	t.Helper()
	users := mock.NewMockUserRepository(ctrl)
	access := mock.NewMockAccessRepository(ctrl)

	svc := NewUserService(&store.MockStorages{Users: users, Access: access}, logger.Nop()).(*userService)
	svc.now = func() time.Time { return testNow.Add(750 * time.Millisecond) }
	return svc, users, access
}

func TestUserService_Users_Paged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestUserSvc(t, ctrl)
	page := models.PageRequest{Size: 500}
	users.EXPECT().ListUsers(gomock.Any(), page).Return([]models.UserProfile{testAdmin}, int64(1), nil)

	got, err := svc.Users(context.Background(), page)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, models.MaxPageSize, got.Pageable.PerPages)
	assert.Equal(t, 1, got.Pageable.TotalPages)
}

func TestUserService_CreateUser_DefaultsToStudent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestUserSvc(t, ctrl)
	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.UserProfile) (models.UserProfile, error) {
			assert.Equal(t, models.RoleStudent, u.Role)
			u.ID = 5
			return u, nil
		})

	got, err := svc.CreateUser(context.Background(), models.UserProfile{FullName: "Ali", PhoneNumber: "+998901111111"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, models.RoleStudent, got.Role)
}

func TestUserService_CreateUser_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestUserSvc(t, ctrl)
	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.UserProfile{}, store.ErrAlreadyExists)

	_, err := svc.CreateUser(context.Background(), models.UserProfile{FullName: "Ali", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUserService_UpdateUser_KeepsRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestUserSvc(t, ctrl)
	in := models.UserProfile{ID: 1, FullName: "Renamed", PhoneNumber: testPhone}
	want := in
	want.Role = models.RoleAdmin

	gomock.InOrder(
		users.EXPECT().GetUser(gomock.Any(), int64(1)).Return(testAdmin, nil),
		users.EXPECT().UpdateUser(gomock.Any(), want).Return(want, nil),
	)

	got, err := svc.UpdateUser(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUserService_UpdateUser_ExplicitRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestUserSvc(t, ctrl)
	in := models.UserProfile{ID: 2, FullName: "Ali", PhoneNumber: "+998901111111", Role: models.RoleAdmin}
	users.EXPECT().UpdateUser(gomock.Any(), in).Return(in, nil)

	_, err := svc.UpdateUser(context.Background(), in)
	require.NoError(t, err)
}

func TestUserService_Access_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestUserSvc(t, ctrl)
	users.EXPECT().GetUser(gomock.Any(), int64(3)).Return(models.UserProfile{}, store.ErrNotFound)

	_, err := svc.Access(context.Background(), 3)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserService_Access(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, access := newTestUserSvc(t, ctrl)
	grants := []models.AccessGrant{{UserID: 1, TemplateID: 4, GrantedAt: testNow}}

	users.EXPECT().GetUser(gomock.Any(), int64(1)).Return(testAdmin, nil)
	access.EXPECT().ListAccess(gomock.Any(), int64(1)).Return(grants, nil)

	got, err := svc.Access(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, grants, got)
}

func TestUserService_GrantAccess_StampsTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, access := newTestUserSvc(t, ctrl)
	want := models.AccessGrant{UserID: 1, TemplateID: 4, GrantedAt: testNow}
	access.EXPECT().GrantAccess(gomock.Any(), want).Return(want, nil)

	got, err := svc.GrantAccess(context.Background(), models.AccessRequest{UserID: 1, TemplateID: 4})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUserService_RevokeAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, access := newTestUserSvc(t, ctrl)
	access.EXPECT().RevokeAccess(gomock.Any(), int64(1), int64(4)).Return(nil)
	access.EXPECT().RevokeAccess(gomock.Any(), int64(1), int64(5)).Return(store.ErrNotFound)

	require.NoError(t, svc.RevokeAccess(context.Background(), models.AccessRequest{UserID: 1, TemplateID: 4}))
	assert.ErrorIs(t, svc.RevokeAccess(context.Background(), models.AccessRequest{UserID: 1, TemplateID: 5}), store.ErrNotFound)
}
