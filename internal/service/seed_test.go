package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-exam-admin/internal/mock"
	"github.com/MKhiriev/go-exam-admin/models"
)

func TestSeedDemoData_SkipsWhenUsersExist(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserService(ctrl)
	catalog := mock.NewMockCatalogService(ctrl)

	users.EXPECT().Users(gomock.Any(), models.PageRequest{Size: 1}).
		Return(models.Page[models.UserProfile]{Pageable: models.Pageable{Total: 3}}, nil)

	err := SeedDemoData(context.Background(), &Services{UserService: users, CatalogService: catalog}, testPhone)
	assert.NoError(t, err)
}

func TestSeedDemoData_FillsEmptyBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserService(ctrl)
	catalog := mock.NewMockCatalogService(ctrl)

	users.EXPECT().Users(gomock.Any(), gomock.Any()).Return(models.Page[models.UserProfile]{}, nil)

	var created []models.UserProfile
	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, u models.UserProfile) (models.UserProfile, error) {
			u.ID = int64(len(created) + 1)
			created = append(created, u)
			return u, nil
		})

	var nextSubject int64
	catalog.EXPECT().CreateSubject(gomock.Any(), gomock.Any()).Times(4).
		DoAndReturn(func(_ context.Context, s models.Subject) (models.Subject, error) {
			nextSubject++
			s.ID = nextSubject
			return s, nil
		})

	var questions []models.Question
	catalog.EXPECT().CreateQuestion(gomock.Any(), gomock.Any()).Times(4).
		DoAndReturn(func(_ context.Context, q models.Question) (models.Question, error) {
			questions = append(questions, q)
			return q, nil
		})

	var templateID int64 = 40
	catalog.EXPECT().CreateTemplate(gomock.Any(), gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, tpl models.TestTemplate) (models.TestTemplate, error) {
			templateID++
			tpl.ID = templateID
			return tpl, nil
		})

	users.EXPECT().GrantAccess(gomock.Any(), models.AccessRequest{UserID: 2, TemplateID: 41}).
		Return(models.AccessGrant{UserID: 2, TemplateID: 41}, nil)

	require.NoError(t, SeedDemoData(context.Background(), &Services{UserService: users, CatalogService: catalog}, testPhone))

	require.Len(t, created, 2)
	assert.Equal(t, testPhone, created[0].PhoneNumber)
	assert.Equal(t, models.RoleAdmin, created[0].Role)
	assert.Equal(t, models.RoleStudent, created[1].Role)

	for _, q := range questions {
		assert.NotZero(t, q.TestSubjectID)
	}
}

func TestSeedDemoData_StopsOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserService(ctrl)

	users.EXPECT().Users(gomock.Any(), gomock.Any()).Return(models.Page[models.UserProfile]{}, nil)
	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.UserProfile{}, errors.New("disk full"))

	err := SeedDemoData(context.Background(), &Services{UserService: users}, testPhone)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed: admin")
}
