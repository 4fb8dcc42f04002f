package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/mock"
	"github.com/MKhiriev/go-exam-admin/internal/store"
	"github.com/MKhiriev/go-exam-admin/models"
)

type catalogMocks struct {
	subjects  *mock.MockSubjectRepository
	questions *mock.MockQuestionRepository
	templates *mock.MockTemplateRepository
}

func newTestServerCatalogSvc(t *testing.T, ctrl *gomock.Controller) (CatalogService, catalogMocks) {
	t.Helper()
	m := catalogMocks{
		subjects:  mock.NewMockSubjectRepository(ctrl),
		questions: mock.NewMockQuestionRepository(ctrl),
		templates: mock.NewMockTemplateRepository(ctrl),
	}
	storages := &store.MockStorages{Subjects: m.subjects, Questions: m.questions, Templates: m.templates}
	return NewCatalogService(storages, logger.Nop()), m
}

func TestCatalogService_Subjects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestServerCatalogSvc(t, ctrl)
	subjects := []models.Subject{{ID: 1, Name: "Math", Main: true}}
	m.subjects.EXPECT().ListSubjects(gomock.Any(), true).Return(subjects, nil)

	got, err := svc.Subjects(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, subjects, got)
}

func TestCatalogService_Questions_Paged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestServerCatalogSvc(t, ctrl)
	page := models.PageRequest{Page: 1, Size: 2}
	items := []models.Question{{ID: 3}, {ID: 4}}

	gomock.InOrder(
		m.subjects.EXPECT().GetSubject(gomock.Any(), int64(7)).Return(models.Subject{ID: 7}, nil),
		m.questions.EXPECT().ListQuestions(gomock.Any(), int64(7), page).Return(items, int64(5), nil),
	)

	got, err := svc.Questions(context.Background(), 7, page)
	require.NoError(t, err)
	assert.Equal(t, items, got.Items)
	assert.Equal(t, models.Pageable{Total: 5, Current: 1, TotalPages: 3, PerPages: 2}, got.Pageable)
}

func TestCatalogService_Questions_UnknownSubject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestServerCatalogSvc(t, ctrl)
	m.subjects.EXPECT().GetSubject(gomock.Any(), int64(9)).Return(models.Subject{}, store.ErrNotFound)

	_, err := svc.Questions(context.Background(), 9, models.PageRequest{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCatalogService_Templates_UnknownSubject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestServerCatalogSvc(t, ctrl)
	m.subjects.EXPECT().GetSubject(gomock.Any(), int64(9)).Return(models.Subject{}, store.ErrNotFound)

	_, err := svc.Templates(context.Background(), 9, models.PageRequest{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCatalogService_Templates_Paged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestServerCatalogSvc(t, ctrl)
	items := []models.TestTemplate{{ID: 1, Title: "DTM"}}

	m.subjects.EXPECT().GetSubject(gomock.Any(), int64(1)).Return(models.Subject{ID: 1}, nil)
	m.templates.EXPECT().ListTemplates(gomock.Any(), int64(1), models.PageRequest{}).Return(items, int64(1), nil)

	got, err := svc.Templates(context.Background(), 1, models.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, items, got.Items)
	assert.Equal(t, 1, got.Pageable.TotalPages)
}

func TestCatalogService_WrapsRepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestServerCatalogSvc(t, ctrl)
	ctx := context.Background()
	dbErr := errors.New("db is gone")

	m.subjects.EXPECT().CreateSubject(gomock.Any(), gomock.Any()).Return(models.Subject{}, dbErr)
	m.subjects.EXPECT().DeleteSubject(gomock.Any(), int64(1)).Return(store.ErrReferenceNotFound)
	m.questions.EXPECT().UpdateQuestion(gomock.Any(), gomock.Any()).Return(models.Question{}, store.ErrNotFound)
	m.templates.EXPECT().DeleteTemplate(gomock.Any(), int64(2)).Return(store.ErrNotFound)

	_, err := svc.CreateSubject(ctx, models.Subject{Name: "Math"})
	assert.ErrorIs(t, err, dbErr)

	assert.ErrorIs(t, svc.DeleteSubject(ctx, 1), store.ErrReferenceNotFound)

	_, err = svc.UpdateQuestion(ctx, models.Question{ID: 5})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Contains(t, err.Error(), "update question 5")

	assert.ErrorIs(t, svc.DeleteTemplate(ctx, 2), store.ErrNotFound)
}

func TestCatalogService_CreateTemplate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestServerCatalogSvc(t, ctrl)
	in := models.TestTemplate{Title: "DTM", Duration: 180}
	m.templates.EXPECT().CreateTemplate(gomock.Any(), in).Return(models.TestTemplate{ID: 11, Title: "DTM", Duration: 180}, nil)

	got, err := svc.CreateTemplate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
}
