package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-exam-admin/internal/app"
	"github.com/MKhiriev/go-exam-admin/internal/service"
	"github.com/MKhiriev/go-exam-admin/internal/store"
	"github.com/MKhiriev/go-exam-admin/internal/validators"
	"github.com/MKhiriev/go-exam-admin/models"
)

// ─────────────────────────────────────────────
// subjects
// ─────────────────────────────────────────────

func TestSubjects_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl)
	expectAdmin(m)
	router := h.Init()

	all := []models.Subject{{ID: 1, Name: "Math", Main: true}, {ID: 2, Name: "English"}}
	m.catalog.EXPECT().Subjects(gomock.Any(), false).Return(all, nil)
	m.catalog.EXPECT().Subjects(gomock.Any(), true).Return(nil, nil)

	rec := do(t, router, http.MethodGet, "/api/subject/all", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, all, decodeEnvelope[[]models.Subject](t, rec).Data)

	// an empty list is [] on the wire, never null
	rec = do(t, router, http.MethodGet, "/api/subject/main", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestSubjects_CRUD(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl)
	expectAdmin(m)
	router := h.Init()

	math := models.Subject{ID: 3, Name: "Math", Calculator: true}

	m.catalog.EXPECT().CreateSubject(gomock.Any(), models.Subject{Name: "Math", Calculator: true}).Return(math, nil)
	m.catalog.EXPECT().Subject(gomock.Any(), int64(3)).Return(math, nil)
	m.catalog.EXPECT().UpdateSubject(gomock.Any(), models.Subject{ID: 3, Name: "Algebra"}).Return(models.Subject{ID: 3, Name: "Algebra"}, nil)
	m.catalog.EXPECT().DeleteSubject(gomock.Any(), int64(3)).Return(nil)

	// the ID in a create body is ignored
	rec := do(t, router, http.MethodPost, "/api/subject", models.Subject{ID: 99, Name: "Math", Calculator: true}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, math, decodeEnvelope[models.Subject](t, rec).Data)

	rec = do(t, router, http.MethodGet, "/api/subject/3", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	// the path ID wins over the body
	rec = do(t, router, http.MethodPut, "/api/subject/3", models.Subject{ID: 7, Name: "Algebra"}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Algebra", decodeEnvelope[models.Subject](t, rec).Data.Name)

	rec = do(t, router, http.MethodDelete, "/api/subject/3", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, app.MsgDeleted, decodeEnvelope[any](t, rec).Message)
}

func TestSubjects_Errors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		setup      func(m testServices)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "bad id",
			method:     http.MethodGet,
			path:       "/api/subject/abc",
			setup:      func(testServices) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   app.CodeValidation,
		},
		{
			name:   "missing",
			method: http.MethodGet,
			path:   "/api/subject/42",
			setup: func(m testServices) {
				m.catalog.EXPECT().Subject(gomock.Any(), int64(42)).Return(models.Subject{}, fmt.Errorf("get subject 42: %w", store.ErrNotFound))
			},
			wantStatus: http.StatusNotFound,
			wantCode:   app.CodeNotFound,
		},
		{
			name:   "duplicate name",
			method: http.MethodPost,
			path:   "/api/subject",
			body:   models.Subject{Name: "Math"},
			setup: func(m testServices) {
				m.catalog.EXPECT().CreateSubject(gomock.Any(), gomock.Any()).Return(models.Subject{}, store.ErrAlreadyExists)
			},
			wantStatus: http.StatusConflict,
			wantCode:   app.CodeAlreadyExists,
		},
		{
			name:   "validation",
			method: http.MethodPost,
			path:   "/api/subject",
			body:   models.Subject{},
			setup: func(m testServices) {
				m.catalog.EXPECT().CreateSubject(gomock.Any(), gomock.Any()).
					Return(models.Subject{}, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrEmptyName))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   app.CodeValidation,
		},
		{
			name:   "unexpected failure",
			method: http.MethodDelete,
			path:   "/api/subject/1",
			setup: func(m testServices) {
				m.catalog.EXPECT().DeleteSubject(gomock.Any(), int64(1)).Return(fmt.Errorf("database is locked"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   app.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h, m := newTestHandler(t, ctrl)
			expectAdmin(m)
			tt.setup(m)

			rec := do(t, h.Init(), tt.method, tt.path, tt.body, true)
			require.Equal(t, tt.wantStatus, rec.Code)

			env := decodeEnvelope[any](t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantCode, env.ErrorData.ErrorCode)
		})
	}
}

// ─────────────────────────────────────────────
// questions
// ─────────────────────────────────────────────

func TestQuestions_ListPaged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl)
	expectAdmin(m)
	router := h.Init()

	page := models.Page[models.Question]{
		Items:    []models.Question{{ID: 1, TestSubjectID: 5, QuestionType: models.QuestionTypeWritten, QuestionText: "?", WrittenAnswer: "4"}},
		Pageable: models.Pageable{Total: 11, Current: 2, TotalPages: 3, PerPages: 5},
	}
	m.catalog.EXPECT().Questions(gomock.Any(), int64(5), models.PageRequest{Page: 2, Size: 5}).Return(page, nil)

	rec := do(t, router, http.MethodGet, "/api/questions/subject/5?page=2&size=5", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope[[]models.Question](t, rec)
	assert.Equal(t, page.Items, env.Data)
	require.NotNil(t, env.PageableResponse)
	assert.Equal(t, page.Pageable, *env.PageableResponse)

	rec = do(t, router, http.MethodGet, "/api/questions/subject/5?page=-1", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuestions_CRUD(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl)
	expectAdmin(m)
	router := h.Init()

	q := models.Question{TestSubjectID: 5, QuestionType: models.QuestionTypeWritten, QuestionText: "2+2", WrittenAnswer: "4"}
	saved := q
	saved.ID = 8

	m.catalog.EXPECT().CreateQuestion(gomock.Any(), q).Return(saved, nil)
	m.catalog.EXPECT().Question(gomock.Any(), int64(8)).Return(saved, nil)
	m.catalog.EXPECT().UpdateQuestion(gomock.Any(), saved).Return(saved, nil)
	m.catalog.EXPECT().DeleteQuestion(gomock.Any(), int64(8)).Return(store.ErrNotFound)

	rec := do(t, router, http.MethodPost, "/api/questions", q, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/questions/8", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, saved, decodeEnvelope[models.Question](t, rec).Data)

	rec = do(t, router, http.MethodPut, "/api/questions/8", q, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/questions/8", nil, true)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// templates
// ─────────────────────────────────────────────

func TestTemplates_ListAndCRUD(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl)
	expectAdmin(m)
	router := h.Init()

	tpl := models.TestTemplate{
		Title:    "DTM",
		Duration: 180,
		Subjects: []models.TemplateSubject{{Subject: models.Subject{ID: 1}, Role: models.SubjectRoleMain}},
	}
	saved := tpl
	saved.ID = 4

	m.catalog.EXPECT().Templates(gomock.Any(), int64(1), models.PageRequest{}).
		Return(models.Page[models.TestTemplate]{Items: []models.TestTemplate{saved}, Pageable: models.NewPageable(models.PageRequest{}, 1)}, nil)
	m.catalog.EXPECT().CreateTemplate(gomock.Any(), tpl).Return(saved, nil)
	m.catalog.EXPECT().Template(gomock.Any(), int64(4)).Return(saved, nil)
	m.catalog.EXPECT().UpdateTemplate(gomock.Any(), saved).Return(saved, nil)
	m.catalog.EXPECT().DeleteTemplate(gomock.Any(), int64(4)).Return(nil)
	m.catalog.EXPECT().Templates(gomock.Any(), int64(9), gomock.Any()).
		Return(models.Page[models.TestTemplate]{}, store.ErrNotFound)

	rec := do(t, router, http.MethodGet, "/api/template/subject/1", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope[[]models.TestTemplate](t, rec)
	assert.Equal(t, []models.TestTemplate{saved}, env.Data)
	assert.Equal(t, int64(1), env.PageableResponse.Total)

	rec = do(t, router, http.MethodPost, "/api/template", tpl, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/template/4", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPut, "/api/template/4", tpl, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/template/4", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/template/subject/9", nil, true)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
