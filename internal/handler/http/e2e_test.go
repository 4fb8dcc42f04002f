package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-exam-admin/internal/adapter"
	"github.com/MKhiriev/go-exam-admin/internal/config"
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/service"
	"github.com/MKhiriev/go-exam-admin/internal/session"
	"github.com/MKhiriev/go-exam-admin/internal/store"
	"github.com/MKhiriev/go-exam-admin/models"
)

const (
	e2eAdminPhone   = "+998901234567"
	e2eStudentPhone = "+998907654321"
)

type e2eEnv struct {
	session *session.Session
	login   *service.LoginFlow
	catalog service.ClientCatalogService
	adapter adapter.ServerAdapter
}

// newE2E starts the seeded mock backend on an httptest server and builds
// the console services against it.
func newE2E(t *testing.T) e2eEnv {
	t.Helper()
	ctx := context.Background()
	log := logger.Nop()

	cfg := config.MockServerConfig{
		Version:              "v0.0.0-e2e",
		DSN:                  ":memory:",
		TokenSignKey:         "e2e-sign-key",
		TokenIssuer:          "exam-mock",
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
		OTPCode:              "123456",
		UploadDir:            t.TempDir(),
		AdminPhone:           e2eAdminPhone,
	}

	storages, err := store.NewMockStorages(ctx, cfg.DSN, log)
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	services, err := service.NewServices(storages, cfg, log)
	require.NoError(t, err)
	require.NoError(t, service.SeedDemoData(ctx, services, cfg.AdminPhone))

	srv := httptest.NewServer(NewHandler(services, log).Init())
	t.Cleanup(srv.Close)

	sess, err := session.New(ctx, store.NewMemoryKV(), log)
	require.NoError(t, err)

	serverAdapter, err := adapter.NewHTTPServerAdapter(config.ClientAdapter{
		BaseURL:           srv.URL,
		RequestTimeout:    5 * time.Second,
		TemplatesStrategy: config.FanOutBestEffort,
	}, sess, log)
	require.NoError(t, err)

	return e2eEnv{
		session: sess,
		login:   service.NewLoginFlow(serverAdapter, sess, log),
		catalog: service.NewClientCatalogService(serverAdapter),
		adapter: serverAdapter,
	}
}

func (e e2eEnv) logIn(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, e.login.RequestOTP(ctx, e2eAdminPhone))
	require.Equal(t, service.LoginOTPSent, e.login.State())
	require.NoError(t, e.login.Verify(ctx, "123456"))
	require.Equal(t, service.LoginAuthenticated, e.login.State())
}

func TestE2E_LoginAndBrowse(t *testing.T) {
	e := newE2E(t)
	ctx := context.Background()

	// a wrong code keeps the pending login
	require.NoError(t, e.login.RequestOTP(ctx, "+998 90 123-45-67"))
	assert.ErrorIs(t, e.login.Verify(ctx, "000000"), service.ErrInvalidOTP)
	assert.Equal(t, service.LoginOTPSent, e.login.State())

	require.NoError(t, e.login.Verify(ctx, "123456"))
	assert.Equal(t, service.LoginAuthenticated, e.login.State())
	assert.True(t, e.session.IsAuthenticated())
	assert.NotZero(t, e.login.Profile().ID)

	me, err := e.adapter.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Administrator", me.FullName)

	subjects, err := e.catalog.Subjects(ctx)
	require.NoError(t, err)
	assert.Len(t, subjects, 4)

	var math models.Subject
	for _, s := range subjects {
		if s.Name == "Математика" {
			math = s
		}
	}
	require.NotZero(t, math.ID)

	questions, err := e.catalog.Questions(ctx, math.ID, models.PageRequest{Page: 0, Size: 2})
	require.NoError(t, err)
	assert.Len(t, questions.Items, 2)
	assert.Equal(t, int64(3), questions.Pageable.Total)
	assert.Equal(t, 2, questions.Pageable.TotalPages)

	templates, err := e.catalog.Templates(ctx)
	require.NoError(t, err)
	assert.Len(t, templates, 2)

	users, err := e.catalog.Users(ctx, models.PageRequest{Size: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), users.Pageable.Total)

	require.NoError(t, e.login.Logout(ctx))
	assert.Equal(t, service.LoginAnonymous, e.login.State())
	assert.False(t, e.session.IsAuthenticated())
}

func TestE2E_AccessGrants(t *testing.T) {
	e := newE2E(t)
	ctx := context.Background()
	e.logIn(t)

	users, err := e.catalog.Users(ctx, models.PageRequest{})
	require.NoError(t, err)

	var student models.UserProfile
	for _, u := range users.Items {
		if u.PhoneNumber == e2eStudentPhone {
			student = u
		}
	}
	require.NotZero(t, student.ID)

	grants, err := e.catalog.UserAccess(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	templateID := grants[0].TemplateID

	require.NoError(t, e.catalog.RevokeAccess(ctx, student.ID, templateID))
	grants, err = e.catalog.UserAccess(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, grants)

	grant, err := e.catalog.GrantAccess(ctx, student.ID, templateID)
	require.NoError(t, err)
	assert.Equal(t, templateID, grant.TemplateID)
	assert.False(t, grant.GrantedAt.IsZero())

	_, err = e.catalog.GrantAccess(ctx, student.ID, 9999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestE2E_CatalogMutations(t *testing.T) {
	e := newE2E(t)
	ctx := context.Background()
	e.logIn(t)

	chemistry, err := e.adapter.CreateSubject(ctx, models.Subject{Name: "Химия", Main: true})
	require.NoError(t, err)
	require.NotZero(t, chemistry.ID)

	_, err = e.adapter.CreateSubject(ctx, models.Subject{Name: "Химия"})
	require.Error(t, err)

	q, err := e.adapter.CreateQuestion(ctx, models.Question{
		TestSubjectID: chemistry.ID,
		QuestionType:  models.QuestionTypeWritten,
		QuestionText:  "Формула воды",
		WrittenAnswer: "H2O",
		Position:      1,
	})
	require.NoError(t, err)

	tpl, err := e.adapter.CreateTemplate(ctx, models.TestTemplate{
		Title:    "Химия: пробный",
		Duration: 45,
		Subjects: []models.TemplateSubject{{Subject: chemistry, Role: models.SubjectRoleMain}},
	})
	require.NoError(t, err)

	templates, err := e.catalog.Templates(ctx)
	require.NoError(t, err)
	assert.Len(t, templates, 3)

	require.NoError(t, e.catalog.DeleteTemplate(ctx, tpl.ID))
	require.NoError(t, e.catalog.DeleteQuestion(ctx, q.ID))
	require.NoError(t, e.catalog.DeleteSubject(ctx, chemistry.ID))

	assert.ErrorIs(t, e.catalog.DeleteSubject(ctx, chemistry.ID), service.ErrNotFound)
}

func TestE2E_ExpiredAccessTokenIsRefreshed(t *testing.T) {
	e := newE2E(t)
	ctx := context.Background()
	e.logIn(t)

	refresh := e.session.RefreshToken()
	require.NoError(t, e.session.SetTokens(ctx, "not-a-jwt", refresh))

	subjects, err := e.catalog.Subjects(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, subjects)

	assert.NotEqual(t, "not-a-jwt", e.session.AccessToken())
	assert.NotEqual(t, refresh, e.session.RefreshToken())
	assert.Equal(t, service.LoginAuthenticated, e.login.SyncSession())
}

func TestE2E_FailedRefreshEndsSession(t *testing.T) {
	e := newE2E(t)
	ctx := context.Background()
	e.logIn(t)

	require.NoError(t, e.session.SetTokens(ctx, "not-a-jwt", "already-used"))

	_, err := e.catalog.Subjects(ctx)
	require.Error(t, err)
	assert.True(t, service.IsSessionError(err))

	assert.False(t, e.session.IsAuthenticated())
	assert.Equal(t, service.LoginAnonymous, e.login.SyncSession())
}

func TestE2E_StudentCannotLogIn(t *testing.T) {
	e := newE2E(t)

	err := e.login.RequestOTP(context.Background(), e2eStudentPhone)
	assert.ErrorIs(t, err, service.ErrAccessDenied)
	assert.Equal(t, service.LoginAnonymous, e.login.State())
}
