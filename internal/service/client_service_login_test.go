package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-exam-admin/internal/adapter"
	"github.com/MKhiriev/go-exam-admin/internal/app"
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/mock"
	"github.com/MKhiriev/go-exam-admin/internal/session"
	"github.com/MKhiriev/go-exam-admin/internal/store"
	"github.com/MKhiriev/go-exam-admin/internal/utils"
	"github.com/MKhiriev/go-exam-admin/models"
)

const testPhone = "+998901234567"

// newTestLoginFlow: хелпер: LoginFlow с моком адаптера и настоящей сессией в памяти
func newTestLoginFlow(t *testing.T, ctrl *gomock.Controller) (*LoginFlow, *mock.MockServerAdapter, *session.Session) {
	t.Helper()
	sess, err := session.New(context.Background(), store.NewMemoryKV(), logger.Nop())
	require.NoError(t, err)

	mockAdapter := mock.NewMockServerAdapter(ctrl)
	return NewLoginFlow(mockAdapter, sess, logger.Nop()), mockAdapter, sess
}

func adminTokens(t *testing.T, userID int64) models.VerifyResult {
	t.Helper()
	access, err := utils.GenerateJWTToken("exam-mock", userID, []string{models.RoleAdmin}, time.Minute, "key")
	require.NoError(t, err)
	return models.VerifyResult{
		TokenPair: models.TokenPair{AccessToken: access, RefreshToken: "refresh-1"},
		Roles:     []string{models.RoleAdmin},
	}
}

func rejected(status int, code, message string) error {
	return &adapter.RequestError{Op: "test", Status: status, Code: code, Message: message, Kind: adapter.ErrRejected}
}

func toOTPSent(t *testing.T, f *LoginFlow, m *mock.MockServerAdapter) {
	t.Helper()
	m.EXPECT().Login(gomock.Any(), testPhone).Return(models.Envelope[any]{Success: true}, nil)
	require.NoError(t, f.RequestOTP(context.Background(), testPhone))
}

// ── RequestOTP ────────────────────────────────────────────────────────────────

func TestLoginFlow_RequestOTP_NormalizesPhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, _ := newTestLoginFlow(t, ctrl)
	m.EXPECT().Login(gomock.Any(), testPhone).Return(models.Envelope[any]{Success: true}, nil)

	require.NoError(t, f.RequestOTP(context.Background(), " +998 (90) 123-45-67 "))

	assert.Equal(t, LoginOTPSent, f.State())
	assert.Equal(t, testPhone, f.Phone())
}

func TestLoginFlow_RequestOTP_InvalidPhone_NoNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, _, _ := newTestLoginFlow(t, ctrl)

	err := f.RequestOTP(context.Background(), "12")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.Equal(t, LoginAnonymous, f.State())
}

func TestLoginFlow_RequestOTP_Rejected_StaysAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, _ := newTestLoginFlow(t, ctrl)
	m.EXPECT().Login(gomock.Any(), testPhone).
		Return(models.Envelope[any]{}, rejected(http.StatusForbidden, app.CodeAccessDenied, app.MsgAdminOnly))

	err := f.RequestOTP(context.Background(), testPhone)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Contains(t, err.Error(), app.MsgAdminOnly)
	assert.Equal(t, LoginAnonymous, f.State())
	assert.Empty(t, f.Phone())
}

func TestLoginFlow_RequestOTP_Twice_InvalidTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, _ := newTestLoginFlow(t, ctrl)
	toOTPSent(t, f, m)

	err := f.RequestOTP(context.Background(), testPhone)
	assert.ErrorIs(t, err, ErrInvalidLoginTransition)
	assert.Equal(t, LoginOTPSent, f.State())
}

// ── ChangeNumber ──────────────────────────────────────────────────────────────

func TestLoginFlow_ChangeNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, _ := newTestLoginFlow(t, ctrl)
	assert.ErrorIs(t, f.ChangeNumber(), ErrInvalidLoginTransition)

	toOTPSent(t, f, m)
	require.NoError(t, f.ChangeNumber())
	assert.Equal(t, LoginAnonymous, f.State())
	assert.Empty(t, f.Phone())
}

// ── Verify ────────────────────────────────────────────────────────────────────

func TestLoginFlow_Verify_Success_PersistsTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, sess := newTestLoginFlow(t, ctrl)
	toOTPSent(t, f, m)

	result := adminTokens(t, 42)
	m.EXPECT().VerifyOTP(gomock.Any(), testPhone, "123456").Return(result, nil)

	require.NoError(t, f.Verify(context.Background(), " 123456 "))

	assert.Equal(t, LoginAuthenticated, f.State())
	assert.Equal(t, result.AccessToken, sess.AccessToken())
	assert.Equal(t, "refresh-1", sess.RefreshToken())
	assert.Equal(t, int64(42), f.Profile().ID)
	assert.Equal(t, testPhone, f.Profile().PhoneNumber)
}

func TestLoginFlow_Verify_WrongCode_StaysOTPSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, sess := newTestLoginFlow(t, ctrl)
	toOTPSent(t, f, m)

	m.EXPECT().VerifyOTP(gomock.Any(), testPhone, "000000").
		Return(models.VerifyResult{}, rejected(http.StatusBadRequest, app.CodeInvalidOTP, app.MsgInvalidOTP))

	err := f.Verify(context.Background(), "000000")
	assert.ErrorIs(t, err, ErrInvalidOTP)
	assert.Equal(t, LoginOTPSent, f.State())
	assert.False(t, sess.IsAuthenticated())
}

func TestLoginFlow_Verify_MalformedCode_NoNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, _ := newTestLoginFlow(t, ctrl)
	toOTPSent(t, f, m)

	assert.ErrorIs(t, f.Verify(context.Background(), "12"), ErrInvalidOTP)
	assert.Equal(t, LoginOTPSent, f.State())
}

func TestLoginFlow_Verify_NonAdmin_BackToAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, sess := newTestLoginFlow(t, ctrl)
	toOTPSent(t, f, m)

	m.EXPECT().VerifyOTP(gomock.Any(), testPhone, "123456").Return(models.VerifyResult{
		TokenPair: models.TokenPair{AccessToken: "a", RefreshToken: "r"},
		Roles:     []string{models.RoleStudent},
	}, nil)

	assert.ErrorIs(t, f.Verify(context.Background(), "123456"), ErrNotAdmin)
	assert.Equal(t, LoginAnonymous, f.State())
	assert.False(t, sess.IsAuthenticated())
}

func TestLoginFlow_Verify_FromAnonymous_InvalidTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, _, _ := newTestLoginFlow(t, ctrl)
	assert.ErrorIs(t, f.Verify(context.Background(), "123456"), ErrInvalidLoginTransition)
}

// ── Restore ───────────────────────────────────────────────────────────────────

func TestLoginFlow_Restore_NoSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, _, _ := newTestLoginFlow(t, ctrl)

	_, err := f.Restore(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, LoginAnonymous, f.State())
}

func TestLoginFlow_Restore_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, sess := newTestLoginFlow(t, ctrl)
	require.NoError(t, sess.SetTokens(context.Background(), "a", "r"))

	admin := models.UserProfile{ID: 1, FullName: "Admin", PhoneNumber: testPhone, Role: models.RoleAdmin}
	m.EXPECT().Me(gomock.Any()).Return(admin, nil)

	profile, err := f.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, admin, profile)
	assert.Equal(t, LoginAuthenticated, f.State())
	assert.Equal(t, admin, f.Profile())
}

func TestLoginFlow_Restore_RefreshFailed_SessionExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, sess := newTestLoginFlow(t, ctrl)
	require.NoError(t, sess.SetTokens(context.Background(), "a", "r"))

	// адаптер очищает сессию, когда refresh не удался
	m.EXPECT().Me(gomock.Any()).DoAndReturn(func(ctx context.Context) (models.UserProfile, error) {
		require.NoError(t, sess.Clear(ctx))
		return models.UserProfile{}, &adapter.RequestError{Op: "auth.me", Status: http.StatusUnauthorized, Kind: adapter.ErrUnauthorized}
	})

	_, err := f.Restore(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, LoginAnonymous, f.State())
}

func TestLoginFlow_Restore_ServerDown_KeepsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, sess := newTestLoginFlow(t, ctrl)
	require.NoError(t, sess.SetTokens(context.Background(), "a", "r"))

	m.EXPECT().Me(gomock.Any()).Return(models.UserProfile{}, &adapter.RequestError{
		Op: "auth.me", Kind: adapter.ErrTransport, Err: errors.New("connection refused"),
	})

	_, err := f.Restore(context.Background())
	assert.ErrorIs(t, err, ErrServerUnavailable)
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, LoginAnonymous, f.State())
}

func TestLoginFlow_Restore_NonAdmin_ClearsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, sess := newTestLoginFlow(t, ctrl)
	require.NoError(t, sess.SetTokens(context.Background(), "a", "r"))

	m.EXPECT().Me(gomock.Any()).Return(models.UserProfile{ID: 5, Role: models.RoleStudent}, nil)

	_, err := f.Restore(context.Background())
	assert.ErrorIs(t, err, ErrNotAdmin)
	assert.False(t, sess.IsAuthenticated())
}

// ── Logout & SyncSession ──────────────────────────────────────────────────────

func TestLoginFlow_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, sess := newTestLoginFlow(t, ctrl)
	assert.ErrorIs(t, f.Logout(context.Background()), ErrInvalidLoginTransition)

	toOTPSent(t, f, m)
	m.EXPECT().VerifyOTP(gomock.Any(), testPhone, "123456").Return(adminTokens(t, 1), nil)
	require.NoError(t, f.Verify(context.Background(), "123456"))

	require.NoError(t, f.Logout(context.Background()))
	assert.Equal(t, LoginAnonymous, f.State())
	assert.False(t, sess.IsAuthenticated())
	assert.Empty(t, sess.RefreshToken())
	assert.Zero(t, f.Profile())
}

func TestLoginFlow_SyncSession_ObservesClearedSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, sess := newTestLoginFlow(t, ctrl)
	toOTPSent(t, f, m)
	m.EXPECT().VerifyOTP(gomock.Any(), testPhone, "123456").Return(adminTokens(t, 1), nil)
	require.NoError(t, f.Verify(context.Background(), "123456"))

	assert.Equal(t, LoginAuthenticated, f.SyncSession())

	require.NoError(t, sess.Clear(context.Background()))
	assert.Equal(t, LoginAnonymous, f.SyncSession())
	assert.Equal(t, LoginAnonymous, f.State())
}

func TestLoginFlow_FullScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f, m, sess := newTestLoginFlow(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		m.EXPECT().Login(gomock.Any(), "+998900000000").Return(models.Envelope[any]{Success: true}, nil),
		m.EXPECT().Login(gomock.Any(), testPhone).Return(models.Envelope[any]{Success: true}, nil),
		m.EXPECT().VerifyOTP(gomock.Any(), testPhone, "123456").Return(adminTokens(t, 7), nil),
	)

	require.NoError(t, f.RequestOTP(ctx, "+998900000000"))
	require.NoError(t, f.ChangeNumber())
	require.NoError(t, f.RequestOTP(ctx, testPhone))
	require.NoError(t, f.Verify(ctx, "123456"))
	assert.True(t, sess.IsAuthenticated())

	require.NoError(t, f.Logout(ctx))
	assert.Equal(t, LoginAnonymous, f.State())
}

func TestLoginState_String(t *testing.T) {
	assert.Equal(t, "anonymous", LoginAnonymous.String())
	assert.Equal(t, "otp-sent", LoginOTPSent.String())
	assert.Equal(t, "authenticated", LoginAuthenticated.String())
	assert.Equal(t, "unknown", LoginState(9).String())
}
