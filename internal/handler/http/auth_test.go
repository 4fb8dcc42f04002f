package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-exam-admin/internal/app"
	"github.com/MKhiriev/go-exam-admin/internal/service"
	"github.com/MKhiriev/go-exam-admin/internal/store"
	"github.com/MKhiriev/go-exam-admin/models"
)

const phone = "+998901234567"

// ─────────────────────────────────────────────
// POST /api/auth/admin/login
// ─────────────────────────────────────────────

func TestRequestOTP(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		setup      func(m testServices)
		wantStatus int
		wantCode   string
	}{
		{
			name: "otp sent",
			body: models.LoginRequest{PhoneNumber: phone},
			setup: func(m testServices) {
				m.auth.EXPECT().RequestOTP(gomock.Any(), phone).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid phone",
			body:       models.LoginRequest{PhoneNumber: "12"},
			setup:      func(testServices) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   app.CodeValidation,
		},
		{
			name: "unknown phone",
			body: models.LoginRequest{PhoneNumber: phone},
			setup: func(m testServices) {
				m.auth.EXPECT().RequestOTP(gomock.Any(), phone).Return(store.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   app.CodeNotFound,
		},
		{
			name: "not an admin",
			body: models.LoginRequest{PhoneNumber: phone},
			setup: func(m testServices) {
				m.auth.EXPECT().RequestOTP(gomock.Any(), phone).Return(service.ErrNotAdmin)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   app.CodeAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h, m := newTestHandler(t, ctrl)
			tt.setup(m)

			rec := do(t, h.Init(), http.MethodPost, "/api/auth/admin/login", tt.body, false)
			require.Equal(t, tt.wantStatus, rec.Code)

			env := decodeEnvelope[any](t, rec)
			assert.Equal(t, tt.wantStatus, env.Status)
			if tt.wantCode == "" {
				assert.True(t, env.Success)
				assert.Equal(t, app.MsgOTPSent, env.Message)
				return
			}
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantCode, env.ErrorData.ErrorCode)
		})
	}
}

func TestRequestOTP_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)

	req := strings.NewReader("{not json")
	rec := doRaw(t, h.Init(), http.MethodPost, "/api/auth/admin/login", req, "application/json", false)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope[any](t, rec)
	assert.Equal(t, app.CodeValidation, env.ErrorData.ErrorCode)
	assert.NotNil(t, env.ErrorData.Details)
}

// ─────────────────────────────────────────────
// POST /api/auth/verify
// ─────────────────────────────────────────────

func TestVerifyOTP(t *testing.T) {
	result := models.VerifyResult{
		TokenPair: models.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
		Roles:     []string{models.RoleAdmin},
	}

	tests := []struct {
		name       string
		body       models.VerifyRequest
		setup      func(m testServices)
		wantStatus int
		wantCode   string
	}{
		{
			name: "verified",
			body: models.VerifyRequest{PhoneNumber: phone, Code: "123456"},
			setup: func(m testServices) {
				m.auth.EXPECT().VerifyOTP(gomock.Any(), phone, "123456").Return(result, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong code",
			body: models.VerifyRequest{PhoneNumber: phone, Code: "000000"},
			setup: func(m testServices) {
				m.auth.EXPECT().VerifyOTP(gomock.Any(), phone, "000000").Return(models.VerifyResult{}, service.ErrInvalidOTP)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   app.CodeInvalidOTP,
		},
		{
			name: "expired code",
			body: models.VerifyRequest{PhoneNumber: phone, Code: "123456"},
			setup: func(m testServices) {
				m.auth.EXPECT().VerifyOTP(gomock.Any(), phone, "123456").Return(models.VerifyResult{}, service.ErrOTPExpired)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   app.CodeOTPExpired,
		},
		{
			name:       "malformed code",
			body:       models.VerifyRequest{PhoneNumber: phone, Code: "12"},
			setup:      func(testServices) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   app.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h, m := newTestHandler(t, ctrl)
			tt.setup(m)

			rec := do(t, h.Init(), http.MethodPost, "/api/auth/verify", tt.body, false)
			require.Equal(t, tt.wantStatus, rec.Code)

			env := decodeEnvelope[models.VerifyResult](t, rec)
			if tt.wantCode == "" {
				assert.True(t, env.Success)
				assert.Equal(t, result, env.Data)
				return
			}
			assert.Equal(t, tt.wantCode, env.ErrorData.ErrorCode)
		})
	}
}

// ─────────────────────────────────────────────
// GET /api/auth/refresh-token
// ─────────────────────────────────────────────

func TestRefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl)
	router := h.Init()

	pair := models.TokenPair{AccessToken: "a2", RefreshToken: "r2"}
	m.auth.EXPECT().Refresh(gomock.Any(), "r1").Return(pair, nil)
	m.auth.EXPECT().Refresh(gomock.Any(), "stale").Return(models.TokenPair{}, service.ErrInvalidRefreshToken)

	rec := do(t, router, http.MethodGet, "/api/auth/refresh-token?token=r1", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pair, decodeEnvelope[models.TokenPair](t, rec).Data)

	rec = do(t, router, http.MethodGet, "/api/auth/refresh-token?token=stale", nil, false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, app.CodeInvalidRefreshToken, decodeEnvelope[any](t, rec).ErrorData.ErrorCode)
}

// ─────────────────────────────────────────────
// GET /api/auth/me
// ─────────────────────────────────────────────

func TestMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl)
	expectAdmin(m)

	profile := models.UserProfile{ID: 1, FullName: "Admin", PhoneNumber: phone, Role: models.RoleAdmin}
	m.auth.EXPECT().Profile(gomock.Any(), int64(1)).Return(profile, nil)

	rec := do(t, h.Init(), http.MethodGet, "/api/auth/me", nil, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, profile, decodeEnvelope[models.UserProfile](t, rec).Data)
}

func TestMe_RequiresToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)
	rec := do(t, h.Init(), http.MethodGet, "/api/auth/me", nil, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
