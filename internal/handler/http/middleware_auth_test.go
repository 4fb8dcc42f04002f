package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-exam-admin/internal/app"
	"github.com/MKhiriev/go-exam-admin/internal/service"
	"github.com/MKhiriev/go-exam-admin/internal/utils"
	"github.com/MKhiriev/go-exam-admin/models"
)

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setup      func(m testServices)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "no header",
			setup:      func(testServices) {},
			wantStatus: http.StatusUnauthorized,
			wantCode:   app.CodeUnauthorized,
		},
		{
			name:       "not a bearer header",
			header:     "Basic dXNlcjpwYXNz",
			setup:      func(testServices) {},
			wantStatus: http.StatusUnauthorized,
			wantCode:   app.CodeUnauthorized,
		},
		{
			name:       "bearer without token",
			header:     "Bearer",
			setup:      func(testServices) {},
			wantStatus: http.StatusUnauthorized,
			wantCode:   app.CodeUnauthorized,
		},
		{
			name:   "expired token",
			header: "Bearer expired",
			setup: func(m testServices) {
				m.auth.EXPECT().ParseToken(gomock.Any(), "expired").Return(utils.AccessClaims{}, service.ErrTokenIsExpiredOrInvalid)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   app.CodeTokenExpired,
		},
		{
			name:   "student token",
			header: "Bearer student",
			setup: func(m testServices) {
				m.auth.EXPECT().ParseToken(gomock.Any(), "student").Return(claimsFor(2, models.RoleStudent), nil)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   app.CodeAccessDenied,
		},
		{
			name:   "token without subject",
			header: "Bearer nosub",
			setup: func(m testServices) {
				m.auth.EXPECT().ParseToken(gomock.Any(), "nosub").Return(utils.AccessClaims{Roles: []string{models.RoleAdmin}}, nil)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   app.CodeTokenExpired,
		},
		{
			name:       "admin token",
			header:     "Bearer " + testToken,
			setup:      expectAdmin,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h, m := newTestHandler(t, ctrl)
			tt.setup(m)

			var userID int64
			var roles []string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				userID, _ = utils.GetUserIDFromContext(r.Context())
				roles = utils.GetRolesFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.auth(next).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode == "" {
				assert.Equal(t, int64(1), userID)
				assert.Equal(t, []string{models.RoleAdmin}, roles)
				return
			}

			env := decodeEnvelope[any](t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.ErrorData)
			assert.Equal(t, tt.wantCode, env.ErrorData.ErrorCode)
		})
	}
}
