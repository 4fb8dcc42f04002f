package http

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/MKhiriev/go-exam-admin/internal/service"
	"github.com/MKhiriev/go-exam-admin/internal/utils"
	"github.com/MKhiriev/go-exam-admin/models"
)

// auth is an HTTP middleware that enforces JWT bearer authentication and
// the administrator role.
//
// On success the user ID and roles from the token are stored in the request
// context under [utils.UserIDCtxKey] and [utils.RolesCtxKey].
//
// Rejections:
//   - 401 UNAUTHORIZED when the header is absent or malformed.
//   - 401 TOKEN_EXPIRED when the token is expired or fails verification.
//   - 403 ACCESS_DENIED when the token does not carry the ADMIN role.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		ctx := r.Context()
		claims, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrTokenIsExpiredOrInvalid, err))
			return
		}

		if !slices.Contains(claims.Roles, models.RoleAdmin) {
			writeError(w, r, service.ErrNotAdmin)
			return
		}

		ctx = context.WithValue(ctx, utils.UserIDCtxKey, userID)
		ctx = context.WithValue(ctx, utils.RolesCtxKey, claims.Roles)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
