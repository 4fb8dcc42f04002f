package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-exam-admin/internal/app"
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/service"
	"github.com/MKhiriev/go-exam-admin/internal/utils"
	"github.com/MKhiriev/go-exam-admin/internal/validators"
	"github.com/MKhiriev/go-exam-admin/models"
)

var requestValidator = validators.NewExamValidator()

// requestOTP handles POST /api/auth/admin/login.
func (h *Handler) requestOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := requestValidator.Validate(ctx, req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	if err := h.services.AuthService.RequestOTP(ctx, req.PhoneNumber); err != nil {
		writeError(w, r, err)
		return
	}

	writeOK[any](w, r, http.StatusOK, nil, app.MsgOTPSent)
}

// verifyOTP handles POST /api/auth/verify.
func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.VerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := requestValidator.Validate(ctx, req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	result, err := h.services.AuthService.VerifyOTP(ctx, req.PhoneNumber, req.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Strs("roles", result.Roles).Msg("otp verified")
	writeOK(w, r, http.StatusOK, result, app.MsgOK)
}

// refreshToken handles GET /api/auth/refresh-token?token=<refresh>.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	pair, err := h.services.AuthService.Refresh(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusOK, pair, app.MsgOK)
}

// me handles GET /api/auth/me.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	profile, err := h.services.AuthService.Profile(ctx, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusOK, profile, app.MsgOK)
}
