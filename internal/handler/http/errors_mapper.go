package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-exam-admin/internal/app"
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/service"
	"github.com/MKhiriev/go-exam-admin/internal/store"
)

// failure is the envelope error an error is rendered as.
type failure struct {
	status  int
	code    string
	message string
}

// errorFailures is checked in order; the first matching target wins.
var errorFailures = []struct {
	target error
	failure
}{
	{ErrInvalidJSON, failure{http.StatusBadRequest, app.CodeValidation, app.MsgInvalidDataProvided}},
	{ErrInvalidIDParam, failure{http.StatusBadRequest, app.CodeValidation, app.MsgInvalidDataProvided}},
	{ErrInvalidPage, failure{http.StatusBadRequest, app.CodeValidation, app.MsgInvalidDataProvided}},
	{ErrNoFile, failure{http.StatusBadRequest, app.CodeValidation, app.MsgInvalidDataProvided}},
	{store.ErrFileTooLarge, failure{http.StatusBadRequest, app.CodeValidation, "file too large"}},
	{service.ErrInvalidDataProvided, failure{http.StatusBadRequest, app.CodeValidation, app.MsgInvalidDataProvided}},

	{service.ErrInvalidOTP, failure{http.StatusBadRequest, app.CodeInvalidOTP, app.MsgInvalidOTP}},
	{service.ErrOTPExpired, failure{http.StatusBadRequest, app.CodeOTPExpired, app.MsgOTPExpired}},
	{service.ErrInvalidRefreshToken, failure{http.StatusUnauthorized, app.CodeInvalidRefreshToken, app.MsgInvalidRefreshToken}},
	{service.ErrTokenIsExpiredOrInvalid, failure{http.StatusUnauthorized, app.CodeTokenExpired, app.MsgTokenIsExpiredOrInvalid}},
	{ErrEmptyAuthorizationHeader, failure{http.StatusUnauthorized, app.CodeUnauthorized, app.MsgNoToken}},
	{ErrInvalidAuthorizationHeader, failure{http.StatusUnauthorized, app.CodeUnauthorized, app.MsgNoToken}},
	{service.ErrNotAdmin, failure{http.StatusForbidden, app.CodeAccessDenied, app.MsgAdminOnly}},

	{store.ErrNotFound, failure{http.StatusNotFound, app.CodeNotFound, app.MsgNotFound}},
	{store.ErrAlreadyExists, failure{http.StatusConflict, app.CodeAlreadyExists, app.MsgAlreadyExists}},
	{store.ErrReferenceNotFound, failure{http.StatusUnprocessableEntity, app.CodeReferenceNotFound, app.MsgReferenceNotFound}},
}

func failureFromError(err error) failure {
	for _, f := range errorFailures {
		if errors.Is(err, f.target) {
			return f.failure
		}
	}
	return failure{http.StatusInternalServerError, app.CodeInternal, app.MsgInternalServerError}
}

// writeError logs err and answers with the matching failed envelope.
// Validation failures carry the validator message in errorData.details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	f := failureFromError(err)

	log := logger.FromRequest(r)
	if f.status >= http.StatusInternalServerError {
		log.Err(err).Str("uri", r.RequestURI).Msg("request failed")
	} else {
		log.Warn().Err(err).Str("code", f.code).Msg("request rejected")
	}

	var details any
	if f.code == app.CodeValidation {
		details = err.Error()
	}

	writeFailure(w, r, f.status, f.code, f.message, details)
}
