// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-exam-admin/internal/adapter"
	"github.com/MKhiriev/go-exam-admin/internal/app"
)

// mapAdapterError translates an adapter failure into a service business
// error. The backend's errorData.errorCode wins over the HTTP status; the
// backend message is kept for display.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	var reqErr *adapter.RequestError
	if !errors.As(err, &reqErr) {
		return err
	}

	target := businessError(reqErr)
	if target == nil {
		return err
	}
	if reqErr.Message == "" {
		return target
	}
	return fmt.Errorf("%w: %s", target, reqErr.Message)
}

func businessError(reqErr *adapter.RequestError) error {
	switch reqErr.Code {
	case app.CodeInvalidOTP:
		return ErrInvalidOTP
	case app.CodeOTPExpired:
		return ErrOTPExpired
	case app.CodeTokenExpired, app.CodeInvalidRefreshToken, app.CodeUnauthorized:
		return ErrSessionExpired
	case app.CodeAccessDenied:
		return ErrAccessDenied
	case app.CodeNotFound, app.CodeReferenceNotFound:
		return ErrNotFound
	case app.CodeAlreadyExists:
		return ErrAlreadyExists
	case app.CodeValidation:
		return ErrInvalidDataProvided
	}

	switch {
	case errors.Is(reqErr, adapter.ErrUnauthorized):
		return ErrSessionExpired
	case errors.Is(reqErr, adapter.ErrTimeout),
		errors.Is(reqErr, adapter.ErrTransport),
		errors.Is(reqErr, adapter.ErrDecode),
		errors.Is(reqErr, adapter.ErrInternalServerError),
		errors.Is(reqErr, adapter.ErrBadGateway):
		return ErrServerUnavailable
	case errors.Is(reqErr, adapter.ErrForbidden):
		return ErrAccessDenied
	case errors.Is(reqErr, adapter.ErrNotFound):
		return ErrNotFound
	case errors.Is(reqErr, adapter.ErrConflict):
		return ErrAlreadyExists
	case errors.Is(reqErr, adapter.ErrBadRequest):
		return ErrInvalidDataProvided
	}

	return nil
}
