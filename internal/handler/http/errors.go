// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Errors produced while reading a request, before the service layer is
// involved.
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request has no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not of
	// the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	ErrInvalidJSON    = errors.New("invalid JSON was passed")
	ErrInvalidIDParam = errors.New("invalid id in path")
	ErrInvalidPage    = errors.New("invalid page parameters")
	ErrNoFile         = errors.New("multipart field `file` is missing")
)
