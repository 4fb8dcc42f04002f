// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the mock
// backend handlers and by the client when it interprets failed envelopes.
//
// Code* constants travel in errorData.errorCode of a failed envelope and are
// what the client matches on. Msg* constants are the human-readable messages
// put next to them.
package app

// Error codes carried in errorData.errorCode.
const (
	// CodeValidation marks a request whose body or parameters failed
	// validation.
	CodeValidation = "VALIDATION_ERROR"

	// CodeInvalidOTP marks a verification attempt with a wrong code.
	CodeInvalidOTP = "INVALID_OTP"

	// CodeOTPExpired marks a verification attempt after the code expired or
	// before one was requested.
	CodeOTPExpired = "OTP_EXPIRED"

	// CodeTokenExpired marks a request whose access token is expired or
	// cannot be verified.
	CodeTokenExpired = "TOKEN_EXPIRED"

	// CodeInvalidRefreshToken marks a refresh with an unknown, consumed or
	// expired refresh token.
	CodeInvalidRefreshToken = "INVALID_REFRESH_TOKEN"

	// CodeUnauthorized marks a request without credentials.
	CodeUnauthorized = "UNAUTHORIZED"

	// CodeAccessDenied marks an authenticated request from an account that
	// is not an administrator.
	CodeAccessDenied = "ACCESS_DENIED"

	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeReferenceNotFound = "REFERENCE_NOT_FOUND"
	CodeInternal          = "INTERNAL_ERROR"
)

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	MsgInvalidOTP = "invalid verification code"
	MsgOTPExpired = "verification code expired"
	MsgOTPSent    = "verification code sent"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	MsgInvalidRefreshToken = "refresh token is invalid"
	MsgNoToken             = "no token provided"
	MsgAdminOnly           = "administrator role required"

	MsgNotFound          = "resource not found"
	MsgAlreadyExists     = "resource already exists"
	MsgReferenceNotFound = "referenced resource does not exist"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	MsgOK      = "ok"
	MsgCreated = "created"
	MsgDeleted = "deleted"
)
