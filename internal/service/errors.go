package service

import "errors"

// Mock backend errors.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrInvalidOTP          = errors.New("invalid verification code")
	ErrOTPExpired          = errors.New("verification code expired or not requested")
	ErrInvalidRefreshToken = errors.New("refresh token is invalid or expired")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrNotAdmin                = errors.New("administrator role required")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrUploadFailed          = errors.New("file upload failed")
)

// Console errors produced by mapping adapter failures.
var (
	ErrInvalidLoginTransition = errors.New("invalid login transition")
	ErrNoSession              = errors.New("no persisted session")
	ErrSessionExpired         = errors.New("session expired, please log in again")
	ErrServerUnavailable      = errors.New("server unavailable")
	ErrNotFound               = errors.New("not found")
	ErrAlreadyExists          = errors.New("already exists")
	ErrAccessDenied           = errors.New("access denied")
)
