package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID           = errors.New("invalid ID")
	ErrInvalidPhoneNumber  = errors.New("invalid phone number")
	ErrInvalidOTPCode      = errors.New("invalid OTP code")
	ErrEmptyName           = errors.New("name is required")
	ErrEmptyFullName       = errors.New("full name is required")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidURL          = errors.New("invalid URL")
	ErrEmptyQuestionText   = errors.New("question text is required")
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrInvalidPosition     = errors.New("position must not be negative")
	ErrInvalidOptions      = errors.New("invalid answer options")
	ErrEmptyWrittenAnswer  = errors.New("written answer is required")
	ErrEmptyTitle          = errors.New("title is required")
	ErrInvalidDuration     = errors.New("duration must not be negative")
	ErrInvalidPrice        = errors.New("price must not be negative")
	ErrInvalidSubjects     = errors.New("template needs exactly one main subject")
	ErrDuplicateSubject    = errors.New("subject listed twice in template")
)
