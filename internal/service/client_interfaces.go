package service

import (
	"context"

	"github.com/MKhiriev/go-exam-admin/models"
)

// LoginState is a state of the console login flow.
type LoginState int

const (
	// LoginAnonymous means no session: the console asks for a phone number.
	LoginAnonymous LoginState = iota
	// LoginOTPSent means a code was requested and the console asks for it.
	LoginOTPSent
	// LoginAuthenticated means the session holds a token pair.
	LoginAuthenticated
)

func (s LoginState) String() string {
	switch s {
	case LoginAnonymous:
		return "anonymous"
	case LoginOTPSent:
		return "otp-sent"
	case LoginAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ClientAuthService defines the console's phone + OTP login state machine.
// Calling a method from a state that does not allow it returns
// ErrInvalidLoginTransition and leaves the state unchanged.
type ClientAuthService interface {
	// State returns the current state.
	State() LoginState

	// Phone returns the number the pending or current login uses.
	Phone() string

	// Profile returns the logged-in account. Zero unless authenticated.
	Profile() models.UserProfile

	// RequestOTP asks the backend to send a code to phone.
	// Anonymous → OTPSent on success; the state is unchanged on failure.
	RequestOTP(ctx context.Context, phone string) error

	// ChangeNumber abandons the pending code. OTPSent → Anonymous.
	ChangeNumber() error

	// Verify exchanges code for a token pair and persists it.
	// OTPSent → Authenticated on success. A wrong code keeps OTPSent so the
	// user can retry; a non-admin account returns to Anonymous.
	Verify(ctx context.Context, code string) error

	// Restore resumes a persisted session by fetching the profile.
	// Anonymous → Authenticated on success. Returns ErrNoSession when
	// nothing is persisted.
	Restore(ctx context.Context) (models.UserProfile, error)

	// Logout clears the session. Authenticated → Anonymous.
	Logout(ctx context.Context) error

	// SyncSession moves Authenticated → Anonymous when the session was
	// cleared underneath the flow (a failed refresh) and returns the
	// resulting state.
	SyncSession() LoginState
}

// ClientCatalogService defines the catalogue operations of the console.
// Errors are already mapped to business errors of this package.
type ClientCatalogService interface {
	Subjects(ctx context.Context) ([]models.Subject, error)
	DeleteSubject(ctx context.Context, id int64) error

	Questions(ctx context.Context, subjectID int64, page models.PageRequest) (models.Page[models.Question], error)
	DeleteQuestion(ctx context.Context, id int64) error

	// Templates lists the templates of every main subject.
	Templates(ctx context.Context) ([]models.TestTemplate, error)
	DeleteTemplate(ctx context.Context, id int64) error

	Users(ctx context.Context, page models.PageRequest) (models.Page[models.UserProfile], error)
	DeleteUser(ctx context.Context, id int64) error

	UserAccess(ctx context.Context, userID int64) ([]models.AccessGrant, error)
	GrantAccess(ctx context.Context, userID, templateID int64) (models.AccessGrant, error)
	RevokeAccess(ctx context.Context, userID, templateID int64) error
}
