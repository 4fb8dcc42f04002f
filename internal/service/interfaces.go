package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-exam-admin/internal/utils"
	"github.com/MKhiriev/go-exam-admin/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService issues one-time codes and token pairs for the mock backend.
type AuthService interface {
	// RequestOTP stores a fresh code for an existing administrator.
	RequestOTP(ctx context.Context, phone string) error
	// VerifyOTP consumes the code and issues a token pair.
	VerifyOTP(ctx context.Context, phone, code string) (models.VerifyResult, error)
	// Refresh consumes refreshToken and issues a new pair.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	// ParseToken validates an access token.
	ParseToken(ctx context.Context, token string) (utils.AccessClaims, error)
	// Profile returns the account the token belongs to.
	Profile(ctx context.Context, userID int64) (models.UserProfile, error)
}

// CatalogService manages subjects, questions and test templates.
type CatalogService interface {
	Subjects(ctx context.Context, mainOnly bool) ([]models.Subject, error)
	Subject(ctx context.Context, id int64) (models.Subject, error)
	CreateSubject(ctx context.Context, subject models.Subject) (models.Subject, error)
	UpdateSubject(ctx context.Context, subject models.Subject) (models.Subject, error)
	DeleteSubject(ctx context.Context, id int64) error

	Questions(ctx context.Context, subjectID int64, page models.PageRequest) (models.Page[models.Question], error)
	Question(ctx context.Context, id int64) (models.Question, error)
	CreateQuestion(ctx context.Context, question models.Question) (models.Question, error)
	UpdateQuestion(ctx context.Context, question models.Question) (models.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error

	Templates(ctx context.Context, subjectID int64, page models.PageRequest) (models.Page[models.TestTemplate], error)
	Template(ctx context.Context, id int64) (models.TestTemplate, error)
	CreateTemplate(ctx context.Context, template models.TestTemplate) (models.TestTemplate, error)
	UpdateTemplate(ctx context.Context, template models.TestTemplate) (models.TestTemplate, error)
	DeleteTemplate(ctx context.Context, id int64) error
}

// UserService manages platform accounts and their access grants.
type UserService interface {
	Users(ctx context.Context, page models.PageRequest) (models.Page[models.UserProfile], error)
	User(ctx context.Context, id int64) (models.UserProfile, error)
	CreateUser(ctx context.Context, user models.UserProfile) (models.UserProfile, error)
	UpdateUser(ctx context.Context, user models.UserProfile) (models.UserProfile, error)
	DeleteUser(ctx context.Context, id int64) error

	Access(ctx context.Context, userID int64) ([]models.AccessGrant, error)
	GrantAccess(ctx context.Context, request models.AccessRequest) (models.AccessGrant, error)
	RevokeAccess(ctx context.Context, request models.AccessRequest) error
}

// FileService stores uploaded images.
type FileService interface {
	// Save writes r under a generated name and returns its public URL path.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	// Dir is the directory uploads are served from.
	Dir() string
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// CatalogServiceWrapper decorates a CatalogService, e.g. with validation.
type CatalogServiceWrapper interface {
	Wrap(CatalogService) CatalogService
}

// UserServiceWrapper decorates a UserService, e.g. with validation.
type UserServiceWrapper interface {
	Wrap(UserService) UserService
}
