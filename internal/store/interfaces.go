package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-exam-admin/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KeyValueStore is the durable string map behind the client session.
type KeyValueStore interface {
	// Get returns the value stored under key, or [ErrKeyNotFound].
	Get(ctx context.Context, key string) (string, error)
	// SetMany writes all pairs atomically.
	SetMany(ctx context.Context, values map[string]string) error
	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// SubjectRepository persists exam subjects.
type SubjectRepository interface {
	ListSubjects(ctx context.Context, mainOnly bool) ([]models.Subject, error)
	GetSubject(ctx context.Context, id int64) (models.Subject, error)
	CreateSubject(ctx context.Context, subject models.Subject) (models.Subject, error)
	UpdateSubject(ctx context.Context, subject models.Subject) (models.Subject, error)
	DeleteSubject(ctx context.Context, id int64) error
}

// QuestionRepository persists questions together with their options.
type QuestionRepository interface {
	ListQuestions(ctx context.Context, subjectID int64, page models.PageRequest) ([]models.Question, int64, error)
	GetQuestion(ctx context.Context, id int64) (models.Question, error)
	CreateQuestion(ctx context.Context, question models.Question) (models.Question, error)
	UpdateQuestion(ctx context.Context, question models.Question) (models.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
}

// TemplateRepository persists test templates and their subject links.
type TemplateRepository interface {
	ListTemplates(ctx context.Context, subjectID int64, page models.PageRequest) ([]models.TestTemplate, int64, error)
	GetTemplate(ctx context.Context, id int64) (models.TestTemplate, error)
	CreateTemplate(ctx context.Context, template models.TestTemplate) (models.TestTemplate, error)
	UpdateTemplate(ctx context.Context, template models.TestTemplate) (models.TestTemplate, error)
	DeleteTemplate(ctx context.Context, id int64) error
}

// UserRepository persists platform accounts.
type UserRepository interface {
	ListUsers(ctx context.Context, page models.PageRequest) ([]models.UserProfile, int64, error)
	GetUser(ctx context.Context, id int64) (models.UserProfile, error)
	FindUserByPhone(ctx context.Context, phone string) (models.UserProfile, error)
	CreateUser(ctx context.Context, user models.UserProfile) (models.UserProfile, error)
	UpdateUser(ctx context.Context, user models.UserProfile) (models.UserProfile, error)
	DeleteUser(ctx context.Context, id int64) error
}

// AccessRepository persists test access grants.
type AccessRepository interface {
	ListAccess(ctx context.Context, userID int64) ([]models.AccessGrant, error)
	GrantAccess(ctx context.Context, grant models.AccessGrant) (models.AccessGrant, error)
	RevokeAccess(ctx context.Context, userID, templateID int64) error
}

// AuthRepository persists one-time codes and refresh tokens. Both are
// stored hashed.
type AuthRepository interface {
	SaveOTP(ctx context.Context, phone, codeHash string, expiresAt time.Time) error
	GetOTP(ctx context.Context, phone string) (codeHash string, expiresAt time.Time, err error)
	DeleteOTP(ctx context.Context, phone string) error
	SaveRefreshToken(ctx context.Context, tokenHash string, userID int64, expiresAt time.Time) error
	// ConsumeRefreshToken deletes the token and returns its owner.
	ConsumeRefreshToken(ctx context.Context, tokenHash string) (userID int64, expiresAt time.Time, err error)
}

// FileStorage keeps uploaded files outside the database.
type FileStorage interface {
	// Save writes r under name and returns the number of bytes written.
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	// Dir is the directory files are written to.
	Dir() string
}
