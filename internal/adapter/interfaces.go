// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the API client of the exam platform.
//
// [ServerAdapter] decouples the service layer from the REST backend. The
// HTTP implementation ([NewHTTPServerAdapter]) owns a [session.Session],
// attaches its bearer token to every request, refreshes it once on a 401
// and retries the request, and unwraps the backend's envelope. Every method
// returns either the payload or a *[RequestError] that matches one of the
// kind sentinels in errors.go with [errors.Is].
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-exam-admin/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the exam platform backend.
type ServerAdapter interface {
	// Login asks the backend to send an OTP to phone. The returned envelope
	// is the backend's acknowledgement.
	Login(ctx context.Context, phone string) (models.Envelope[any], error)

	// VerifyOTP exchanges phone and code for a token pair and the user's
	// roles. It does not store the tokens; the caller persists them.
	VerifyOTP(ctx context.Context, phone, code string) (models.VerifyResult, error)

	// RefreshTokenIfNeeded exchanges the session's refresh token for a new
	// pair. It returns false without a network call when no refresh token is
	// stored, and clears the session when the exchange fails. Concurrent
	// callers share one in-flight refresh.
	RefreshTokenIfNeeded(ctx context.Context) bool

	// Me returns the profile of the authenticated user.
	Me(ctx context.Context) (models.UserProfile, error)

	Subjects(ctx context.Context) ([]models.Subject, error)
	MainSubjects(ctx context.Context) ([]models.Subject, error)
	Subject(ctx context.Context, id int64) (models.Subject, error)
	CreateSubject(ctx context.Context, subject models.Subject) (models.Subject, error)
	UpdateSubject(ctx context.Context, subject models.Subject) (models.Subject, error)
	DeleteSubject(ctx context.Context, id int64) error

	QuestionsBySubject(ctx context.Context, subjectID int64, page models.PageRequest) (models.Page[models.Question], error)
	Question(ctx context.Context, id int64) (models.Question, error)
	CreateQuestion(ctx context.Context, question models.Question) (models.Question, error)
	UpdateQuestion(ctx context.Context, question models.Question) (models.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error

	TemplatesBySubject(ctx context.Context, subjectID int64, page models.PageRequest) (models.Page[models.TestTemplate], error)
	Template(ctx context.Context, id int64) (models.TestTemplate, error)
	CreateTemplate(ctx context.Context, template models.TestTemplate) (models.TestTemplate, error)
	UpdateTemplate(ctx context.Context, template models.TestTemplate) (models.TestTemplate, error)
	DeleteTemplate(ctx context.Context, id int64) error

	// TestTemplates lists the templates of every main subject, in subject
	// order. How a failing subject is handled depends on the configured
	// fan-out strategy.
	TestTemplates(ctx context.Context) ([]models.TestTemplate, error)

	Users(ctx context.Context, page models.PageRequest) (models.Page[models.UserProfile], error)
	User(ctx context.Context, id int64) (models.UserProfile, error)
	CreateUser(ctx context.Context, user models.UserProfile) (models.UserProfile, error)
	UpdateUser(ctx context.Context, user models.UserProfile) (models.UserProfile, error)
	DeleteUser(ctx context.Context, id int64) error

	UserAccess(ctx context.Context, userID int64) ([]models.AccessGrant, error)
	GrantAccess(ctx context.Context, userID, templateID int64) (models.AccessGrant, error)
	RevokeAccess(ctx context.Context, userID, templateID int64) error

	// UploadImage sends r as a multipart file and returns the URL under
	// which the backend serves it.
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
}
