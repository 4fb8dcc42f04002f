package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-exam-admin/internal/validators"
	"github.com/MKhiriev/go-exam-admin/models"
)

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}

// CatalogValidationService validates subjects, questions and templates
// before passing them to the wrapped CatalogService. Reads pass through.
type CatalogValidationService struct {
	CatalogService
	validator validators.Validator
}

func NewCatalogValidationService() CatalogServiceWrapper {
	return &CatalogValidationService{
		validator: validators.NewExamValidator(),
	}
}

func (v *CatalogValidationService) Wrap(inner CatalogService) CatalogService {
	v.CatalogService = inner
	return v
}

func (v *CatalogValidationService) CreateSubject(ctx context.Context, subject models.Subject) (models.Subject, error) {
	if err := v.validator.Validate(ctx, subject); err != nil {
		return models.Subject{}, invalid(err)
	}
	return v.CatalogService.CreateSubject(ctx, subject)
}

func (v *CatalogValidationService) UpdateSubject(ctx context.Context, subject models.Subject) (models.Subject, error) {
	if err := v.validator.Validate(ctx, subject, validators.FieldID, validators.FieldName, validators.FieldImageURL); err != nil {
		return models.Subject{}, invalid(err)
	}
	return v.CatalogService.UpdateSubject(ctx, subject)
}

func (v *CatalogValidationService) CreateQuestion(ctx context.Context, question models.Question) (models.Question, error) {
	if err := v.validator.Validate(ctx, question); err != nil {
		return models.Question{}, invalid(err)
	}
	return v.CatalogService.CreateQuestion(ctx, question)
}

func (v *CatalogValidationService) UpdateQuestion(ctx context.Context, question models.Question) (models.Question, error) {
	if err := v.validator.Validate(ctx, question, validators.FieldID); err != nil {
		return models.Question{}, invalid(err)
	}
	if err := v.validator.Validate(ctx, question); err != nil {
		return models.Question{}, invalid(err)
	}
	return v.CatalogService.UpdateQuestion(ctx, question)
}

func (v *CatalogValidationService) CreateTemplate(ctx context.Context, template models.TestTemplate) (models.TestTemplate, error) {
	if err := v.validator.Validate(ctx, template); err != nil {
		return models.TestTemplate{}, invalid(err)
	}
	return v.CatalogService.CreateTemplate(ctx, template)
}

func (v *CatalogValidationService) UpdateTemplate(ctx context.Context, template models.TestTemplate) (models.TestTemplate, error) {
	if err := v.validator.Validate(ctx, template, validators.FieldID); err != nil {
		return models.TestTemplate{}, invalid(err)
	}
	if err := v.validator.Validate(ctx, template); err != nil {
		return models.TestTemplate{}, invalid(err)
	}
	return v.CatalogService.UpdateTemplate(ctx, template)
}

// UserValidationService validates accounts and access requests before
// passing them to the wrapped UserService.
type UserValidationService struct {
	UserService
	validator validators.Validator
}

func NewUserValidationService() UserServiceWrapper {
	return &UserValidationService{
		validator: validators.NewExamValidator(),
	}
}

func (v *UserValidationService) Wrap(inner UserService) UserService {
	v.UserService = inner
	return v
}

func (v *UserValidationService) CreateUser(ctx context.Context, user models.UserProfile) (models.UserProfile, error) {
	if err := v.validator.Validate(ctx, user); err != nil {
		return models.UserProfile{}, invalid(err)
	}
	return v.UserService.CreateUser(ctx, user)
}

func (v *UserValidationService) UpdateUser(ctx context.Context, user models.UserProfile) (models.UserProfile, error) {
	if err := v.validator.Validate(ctx, user, validators.FieldID); err != nil {
		return models.UserProfile{}, invalid(err)
	}
	if err := v.validator.Validate(ctx, user); err != nil {
		return models.UserProfile{}, invalid(err)
	}
	return v.UserService.UpdateUser(ctx, user)
}

func (v *UserValidationService) GrantAccess(ctx context.Context, request models.AccessRequest) (models.AccessGrant, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.AccessGrant{}, invalid(err)
	}
	return v.UserService.GrantAccess(ctx, request)
}

func (v *UserValidationService) RevokeAccess(ctx context.Context, request models.AccessRequest) error {
	if err := v.validator.Validate(ctx, request); err != nil {
		return invalid(err)
	}
	return v.UserService.RevokeAccess(ctx, request)
}
