package service

import (
	"context"

	"github.com/MKhiriev/go-exam-admin/internal/adapter"
	"github.com/MKhiriev/go-exam-admin/models"
)

type clientCatalogService struct {
	adapter adapter.ServerAdapter
}

func NewClientCatalogService(serverAdapter adapter.ServerAdapter) ClientCatalogService {
	return &clientCatalogService{adapter: serverAdapter}
}

func (c *clientCatalogService) Subjects(ctx context.Context) ([]models.Subject, error) {
	subjects, err := c.adapter.Subjects(ctx)
	return subjects, mapAdapterError(err)
}

func (c *clientCatalogService) DeleteSubject(ctx context.Context, id int64) error {
	return mapAdapterError(c.adapter.DeleteSubject(ctx, id))
}

func (c *clientCatalogService) Questions(ctx context.Context, subjectID int64, page models.PageRequest) (models.Page[models.Question], error) {
	questions, err := c.adapter.QuestionsBySubject(ctx, subjectID, page)
	return questions, mapAdapterError(err)
}

func (c *clientCatalogService) DeleteQuestion(ctx context.Context, id int64) error {
	return mapAdapterError(c.adapter.DeleteQuestion(ctx, id))
}

func (c *clientCatalogService) Templates(ctx context.Context) ([]models.TestTemplate, error) {
	templates, err := c.adapter.TestTemplates(ctx)
	return templates, mapAdapterError(err)
}

func (c *clientCatalogService) DeleteTemplate(ctx context.Context, id int64) error {
	return mapAdapterError(c.adapter.DeleteTemplate(ctx, id))
}

func (c *clientCatalogService) Users(ctx context.Context, page models.PageRequest) (models.Page[models.UserProfile], error) {
	users, err := c.adapter.Users(ctx, page)
	return users, mapAdapterError(err)
}

func (c *clientCatalogService) DeleteUser(ctx context.Context, id int64) error {
	return mapAdapterError(c.adapter.DeleteUser(ctx, id))
}

func (c *clientCatalogService) UserAccess(ctx context.Context, userID int64) ([]models.AccessGrant, error) {
	grants, err := c.adapter.UserAccess(ctx, userID)
	return grants, mapAdapterError(err)
}

func (c *clientCatalogService) GrantAccess(ctx context.Context, userID, templateID int64) (models.AccessGrant, error) {
	grant, err := c.adapter.GrantAccess(ctx, userID, templateID)
	return grant, mapAdapterError(err)
}

func (c *clientCatalogService) RevokeAccess(ctx context.Context, userID, templateID int64) error {
	return mapAdapterError(c.adapter.RevokeAccess(ctx, userID, templateID))
}
