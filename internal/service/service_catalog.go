package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/store"
	"github.com/MKhiriev/go-exam-admin/models"
)

type catalogService struct {
	subjects  store.SubjectRepository
	questions store.QuestionRepository
	templates store.TemplateRepository

	logger *logger.Logger
}

func NewCatalogService(storages *store.MockStorages, logger *logger.Logger) CatalogService {
	return &catalogService{
		subjects:  storages.Subjects,
		questions: storages.Questions,
		templates: storages.Templates,
		logger:    logger,
	}
}

// ── subjects ──────────────────────────────────────────────────────────────────

func (c *catalogService) Subjects(ctx context.Context, mainOnly bool) ([]models.Subject, error) {
	subjects, err := c.subjects.ListSubjects(ctx, mainOnly)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

func (c *catalogService) Subject(ctx context.Context, id int64) (models.Subject, error) {
	subject, err := c.subjects.GetSubject(ctx, id)
	if err != nil {
		return models.Subject{}, fmt.Errorf("get subject %d: %w", id, err)
	}
	return subject, nil
}

func (c *catalogService) CreateSubject(ctx context.Context, subject models.Subject) (models.Subject, error) {
	created, err := c.subjects.CreateSubject(ctx, subject)
	if err != nil {
		return models.Subject{}, fmt.Errorf("create subject: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("subject_id", created.ID).Msg("subject created")
	return created, nil
}

func (c *catalogService) UpdateSubject(ctx context.Context, subject models.Subject) (models.Subject, error) {
	updated, err := c.subjects.UpdateSubject(ctx, subject)
	if err != nil {
		return models.Subject{}, fmt.Errorf("update subject %d: %w", subject.ID, err)
	}
	return updated, nil
}

func (c *catalogService) DeleteSubject(ctx context.Context, id int64) error {
	if err := c.subjects.DeleteSubject(ctx, id); err != nil {
		return fmt.Errorf("delete subject %d: %w", id, err)
	}

	logger.FromContext(ctx).Info().Int64("subject_id", id).Msg("subject deleted")
	return nil
}

// ── questions ─────────────────────────────────────────────────────────────────

func (c *catalogService) Questions(ctx context.Context, subjectID int64, page models.PageRequest) (models.Page[models.Question], error) {
	if _, err := c.subjects.GetSubject(ctx, subjectID); err != nil {
		return models.Page[models.Question]{}, fmt.Errorf("get subject %d: %w", subjectID, err)
	}

	questions, total, err := c.questions.ListQuestions(ctx, subjectID, page)
	if err != nil {
		return models.Page[models.Question]{}, fmt.Errorf("list questions: %w", err)
	}

	return models.Page[models.Question]{Items: questions, Pageable: models.NewPageable(page, total)}, nil
}

func (c *catalogService) Question(ctx context.Context, id int64) (models.Question, error) {
	question, err := c.questions.GetQuestion(ctx, id)
	if err != nil {
		return models.Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return question, nil
}

func (c *catalogService) CreateQuestion(ctx context.Context, question models.Question) (models.Question, error) {
	created, err := c.questions.CreateQuestion(ctx, question)
	if err != nil {
		return models.Question{}, fmt.Errorf("create question: %w", err)
	}
	return created, nil
}

func (c *catalogService) UpdateQuestion(ctx context.Context, question models.Question) (models.Question, error) {
	updated, err := c.questions.UpdateQuestion(ctx, question)
	if err != nil {
		return models.Question{}, fmt.Errorf("update question %d: %w", question.ID, err)
	}
	return updated, nil
}

func (c *catalogService) DeleteQuestion(ctx context.Context, id int64) error {
	if err := c.questions.DeleteQuestion(ctx, id); err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	return nil
}

// ── templates ─────────────────────────────────────────────────────────────────

func (c *catalogService) Templates(ctx context.Context, subjectID int64, page models.PageRequest) (models.Page[models.TestTemplate], error) {
	if _, err := c.subjects.GetSubject(ctx, subjectID); err != nil {
		return models.Page[models.TestTemplate]{}, fmt.Errorf("get subject %d: %w", subjectID, err)
	}

	templates, total, err := c.templates.ListTemplates(ctx, subjectID, page)
	if err != nil {
		return models.Page[models.TestTemplate]{}, fmt.Errorf("list templates: %w", err)
	}

	return models.Page[models.TestTemplate]{Items: templates, Pageable: models.NewPageable(page, total)}, nil
}

func (c *catalogService) Template(ctx context.Context, id int64) (models.TestTemplate, error) {
	template, err := c.templates.GetTemplate(ctx, id)
	if err != nil {
		return models.TestTemplate{}, fmt.Errorf("get template %d: %w", id, err)
	}
	return template, nil
}

func (c *catalogService) CreateTemplate(ctx context.Context, template models.TestTemplate) (models.TestTemplate, error) {
	created, err := c.templates.CreateTemplate(ctx, template)
	if err != nil {
		return models.TestTemplate{}, fmt.Errorf("create template: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("template_id", created.ID).Msg("template created")
	return created, nil
}

func (c *catalogService) UpdateTemplate(ctx context.Context, template models.TestTemplate) (models.TestTemplate, error) {
	updated, err := c.templates.UpdateTemplate(ctx, template)
	if err != nil {
		return models.TestTemplate{}, fmt.Errorf("update template %d: %w", template.ID, err)
	}
	return updated, nil
}

func (c *catalogService) DeleteTemplate(ctx context.Context, id int64) error {
	if err := c.templates.DeleteTemplate(ctx, id); err != nil {
		return fmt.Errorf("delete template %d: %w", id, err)
	}

	logger.FromContext(ctx).Info().Int64("template_id", id).Msg("template deleted")
	return nil
}
