package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/models"
)

// SeedDemoData fills an empty mock backend with an administrator account
// bound to adminPhone, a student, a few subjects with questions and two
// test templates. It does nothing when any account already exists.
func SeedDemoData(ctx context.Context, services *Services, adminPhone string) error {
	log := logger.FromContext(ctx)

	existing, err := services.UserService.Users(ctx, models.PageRequest{Size: 1})
	if err != nil {
		return fmt.Errorf("seed: list users: %w", err)
	}
	if existing.Pageable.Total > 0 {
		log.Debug().Int64("users", existing.Pageable.Total).Msg("mock data already present, seeding skipped")
		return nil
	}

	if _, err := services.UserService.CreateUser(ctx, models.UserProfile{
		FullName:    "Administrator",
		PhoneNumber: adminPhone,
		Role:        models.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("seed: admin: %w", err)
	}

	student, err := services.UserService.CreateUser(ctx, models.UserProfile{
		FullName:    "Aziz Karimov",
		PhoneNumber: "+998907654321",
		Role:        models.RoleStudent,
	})
	if err != nil {
		return fmt.Errorf("seed: student: %w", err)
	}

	subjects := make(map[string]models.Subject)
	for _, s := range []models.Subject{
		{Name: "Математика", Calculator: true, Main: true},
		{Name: "Физика", Calculator: true, Main: true},
		{Name: "Родной язык", Main: true},
		{Name: "Английский язык"},
	} {
		created, err := services.CatalogService.CreateSubject(ctx, s)
		if err != nil {
			return fmt.Errorf("seed: subject %q: %w", s.Name, err)
		}
		subjects[s.Name] = created
	}

	math := subjects["Математика"].ID
	for _, q := range []models.Question{
		{
			TestSubjectID: math,
			QuestionType:  models.QuestionTypeSingleChoice,
			QuestionText:  "Чему равно 7 × 8?",
			Position:      1,
			Options: []models.QuestionOption{
				{OptionText: "54", Position: 1},
				{OptionText: "56", IsCorrect: true, Position: 2},
				{OptionText: "64", Position: 3},
			},
		},
		{
			TestSubjectID: math,
			QuestionType:  models.QuestionTypeMultipleChoice,
			QuestionText:  "Какие из чисел простые?",
			Position:      2,
			Options: []models.QuestionOption{
				{OptionText: "2", IsCorrect: true, Position: 1},
				{OptionText: "9", Position: 2},
				{OptionText: "13", IsCorrect: true, Position: 3},
			},
		},
		{
			TestSubjectID: math,
			QuestionType:  models.QuestionTypeWritten,
			QuestionText:  "Найдите x: 2x + 6 = 20",
			WrittenAnswer: "7",
			Position:      3,
		},
		{
			TestSubjectID: subjects["Физика"].ID,
			QuestionType:  models.QuestionTypeSingleChoice,
			QuestionText:  "Единица измерения силы в СИ",
			Position:      1,
			Options: []models.QuestionOption{
				{OptionText: "Ньютон", IsCorrect: true, Position: 1},
				{OptionText: "Джоуль", Position: 2},
			},
		},
	} {
		if _, err := services.CatalogService.CreateQuestion(ctx, q); err != nil {
			return fmt.Errorf("seed: question %q: %w", q.QuestionText, err)
		}
	}

	var firstTemplate models.TestTemplate
	for i, t := range []models.TestTemplate{
		{
			Title:    "ДТМ: математика и английский",
			Duration: 180,
			Price:    50000,
			Subjects: []models.TemplateSubject{
				{Subject: subjects["Математика"], Role: models.SubjectRoleMain},
				{Subject: subjects["Английский язык"], Role: models.SubjectRoleAdditional},
			},
		},
		{
			Title:    "Пробный тест по физике",
			Duration: 60,
			Subjects: []models.TemplateSubject{
				{Subject: subjects["Физика"], Role: models.SubjectRoleMain},
			},
		},
	} {
		created, err := services.CatalogService.CreateTemplate(ctx, t)
		if err != nil {
			return fmt.Errorf("seed: template %q: %w", t.Title, err)
		}
		if i == 0 {
			firstTemplate = created
		}
	}

	if _, err := services.UserService.GrantAccess(ctx, models.AccessRequest{
		UserID:     student.ID,
		TemplateID: firstTemplate.ID,
	}); err != nil {
		return fmt.Errorf("seed: access: %w", err)
	}

	log.Info().Str("admin_phone", adminPhone).Msg("mock data seeded")
	return nil
}
