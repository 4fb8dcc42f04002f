package tui

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-exam-admin/internal/service"
	"github.com/MKhiriev/go-exam-admin/models"
)

// listPageSize is the page size of the paginated console lists.
const listPageSize = 20

func subjectsList(catalog service.ClientCatalogService) listConfig {
	return listConfig{
		page:  pageSubjects,
		title: "ПРЕДМЕТЫ",
		back:  pageMenu,
		columns: []column{
			{"ID", 5}, {"Название", 28}, {"Основной", 8}, {"Калькулятор", 11},
		},
		load: func(ctx context.Context, _ int64, _ int) (listPage, error) {
			subjects, err := catalog.Subjects(ctx)
			if err != nil {
				return listPage{}, err
			}
			rows := make([]listRow, 0, len(subjects))
			for _, s := range subjects {
				rows = append(rows, listRow{
					id:    s.ID,
					name:  s.Name,
					cells: []string{strconv.FormatInt(s.ID, 10), s.Name, yesNo(s.Main), yesNo(s.Calculator)},
				})
			}
			return listPage{rows: rows, total: int64(len(rows))}, nil
		},
		remove: func(ctx context.Context, _ int64, row listRow) error {
			return catalog.DeleteSubject(ctx, row.id)
		},
		open: func(row listRow) tea.Cmd {
			return navigate(pageQuestions, scopeMsg{page: pageQuestions, id: row.id, label: row.name})
		},
		openHint: "вопросы",
	}
}

func questionsList(catalog service.ClientCatalogService) listConfig {
	return listConfig{
		page:   pageQuestions,
		title:  "ВОПРОСЫ",
		back:   pageSubjects,
		scoped: true,
		columns: []column{
			{"ID", 5}, {"№", 3}, {"Тип", 10}, {"Вопрос", 40},
		},
		load: func(ctx context.Context, subjectID int64, page int) (listPage, error) {
			questions, err := catalog.Questions(ctx, subjectID, models.PageRequest{Page: page, Size: listPageSize})
			if err != nil {
				return listPage{}, err
			}
			rows := make([]listRow, 0, len(questions.Items))
			for _, q := range questions.Items {
				rows = append(rows, listRow{
					id:   q.ID,
					name: q.QuestionText,
					cells: []string{
						strconv.FormatInt(q.ID, 10),
						strconv.Itoa(q.Position),
						questionTypeLabel(q.QuestionType),
						q.QuestionText,
					},
				})
			}
			return pageOf(rows, questions.Pageable), nil
		},
		remove: func(ctx context.Context, _ int64, row listRow) error {
			return catalog.DeleteQuestion(ctx, row.id)
		},
	}
}

func templatesList(catalog service.ClientCatalogService) listConfig {
	return listConfig{
		page:  pageTemplates,
		title: "ШАБЛОНЫ ТЕСТОВ",
		back:  pageMenu,
		columns: []column{
			{"ID", 5}, {"Название", 30}, {"Основной предмет", 18}, {"Время", 8}, {"Цена", 12},
		},
		load: func(ctx context.Context, _ int64, _ int) (listPage, error) {
			templates, err := catalog.Templates(ctx)
			if err != nil {
				return listPage{}, err
			}
			rows := make([]listRow, 0, len(templates))
			for _, t := range templates {
				main := "-"
				if s, ok := t.MainSubject(); ok && s.Name != "" {
					main = s.Name
				}
				rows = append(rows, listRow{
					id:   t.ID,
					name: t.Title,
					cells: []string{
						strconv.FormatInt(t.ID, 10),
						t.Title,
						main,
						formatDuration(t.Duration),
						formatPrice(t.Price),
					},
				})
			}
			return listPage{rows: rows, total: int64(len(rows))}, nil
		},
		remove: func(ctx context.Context, _ int64, row listRow) error {
			return catalog.DeleteTemplate(ctx, row.id)
		},
	}
}

func usersList(catalog service.ClientCatalogService) listConfig {
	return listConfig{
		page:  pageUsers,
		title: "ПОЛЬЗОВАТЕЛИ",
		back:  pageMenu,
		columns: []column{
			{"ID", 5}, {"ФИО", 28}, {"Телефон", 14}, {"Роль", 13},
		},
		load: func(ctx context.Context, _ int64, page int) (listPage, error) {
			users, err := catalog.Users(ctx, models.PageRequest{Page: page, Size: listPageSize})
			if err != nil {
				return listPage{}, err
			}
			rows := make([]listRow, 0, len(users.Items))
			for _, u := range users.Items {
				rows = append(rows, listRow{
					id:    u.ID,
					name:  u.FullName,
					cells: []string{strconv.FormatInt(u.ID, 10), u.FullName, u.PhoneNumber, roleLabel(u.Role)},
				})
			}
			return pageOf(rows, users.Pageable), nil
		},
		remove: func(ctx context.Context, _ int64, row listRow) error {
			return catalog.DeleteUser(ctx, row.id)
		},
		open: func(row listRow) tea.Cmd {
			return navigate(pageAccess, scopeMsg{page: pageAccess, id: row.id, label: row.name})
		},
		openHint: "доступы",
	}
}

// accessList shows the templates a user may take. Rows are keyed by
// template ID; "g" grants a template by ID and "d" revokes the grant.
func accessList(catalog service.ClientCatalogService) listConfig {
	return listConfig{
		page:   pageAccess,
		title:  "ДОСТУПЫ",
		back:   pageUsers,
		scoped: true,
		columns: []column{
			{"Шаблон", 8}, {"Выдан", 20},
		},
		load: func(ctx context.Context, userID int64, _ int) (listPage, error) {
			grants, err := catalog.UserAccess(ctx, userID)
			if err != nil {
				return listPage{}, err
			}
			rows := make([]listRow, 0, len(grants))
			for _, g := range grants {
				granted := "-"
				if !g.GrantedAt.IsZero() {
					granted = g.GrantedAt.Local().Format("2006-01-02 15:04")
				}
				id := strconv.FormatInt(g.TemplateID, 10)
				rows = append(rows, listRow{
					id:    g.TemplateID,
					name:  "шаблон " + id,
					cells: []string{id, granted},
				})
			}
			return listPage{rows: rows, total: int64(len(rows))}, nil
		},
		remove: func(ctx context.Context, userID int64, row listRow) error {
			return catalog.RevokeAccess(ctx, userID, row.id)
		},
		add: func(ctx context.Context, userID, templateID int64) error {
			_, err := catalog.GrantAccess(ctx, userID, templateID)
			return err
		},
		removeAction: "Отозвать доступ к",
		addAction:    "Выдать доступ к шаблону",
		addHint:      "выдать доступ",
	}
}

func pageOf(rows []listRow, p models.Pageable) listPage {
	return listPage{rows: rows, total: p.Total, current: p.Current, pages: max(p.TotalPages, 1)}
}

func questionTypeLabel(t models.QuestionType) string {
	switch t {
	case models.QuestionTypeSingleChoice:
		return "один"
	case models.QuestionTypeMultipleChoice:
		return "несколько"
	case models.QuestionTypeWritten:
		return "письменный"
	default:
		return string(t)
	}
}

func roleLabel(role string) string {
	switch role {
	case models.RoleAdmin:
		return "администратор"
	case models.RoleStudent:
		return "студент"
	default:
		return role
	}
}
