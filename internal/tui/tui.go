// Package tui is the terminal console of the exam platform administrator.
//
// A [RootModel] routes between pages: the phone and OTP login, the main
// menu and one list page per resource. Pages talk to the backend only
// through the client services and report session loss with a
// sessionExpiredMsg, on which the router returns to the login page.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/service"
	"github.com/MKhiriev/go-exam-admin/models"
)

// Page names used with [NavigateTo].
const (
	pageLogin     = "login"
	pageMenu      = "menu"
	pageSubjects  = "subjects"
	pageQuestions = "questions"
	pageTemplates = "templates"
	pageUsers     = "users"
	pageAccess    = "access"
)

var ErrNoServices = errors.New("tui: client services are not configured")

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil || services.AuthService == nil || services.CatalogService == nil {
		return nil, ErrNoServices
	}
	return &TUI{services: services, buildInfo: buildInfo, logger: logger}, nil
}

// Run shows the console until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	root := newRoot(ctx, t.services, t.buildInfo)

	if _, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		t.logger.Err(err).Msg("console stopped with error")
		return err
	}

	t.logger.Info().Msg("console closed")
	return nil
}

func newRoot(ctx context.Context, services *service.ClientServices, buildInfo models.AppBuildInfo) RootModel {
	catalog := services.CatalogService

	pages := map[string]tea.Model{
		pageLogin:     NewLoginModel(ctx, services.AuthService),
		pageMenu:      NewMenuModel(ctx, services.AuthService),
		pageSubjects:  NewListModel(ctx, subjectsList(catalog)),
		pageQuestions: NewListModel(ctx, questionsList(catalog)),
		pageTemplates: NewListModel(ctx, templatesList(catalog)),
		pageUsers:     NewListModel(ctx, usersList(catalog)),
		pageAccess:    NewListModel(ctx, accessList(catalog)),
	}

	return NewRootModel(ctx, services.AuthService, pages, pageLogin, buildInfo)
}
