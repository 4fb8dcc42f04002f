package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-exam-admin/internal/service"
)

type menuItem struct {
	title string
	page  string
}

// menuLogout is the page value of the logout item.
const menuLogout = ""

type MenuModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	items []menuItem
	idx   int
}

func NewMenuModel(ctx context.Context, auth service.ClientAuthService) *MenuModel {
	return &MenuModel{
		ctx:  ctx,
		auth: auth,
		items: []menuItem{
			{"Предметы", pageSubjects},
			{"Шаблоны тестов", pageTemplates},
			{"Пользователи", pageUsers},
			{"Выйти", menuLogout},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loggedOutMsg:
		m.idx = 0
		if msg.err != nil {
			// the flow is anonymous anyway; only the stored tokens survived
			return m, navigate(pageLogin, loginNoticeMsg{text: "Выход выполнен, но сессию не удалось удалить: " + msg.err.Error()})
		}
		return m, navigate(pageLogin, loginNoticeMsg{text: "Вы вышли из системы"})

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			if m.idx > 0 {
				m.idx--
			}
		case key.Matches(msg, keys.down):
			if m.idx < len(m.items)-1 {
				m.idx++
			}
		case key.Matches(msg, keys.enter):
			item := m.items[m.idx]
			if item.page == menuLogout {
				return m, m.cmdLogout()
			}
			return m, navigate(item.page, nil)
		}
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	if profile := m.auth.Profile(); profile.PhoneNumber != "" {
		b.WriteString("Администратор: ")
		if profile.FullName != "" {
			b.WriteString(profile.FullName)
			b.WriteString(", ")
		}
		b.WriteString(profile.PhoneNumber)
		b.WriteString("\n\n")
	}

	idColWidth := lipgloss.Width(fmt.Sprintf("%d", len(m.items))) + 2
	actionColWidth := lipgloss.Width("Раздел")
	for _, item := range m.items {
		if w := lipgloss.Width(item.title); w > actionColWidth {
			actionColWidth = w
		}
	}

	b.WriteString(fmt.Sprintf("%-*s │ %s\n", idColWidth, "№", "Раздел"))
	b.WriteString(strings.Repeat("─", idColWidth))
	b.WriteString("─┼─")
	b.WriteString(strings.Repeat("─", actionColWidth))
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%-*s │ %s\n", idColWidth, fmt.Sprintf("%s %d", cursor, i+1), item.title))
	}

	return renderPage("ГЛАВНОЕ МЕНЮ", strings.TrimRight(b.String(), "\n"), "enter: выбрать │ ↑/↓: навигация │ v: версия")
}

func (m *MenuModel) cmdLogout() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return loggedOutMsg{err: auth.Logout(ctx)}
	}
}
