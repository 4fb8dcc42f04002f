package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-exam-admin/models"
)

// NavigateTo switches the active page. A non-nil Payload is delivered to
// the new page instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

func navigate(page string, payload tea.Msg) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page, Payload: payload} }
}

// sessionExpiredMsg asks the router to drop the session and show login.
type sessionExpiredMsg struct{}

type loginNoticeMsg struct {
	text string
}

type restoredMsg struct {
	profile models.UserProfile
	err     error
}

type otpRequestedMsg struct {
	err error
}

type verifiedMsg struct {
	err error
}

type loggedOutMsg struct {
	err error
}

// scopeMsg opens a list page for one parent resource, e.g. the questions
// of a subject.
type scopeMsg struct {
	page  string
	id    int64
	label string
}

type itemsLoadedMsg struct {
	page string
	data listPage
	err  error
}

type itemDeletedMsg struct {
	page string
	row  listRow
	err  error
}

type itemAddedMsg struct {
	page string
	id   int64
	err  error
}
