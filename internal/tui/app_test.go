package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-exam-admin/internal/service"
	"github.com/MKhiriev/go-exam-admin/models"
)

func newTestRoot(auth *fakeAuth, catalog *fakeCatalog, start string) RootModel {
	services := &service.ClientServices{AuthService: auth, CatalogService: catalog}
	root := newRoot(context.Background(), services, models.NewAppBuildInfo("v1.0.0", "2026-03-01", "abc123"))
	root.current = root.pages[start]
	root.currentName = start
	return root
}

// step applies msg to the router and returns the new router with the
// messages of the returned command.
func step(t *testing.T, r RootModel, msg tea.Msg) (RootModel, []tea.Msg) {
	t.Helper()
	next, cmd := r.Update(msg)
	root, ok := next.(RootModel)
	require.True(t, ok)
	return root, run(t, cmd)
}

func TestRoot_Navigate(t *testing.T) {
	root := newTestRoot(&fakeAuth{state: service.LoginAuthenticated}, newSubjectsCatalog(), pageMenu)

	root, msgs := step(t, root, NavigateTo{Page: pageSubjects})
	assert.Equal(t, pageSubjects, root.currentName)
	_, ok := find[itemsLoadedMsg](msgs)
	assert.True(t, ok, "entering a list loads it")

	root, _ = step(t, root, NavigateTo{Page: "nowhere"})
	assert.Equal(t, pageSubjects, root.currentName)
}

func TestRoot_SessionExpiredReturnsToLogin(t *testing.T) {
	auth := &fakeAuth{state: service.LoginAuthenticated, sessionGone: true}
	root := newTestRoot(auth, newSubjectsCatalog(), pageSubjects)

	root, msgs := step(t, root, sessionExpiredMsg{})
	assert.Equal(t, pageLogin, root.currentName)
	assert.Equal(t, service.LoginAnonymous, auth.State())
	assert.Zero(t, auth.logouts)

	notice, ok := find[loginNoticeMsg](msgs)
	require.True(t, ok)
	root, _ = step(t, root, notice)
	assert.Contains(t, root.View(), msgSessionExpired)
}

func TestRoot_SessionExpiredForcesLogout(t *testing.T) {
	// the backend rejected tokens the client still holds
	auth := &fakeAuth{state: service.LoginAuthenticated}
	root := newTestRoot(auth, newSubjectsCatalog(), pageUsers)

	root, _ = step(t, root, sessionExpiredMsg{})
	assert.Equal(t, pageLogin, root.currentName)
	assert.Equal(t, 1, auth.logouts)
}

func TestRoot_BuildInfoOnMenu(t *testing.T) {
	root := newTestRoot(&fakeAuth{state: service.LoginAuthenticated}, newSubjectsCatalog(), pageMenu)

	root, _ = step(t, root, keyRunes("v"))
	view := root.View()
	assert.Contains(t, view, "ИНФОРМАЦИЯ О ПРОГРАММЕ")
	assert.Contains(t, view, "v1.0.0")
	assert.Contains(t, view, "abc123")

	root, _ = step(t, root, keyEsc)
	assert.Contains(t, root.View(), "ГЛАВНОЕ МЕНЮ")
}

func TestRoot_CtrlCQuits(t *testing.T) {
	root := newTestRoot(&fakeAuth{}, newSubjectsCatalog(), pageLogin)

	_, msgs := step(t, root, tea.KeyMsg{Type: tea.KeyCtrlC})
	_, ok := find[tea.QuitMsg](msgs)
	assert.True(t, ok)
}

func TestMenu_OpenAndLogout(t *testing.T) {
	auth := &fakeAuth{state: service.LoginAuthenticated, profile: models.UserProfile{PhoneNumber: "+998901234567"}}
	m := NewMenuModel(context.Background(), auth)

	assert.Contains(t, m.View(), "+998901234567")

	nav, ok := find[NavigateTo](update(t, m, keyEnter))
	require.True(t, ok)
	assert.Equal(t, pageSubjects, nav.Page)

	update(t, m, keyDown)
	update(t, m, keyDown)
	update(t, m, keyDown)
	loggedOut, ok := find[loggedOutMsg](update(t, m, keyEnter))
	require.True(t, ok)
	assert.Equal(t, 1, auth.logouts)

	nav, ok = find[NavigateTo](update(t, m, loggedOut))
	require.True(t, ok)
	assert.Equal(t, pageLogin, nav.Page)
	assert.IsType(t, loginNoticeMsg{}, nav.Payload)
}

func TestNew_RequiresServices(t *testing.T) {
	_, err := New(nil, models.AppBuildInfo{}, nil)
	assert.ErrorIs(t, err, ErrNoServices)

	_, err = New(&service.ClientServices{AuthService: &fakeAuth{}}, models.AppBuildInfo{}, nil)
	assert.ErrorIs(t, err, ErrNoServices)
}
