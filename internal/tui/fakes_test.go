package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-exam-admin/internal/service"
	"github.com/MKhiriev/go-exam-admin/models"
)

// fakeAuth is a scripted ClientAuthService.
type fakeAuth struct {
	state   service.LoginState
	phone   string
	profile models.UserProfile

	restoreErr error
	requestErr error
	verifyErr  error
	logoutErr  error

	// sessionGone makes SyncSession drop an authenticated state.
	sessionGone bool

	requested []string
	verified  []string
	logouts   int
}

func (f *fakeAuth) State() service.LoginState    { return f.state }
func (f *fakeAuth) Phone() string                { return f.phone }
func (f *fakeAuth) Profile() models.UserProfile { return f.profile }

func (f *fakeAuth) RequestOTP(_ context.Context, phone string) error {
	f.requested = append(f.requested, phone)
	if f.requestErr != nil {
		return f.requestErr
	}
	f.state = service.LoginOTPSent
	f.phone = phone
	return nil
}

func (f *fakeAuth) ChangeNumber() error {
	if f.state != service.LoginOTPSent {
		return service.ErrInvalidLoginTransition
	}
	f.state = service.LoginAnonymous
	f.phone = ""
	return nil
}

func (f *fakeAuth) Verify(_ context.Context, code string) error {
	f.verified = append(f.verified, code)
	if f.verifyErr != nil {
		return f.verifyErr
	}
	f.state = service.LoginAuthenticated
	f.profile = models.UserProfile{ID: 1, PhoneNumber: f.phone, Role: models.RoleAdmin}
	return nil
}

func (f *fakeAuth) Restore(context.Context) (models.UserProfile, error) {
	if f.restoreErr != nil {
		return models.UserProfile{}, f.restoreErr
	}
	f.state = service.LoginAuthenticated
	return f.profile, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	f.state = service.LoginAnonymous
	return f.logoutErr
}

func (f *fakeAuth) SyncSession() service.LoginState {
	if f.sessionGone && f.state == service.LoginAuthenticated {
		f.state = service.LoginAnonymous
	}
	return f.state
}

// fakeCatalog is a ClientCatalogService backed by slices.
type fakeCatalog struct {
	subjects  []models.Subject
	questions map[int64][]models.Question
	templates []models.TestTemplate
	users     []models.UserProfile
	grants    map[int64][]models.AccessGrant

	// pageable overrides the pagination of Users.
	pageable *models.Pageable

	loadErr   error
	deleteErr error
	grantErr  error

	deleted    []int64
	revoked    [][2]int64
	granted    [][2]int64
	userPages  []models.PageRequest
	questPages []models.PageRequest
}

func (f *fakeCatalog) Subjects(context.Context) ([]models.Subject, error) {
	return f.subjects, f.loadErr
}

func (f *fakeCatalog) DeleteSubject(_ context.Context, id int64) error {
	return f.remove(id)
}

func (f *fakeCatalog) Questions(_ context.Context, subjectID int64, page models.PageRequest) (models.Page[models.Question], error) {
	f.questPages = append(f.questPages, page)
	items := f.questions[subjectID]
	return models.Page[models.Question]{Items: items, Pageable: models.NewPageable(page, int64(len(items)))}, f.loadErr
}

func (f *fakeCatalog) DeleteQuestion(_ context.Context, id int64) error {
	return f.remove(id)
}

func (f *fakeCatalog) Templates(context.Context) ([]models.TestTemplate, error) {
	return f.templates, f.loadErr
}

func (f *fakeCatalog) DeleteTemplate(_ context.Context, id int64) error {
	return f.remove(id)
}

func (f *fakeCatalog) Users(_ context.Context, page models.PageRequest) (models.Page[models.UserProfile], error) {
	f.userPages = append(f.userPages, page)
	p := models.NewPageable(page, int64(len(f.users)))
	if f.pageable != nil {
		p = *f.pageable
		p.Current = page.Page
	}
	return models.Page[models.UserProfile]{Items: f.users, Pageable: p}, f.loadErr
}

func (f *fakeCatalog) DeleteUser(_ context.Context, id int64) error {
	return f.remove(id)
}

func (f *fakeCatalog) UserAccess(_ context.Context, userID int64) ([]models.AccessGrant, error) {
	return f.grants[userID], f.loadErr
}

func (f *fakeCatalog) GrantAccess(_ context.Context, userID, templateID int64) (models.AccessGrant, error) {
	if f.grantErr != nil {
		return models.AccessGrant{}, f.grantErr
	}
	f.granted = append(f.granted, [2]int64{userID, templateID})
	if f.grants == nil {
		f.grants = map[int64][]models.AccessGrant{}
	}
	grant := models.AccessGrant{UserID: userID, TemplateID: templateID}
	f.grants[userID] = append(f.grants[userID], grant)
	return grant, nil
}

func (f *fakeCatalog) RevokeAccess(_ context.Context, userID, templateID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.revoked = append(f.revoked, [2]int64{userID, templateID})
	return nil
}

func (f *fakeCatalog) remove(id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// run executes cmd and the commands of any batch it returns, collecting
// the produced messages.
func run(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(t, c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// find returns the first message of type T in msgs.
func find[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)
