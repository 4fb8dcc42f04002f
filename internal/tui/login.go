// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-exam-admin/internal/service"
)

// LoginModel is the Bubble Tea model of the login page. It first asks for
// a phone number, then for the code sent to it. On entry it tries to
// resume a persisted session once.
type LoginModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	phone textinput.Model
	code  textinput.Model

	restoreTried bool
	submitting   bool
	notice       string
	errMsg       string
}

func NewLoginModel(ctx context.Context, auth service.ClientAuthService) *LoginModel {
	phone := textinput.New()
	phone.Placeholder = "+998 90 123 45 67"
	phone.CharLimit = 20
	phone.Width = 24
	phone.Focus()

	code := textinput.New()
	code.Placeholder = "123456"
	code.CharLimit = 6
	code.Width = 8

	return &LoginModel{ctx: ctx, auth: auth, phone: phone, code: code}
}

// Init implements [tea.Model]. The first call resumes a persisted session;
// later calls only sync the inputs with the login state.
func (m *LoginModel) Init() tea.Cmd {
	m.submitting = false
	m.syncFocus()

	if !m.restoreTried && m.auth.State() == service.LoginAnonymous {
		m.restoreTried = true
		m.submitting = true
		return m.cmdRestore()
	}
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - loginNoticeMsg  shows why the user landed here.
//   - restoredMsg     opens the menu on a resumed session.
//   - otpRequestedMsg switches to the code input.
//   - verifiedMsg     opens the menu.
//   - esc             abandons the pending code and asks for the phone again.
//   - enter           submits the focused input.
//
// All other key events are forwarded to the focused input widget.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginNoticeMsg:
		m.restoreTried = true
		m.submitting = false
		m.notice = msg.text
		m.errMsg = ""
		m.code.Reset()
		m.syncFocus()
		return m, textinput.Blink

	case restoredMsg:
		m.submitting = false
		if msg.err == nil {
			m.notice = ""
			return m, navigate(pageMenu, nil)
		}
		if !errors.Is(msg.err, service.ErrNoSession) {
			m.notice = humanizeError(msg.err)
		}
		return m, textinput.Blink

	case otpRequestedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.notice = "Код отправлен на " + m.auth.Phone()
		m.syncFocus()
		return m, textinput.Blink

	case verifiedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			m.code.Reset()
			m.syncFocus()
			return m, nil
		}
		m.errMsg = ""
		m.notice = ""
		m.code.Reset()
		return m, navigate(pageMenu, nil)

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.esc):
			if m.auth.State() == service.LoginOTPSent {
				if err := m.auth.ChangeNumber(); err != nil {
					m.errMsg = humanizeError(err)
					return m, nil
				}
				m.errMsg = ""
				m.notice = ""
				m.code.Reset()
				m.syncFocus()
			}
			return m, nil
		case key.Matches(msg, keys.enter):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	if m.auth.State() == service.LoginOTPSent {
		m.code, cmd = m.code.Update(msg)
	} else {
		m.phone, cmd = m.phone.Update(msg)
	}
	return m, cmd
}

func (m *LoginModel) submit() tea.Cmd {
	switch m.auth.State() {
	case service.LoginAnonymous:
		phone := strings.TrimSpace(m.phone.Value())
		if phone == "" {
			m.errMsg = "Введите номер телефона"
			return nil
		}
		m.errMsg = ""
		m.submitting = true
		return m.cmdRequestOTP(phone)
	case service.LoginOTPSent:
		code := strings.TrimSpace(m.code.Value())
		if code == "" {
			m.errMsg = "Введите код из SMS"
			return nil
		}
		m.errMsg = ""
		m.submitting = true
		return m.cmdVerify(code)
	}
	return nil
}

func (m *LoginModel) syncFocus() {
	if m.auth.State() == service.LoginOTPSent {
		m.phone.Blur()
		m.code.Focus()
		return
	}
	m.code.Blur()
	m.phone.Focus()
}

func (m *LoginModel) View() string {
	var b strings.Builder

	if m.notice != "" {
		b.WriteString(statusStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString("Поле     │ Значение\n")
	b.WriteString("─────────┼────────────────────────────\n")
	b.WriteString("Телефон  │ [")
	b.WriteString(m.phone.View())
	b.WriteString("]\n")

	otpSent := m.auth.State() == service.LoginOTPSent
	if otpSent {
		b.WriteString("Код      │ [")
		b.WriteString(m.code.View())
		b.WriteString("]\n")
	}

	switch {
	case m.submitting:
		b.WriteString("\n[Подождите...]\n")
	case otpSent:
		b.WriteString("\n[Войти]\n")
	default:
		b.WriteString("\n[Получить код]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}

	hotKeys := "enter: получить код"
	if otpSent {
		hotKeys = "enter: войти │ esc: сменить номер"
	}
	return renderPage("ВХОД АДМИНИСТРАТОРА", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *LoginModel) cmdRestore() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		profile, err := auth.Restore(ctx)
		return restoredMsg{profile: profile, err: err}
	}
}

func (m *LoginModel) cmdRequestOTP(phone string) tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return otpRequestedMsg{err: auth.RequestOTP(ctx, phone)}
	}
}

func (m *LoginModel) cmdVerify(code string) tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return verifiedMsg{err: auth.Verify(ctx, code)}
	}
}
