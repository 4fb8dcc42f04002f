// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-exam-admin/internal/service"
)

const msgSessionExpired = "Сессия истекла, войдите снова"

// humanizeError renders a service error for the console. The backend
// message kept in the error chain is shown for rejected requests.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrServerUnavailable):
		return "Отсутствует сеть или Сервер недоступен"
	case errors.Is(err, service.ErrSessionExpired):
		return msgSessionExpired
	case errors.Is(err, service.ErrInvalidOTP):
		return "Неверный код подтверждения"
	case errors.Is(err, service.ErrOTPExpired):
		return "Код истёк, запросите новый"
	case errors.Is(err, service.ErrNotAdmin), errors.Is(err, service.ErrAccessDenied):
		return "Доступ только для администраторов"
	case errors.Is(err, service.ErrNotFound):
		return "Запись не найдена"
	case errors.Is(err, service.ErrAlreadyExists):
		return "Запись уже существует"
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "Некорректные данные: " + err.Error()
	}
	return err.Error()
}

// sessionAware turns a session error into the router message that sends
// the user back to login.
func sessionAware(err error) tea.Cmd {
	if service.IsSessionError(err) {
		return func() tea.Msg { return sessionExpiredMsg{} }
	}
	return nil
}
