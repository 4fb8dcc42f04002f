package http

import (
	"net/http"

	"github.com/MKhiriev/go-exam-admin/internal/app"
	"github.com/MKhiriev/go-exam-admin/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, err := h.services.UserService.Users(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writePage(w, r, users)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.User(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusOK, user, app.MsgOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var user models.UserProfile
	if err := decodeJSON(w, r, &user); err != nil {
		writeError(w, r, err)
		return
	}
	user.ID = 0

	created, err := h.services.UserService.CreateUser(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusCreated, created, app.MsgCreated)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var user models.UserProfile
	if err := decodeJSON(w, r, &user); err != nil {
		writeError(w, r, err)
		return
	}
	user.ID = id

	updated, err := h.services.UserService.UpdateUser(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusOK, updated, app.MsgOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.UserService.DeleteUser(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeOK[any](w, r, http.StatusOK, nil, app.MsgDeleted)
}
