package http

import (
	"net/http"

	"github.com/MKhiriev/go-exam-admin/internal/app"
	"github.com/MKhiriev/go-exam-admin/models"
)

func (h *Handler) listAccess(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	grants, err := h.services.UserService.Access(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if grants == nil {
		grants = []models.AccessGrant{}
	}

	writeOK(w, r, http.StatusOK, grants, app.MsgOK)
}

func (h *Handler) grantAccess(w http.ResponseWriter, r *http.Request) {
	var req models.AccessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	grant, err := h.services.UserService.GrantAccess(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusOK, grant, app.MsgOK)
}

func (h *Handler) revokeAccess(w http.ResponseWriter, r *http.Request) {
	var req models.AccessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.UserService.RevokeAccess(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}

	writeOK[any](w, r, http.StatusOK, nil, app.MsgOK)
}
