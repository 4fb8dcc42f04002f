package http

import (
	"net/http"

	"github.com/MKhiriev/go-exam-admin/internal/app"
	"github.com/MKhiriev/go-exam-admin/models"
)

func (h *Handler) listSubjects(w http.ResponseWriter, r *http.Request) {
	h.writeSubjects(w, r, false)
}

func (h *Handler) listMainSubjects(w http.ResponseWriter, r *http.Request) {
	h.writeSubjects(w, r, true)
}

func (h *Handler) writeSubjects(w http.ResponseWriter, r *http.Request, mainOnly bool) {
	subjects, err := h.services.CatalogService.Subjects(r.Context(), mainOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}

	writeOK(w, r, http.StatusOK, subjects, app.MsgOK)
}

func (h *Handler) getSubject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	subject, err := h.services.CatalogService.Subject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusOK, subject, app.MsgOK)
}

func (h *Handler) createSubject(w http.ResponseWriter, r *http.Request) {
	var subject models.Subject
	if err := decodeJSON(w, r, &subject); err != nil {
		writeError(w, r, err)
		return
	}
	subject.ID = 0

	created, err := h.services.CatalogService.CreateSubject(r.Context(), subject)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusCreated, created, app.MsgCreated)
}

// updateSubject takes the ID from the path; an ID in the body is ignored.
func (h *Handler) updateSubject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var subject models.Subject
	if err := decodeJSON(w, r, &subject); err != nil {
		writeError(w, r, err)
		return
	}
	subject.ID = id

	updated, err := h.services.CatalogService.UpdateSubject(r.Context(), subject)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusOK, updated, app.MsgOK)
}

func (h *Handler) deleteSubject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.CatalogService.DeleteSubject(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeOK[any](w, r, http.StatusOK, nil, app.MsgDeleted)
}
