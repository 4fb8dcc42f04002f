package http

import (
	"net/http"

	"github.com/MKhiriev/go-exam-admin/internal/app"
	"github.com/MKhiriev/go-exam-admin/models"
)

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	subjectID, err := pathID(r, "subjectId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	templates, err := h.services.CatalogService.Templates(r.Context(), subjectID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writePage(w, r, templates)
}

func (h *Handler) getTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	template, err := h.services.CatalogService.Template(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusOK, template, app.MsgOK)
}

func (h *Handler) createTemplate(w http.ResponseWriter, r *http.Request) {
	var template models.TestTemplate
	if err := decodeJSON(w, r, &template); err != nil {
		writeError(w, r, err)
		return
	}
	template.ID = 0

	created, err := h.services.CatalogService.CreateTemplate(r.Context(), template)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusCreated, created, app.MsgCreated)
}

func (h *Handler) updateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var template models.TestTemplate
	if err := decodeJSON(w, r, &template); err != nil {
		writeError(w, r, err)
		return
	}
	template.ID = id

	updated, err := h.services.CatalogService.UpdateTemplate(r.Context(), template)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusOK, updated, app.MsgOK)
}

func (h *Handler) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.CatalogService.DeleteTemplate(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeOK[any](w, r, http.StatusOK, nil, app.MsgDeleted)
}
