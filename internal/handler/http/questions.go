package http

import (
	"net/http"

	"github.com/MKhiriev/go-exam-admin/internal/app"
	"github.com/MKhiriev/go-exam-admin/models"
)

func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
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

	questions, err := h.services.CatalogService.Questions(r.Context(), subjectID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writePage(w, r, questions)
}

func (h *Handler) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	question, err := h.services.CatalogService.Question(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusOK, question, app.MsgOK)
}

func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var question models.Question
	if err := decodeJSON(w, r, &question); err != nil {
		writeError(w, r, err)
		return
	}
	question.ID = 0

	created, err := h.services.CatalogService.CreateQuestion(r.Context(), question)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusCreated, created, app.MsgCreated)
}

func (h *Handler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var question models.Question
	if err := decodeJSON(w, r, &question); err != nil {
		writeError(w, r, err)
		return
	}
	question.ID = id

	updated, err := h.services.CatalogService.UpdateQuestion(r.Context(), question)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusOK, updated, app.MsgOK)
}

func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.CatalogService.DeleteQuestion(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeOK[any](w, r, http.StatusOK, nil, app.MsgDeleted)
}
