package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-exam-admin/internal/app"
	"github.com/MKhiriev/go-exam-admin/models"
)

// maxMultipartMemory is how much of an upload is buffered in memory before
// spilling to a temporary file.
const maxMultipartMemory = 8 << 20

// uploadFile handles POST /api/file/upload with multipart field "file".
func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrNoFile, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			writeError(w, r, ErrNoFile)
			return
		}
		writeError(w, r, fmt.Errorf("%w: %w", ErrNoFile, err))
		return
	}
	defer file.Close()

	url, err := h.services.FileService.Save(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, r, http.StatusCreated, models.UploadResult{URL: url}, app.MsgCreated)
}
