package http

import (
	"net/http"

	"github.com/MKhiriev/go-exam-admin/internal/app"
)

type versionResponse struct {
	Version string `json:"version"`
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	writeOK(w, r, http.StatusOK, versionResponse{Version: serverVersion}, app.MsgOK)
}
