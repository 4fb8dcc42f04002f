// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-exam-admin/internal/app"
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/utils"
	"github.com/MKhiriev/go-exam-admin/models"
)

func writeOK[T any](w http.ResponseWriter, r *http.Request, status int, data T, message string) {
	if _, err := utils.WriteSuccess(w, status, data, message); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

func writePage[T any](w http.ResponseWriter, r *http.Request, page models.Page[T]) {
	if _, err := utils.WritePage(w, page.Items, page.Pageable); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

func writeFailure(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	if _, err := utils.WriteFailure(w, status, code, message, details); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeFailure(w, r, http.StatusNotFound, app.CodeNotFound, app.MsgNotFound, nil)
}
