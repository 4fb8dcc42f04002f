// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-exam-admin/internal/app"
)

func TestCheckHTTPMethod_UnsupportedMethodIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)
	router := h.Init()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/api/version"},
		{http.MethodPut, "/api/auth/admin/login"},
		{http.MethodPost, "/api/auth/refresh-token"},
		{http.MethodGet, "/api/access/grant"},
	}

	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			rec := do(t, router, c.method, c.path, nil, false)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			env := decodeEnvelope[any](t, rec)
			assert.Equal(t, app.CodeNotFound, env.ErrorData.ErrorCode)
		})
	}
}

func TestRouter_UnknownPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)
	rec := do(t, h.Init(), http.MethodGet, "/api/nothing-here", nil, false)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeEnvelope[any](t, rec).Success)
}
