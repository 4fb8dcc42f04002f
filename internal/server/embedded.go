// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
)

// Embedded is a mock backend bound to a random loopback port. It serves
// from [Embedded.Run] until the context is cancelled.
type Embedded struct {
	http *httpServer
	url  string
}

// NewEmbedded reserves the port right away so the base URL is known before
// the console starts.
func NewEmbedded(handler http.Handler, logger *logger.Logger) (*Embedded, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listen loopback: %w", err)
	}

	srv := newHTTPServer(handler, listener.Addr().String(), logger)
	srv.listener = listener

	return &Embedded{
		http: srv,
		url:  "http://" + listener.Addr().String(),
	}, nil
}

// URL is the base URL of the backend, e.g. "http://127.0.0.1:41234".
func (e *Embedded) URL() string {
	return e.url
}

func (e *Embedded) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.http.serve()
	}()

	e.http.logger.Info().Str("url", e.url).Msg("embedded mock backend started")

	select {
	case <-ctx.Done():
		e.http.Shutdown()
		<-errCh
		e.http.logger.Info().Msg("embedded mock backend stopped")
		return nil
	case err := <-errCh:
		return fmt.Errorf("embedded mock backend: %w", err)
	}
}
