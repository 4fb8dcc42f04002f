package handler

import (
	"github.com/MKhiriev/go-exam-admin/internal/config"
	"github.com/MKhiriev/go-exam-admin/internal/handler/http"
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers of the mock backend. An empty
// listen address is allowed only for the embedded backend, which binds its
// own loopback port; pass embedded=true in that case.
func NewHandlers(services *service.Services, cfg config.MockServerConfig, embedded bool, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Address != "" || embedded {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
