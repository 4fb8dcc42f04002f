package http

import (
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/service"
)

// Handler serves the mock backend REST API. Routes are built by
// [Handler.Init].
type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("mock backend http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
