package service

import (
	"github.com/MKhiriev/go-exam-admin/internal/adapter"
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/session"
)

type ClientServices struct {
	AuthService    ClientAuthService
	CatalogService ClientCatalogService
}

func NewClientServices(serverAdapter adapter.ServerAdapter, sess *session.Session, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		AuthService:    NewLoginFlow(serverAdapter, sess, logger),
		CatalogService: NewClientCatalogService(serverAdapter),
	}
}
