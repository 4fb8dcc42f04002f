package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-exam-admin/internal/config"
	"github.com/MKhiriev/go-exam-admin/internal/handler"
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/server"
	"github.com/MKhiriev/go-exam-admin/internal/service"
	"github.com/MKhiriev/go-exam-admin/internal/store"
)

// MockBackend is the mock backend started inside the console process.
type MockBackend struct {
	server   *server.Embedded
	storages *store.MockStorages
}

// StartMockBackend opens and seeds the mock database and binds the backend
// to a loopback port. The backend serves once Run is called.
func StartMockBackend(ctx context.Context, cfg config.MockServerConfig, log *logger.Logger) (*MockBackend, error) {
	storages, err := store.NewMockStorages(ctx, cfg.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("mock storages: %w", err)
	}

	backend, err := newMockBackend(ctx, storages, cfg, log)
	if err != nil {
		return nil, errors.Join(err, storages.Close())
	}

	return backend, nil
}

func newMockBackend(ctx context.Context, storages *store.MockStorages, cfg config.MockServerConfig, log *logger.Logger) (*MockBackend, error) {
	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("mock services: %w", err)
	}

	if err := service.SeedDemoData(log.WithContext(ctx), services, cfg.AdminPhone); err != nil {
		return nil, err
	}

	handlers, err := handler.NewHandlers(services, cfg, true, log)
	if err != nil {
		return nil, fmt.Errorf("mock handlers: %w", err)
	}

	embedded, err := server.NewEmbedded(handlers.HTTP.Init(), log)
	if err != nil {
		return nil, err
	}

	return &MockBackend{server: embedded, storages: storages}, nil
}

// URL is the base URL the adapter should use.
func (m *MockBackend) URL() string {
	return m.server.URL()
}

// Run serves until ctx is cancelled.
func (m *MockBackend) Run(ctx context.Context) error {
	return m.server.Run(ctx)
}

func (m *MockBackend) Close() error {
	return m.storages.Close()
}
