package service

import (
	"fmt"

	"github.com/MKhiriev/go-exam-admin/internal/config"
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/store"
)

// maxUploadBytes caps a single uploaded image.
const maxUploadBytes = 10 << 20

// Services groups the mock backend services.
type Services struct {
	AuthService    AuthService
	CatalogService CatalogService
	UserService    UserService
	FileService    FileService
	AppInfoService AppInfoService
}

func NewServices(storages *store.MockStorages, cfg config.MockServerConfig, logger *logger.Logger) (*Services, error) {
	files, err := store.NewLocalFileStorage(cfg.UploadDir, maxUploadBytes)
	if err != nil {
		return nil, fmt.Errorf("file storage: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.Version, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(storages.Users, storages.Auth, cfg, logger),
		CatalogService: NewCatalogValidationService().Wrap(NewCatalogService(storages, logger)),
		UserService:    NewUserValidationService().Wrap(NewUserService(storages, logger)),
		FileService:    NewFileService(files, logger),
		AppInfoService: appInfo,
	}, nil
}
