package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
)

// appInfoService answers GET /api/version of the mock backend.
type appInfoService struct {
	version string
	logger  *logger.Logger
}

// NewAppInfoService returns ErrVersionIsNotSpecified for a blank version.
func NewAppInfoService(version string, logger *logger.Logger) (AppInfoService, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{version: version, logger: logger}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.version
}
