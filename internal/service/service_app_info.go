package service

import (
	"context"

	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/models"
)

const defaultAppVersion = "dev"

type appInfoService struct {
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService serves the build metadata of the binary. An empty build
// version falls back to configuredVersion and then to "dev".
func NewAppInfoService(buildInfo models.AppBuildInfo, configuredVersion string, logger *logger.Logger) AppInfoService {
	if buildInfo.BuildVersion() == "" {
		version := configuredVersion
		if version == "" {
			version = defaultAppVersion
		}
		buildInfo = buildInfo.WithVersion(version)
	}

	return &appInfoService{
		buildInfo: buildInfo,
		logger:    logger,
	}
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.buildInfo.BuildVersion()
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.buildInfo
}
