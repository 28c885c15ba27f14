package service

import (
	"context"

	"github.com/MKhiriev/go-contact-sync/internal/config"
	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/models"
)

type appInfoService struct {
	appVersion string
	plugin     models.PluginInfo

	logger *logger.Logger
}

// NewAppInfoService returns an [AppInfoService] for the running build.
// cfg.Version overrides the version embedded in build.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	plugin := models.NewPluginInfo(build)
	plugin.Version = cfg.Version

	return &appInfoService{
		appVersion: cfg.Version,
		plugin:     plugin,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) GetPluginInfo(ctx context.Context) models.PluginInfo {
	info := s.plugin
	info.ObjectTypes = append([]string(nil), s.plugin.ObjectTypes...)
	info.Formats = append([]string(nil), s.plugin.Formats...)
	return info
}
