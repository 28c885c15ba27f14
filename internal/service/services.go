package service

import (
	"github.com/MKhiriev/go-contact-sync/internal/adapter"
	"github.com/MKhiriev/go-contact-sync/internal/config"
	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/store"
	"github.com/MKhiriev/go-contact-sync/internal/transport"
	"github.com/MKhiriev/go-contact-sync/internal/xslt"
	"github.com/MKhiriev/go-contact-sync/models"
)

// Services aggregates the application services handed to the HTTP handler
// and the workers.
type Services struct {
	ContactSyncService ContactSyncService
	SyncStateService   SyncStateService
	ContactSyncJob     ContactSyncJob
	AppInfoService     AppInfoService
	AuthService        AuthService
}

// ServiceDeps are the infrastructure pieces the services are built on.
type ServiceDeps struct {
	Storages    *store.Storages
	Device      transport.Device
	Transformer xslt.Transformer
	Consumer    adapter.ChangeConsumer
	Observer    CycleObserver
	Build       models.AppBuildInfo
}

func NewServices(deps ServiceDeps, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, deps.Build, logger)
	if err != nil {
		return nil, err
	}

	contactSync := NewContactSyncService(ContactSyncDeps{
		Device:      deps.Device,
		Transformer: deps.Transformer,
		Anchors:     deps.Storages.AnchorRepository,
		Cycles:      deps.Storages.CycleRepository,
		Consumer:    deps.Consumer,
		Observer:    deps.Observer,
	}, cfg, logger)

	return &Services{
		ContactSyncService: contactSync,
		SyncStateService:   NewSyncStateService(deps.Storages.AnchorRepository, deps.Storages.CycleRepository, logger),
		ContactSyncJob:     NewContactSyncJob(contactSync),
		AppInfoService:     appInfo,
		AuthService:        NewAuthService(cfg.App, logger),
	}, nil
}
