package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-contact-sync/internal/adapter"
	"github.com/MKhiriev/go-contact-sync/internal/config"
	handler "github.com/MKhiriev/go-contact-sync/internal/handler/http"
	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/metrics"
	"github.com/MKhiriev/go-contact-sync/internal/server"
	"github.com/MKhiriev/go-contact-sync/internal/service"
	"github.com/MKhiriev/go-contact-sync/internal/store"
	"github.com/MKhiriev/go-contact-sync/internal/transport"
	"github.com/MKhiriev/go-contact-sync/internal/workers"
	"github.com/MKhiriev/go-contact-sync/internal/xslt"
	"github.com/MKhiriev/go-contact-sync/models"
	"github.com/spf13/pflag"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// disconnectTimeout bounds the goodbye sent to the device on exit.
const disconnectTimeout = 5 * time.Second

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	log := logger.NewLogger("contact-sync")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = build.BuildVersion()
	}

	if cfg.IssueToken != "" {
		issueToken(cfg, log)
		return
	}

	printBuildInfo(build)
	log.Debug().Str("device", cfg.Device.Address).Str("object_class", cfg.Device.ObjectClass).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	consumer, err := newConsumer(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating change consumer")
	}

	collector := metrics.New()
	services, err := service.NewServices(service.ServiceDeps{
		Storages:    storages,
		Device:      transport.NewDeviceLink(cfg.Device, log),
		Transformer: xslt.NewProcessor(cfg.Sync, log),
		Consumer:    consumer,
		Observer:    collector,
		Build:       build,
	}, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	background := workers.NewWorkers(services, cfg.Workers, log)
	background.Run(ctx)

	if err = serve(ctx, services, collector, cfg, log); err != nil {
		log.Err(err).Msg("control API stopped")
	}

	background.Stop()

	disconnectCtx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	if err = services.ContactSyncService.Disconnect(disconnectCtx); err != nil {
		log.Warn().Err(err).Msg("error disconnecting device")
	}
	log.Info().Msg("contact sync stopped")
}

// serve runs the control API until ctx is cancelled. Without a configured
// address it only waits for ctx.
func serve(ctx context.Context, services *service.Services, collector *metrics.Metrics, cfg *config.StructuredConfig, log *logger.Logger) error {
	h := handler.NewHandler(services, collector.Handler(), cfg.Adapter.HashKey, log)

	srv, err := server.NewServer(h.Init(), cfg.Server, log)
	if errors.Is(err, server.ErrNoServersAreCreated) {
		log.Info().Msg("control API disabled")
		<-ctx.Done()
		return nil
	}
	if err != nil {
		return err
	}
	return srv.RunServer(ctx)
}

func newConsumer(cfg config.Adapter, log *logger.Logger) (adapter.ChangeConsumer, error) {
	if cfg.DryRun {
		log.Info().Msg("dry run: change events are written to stdout")
		return adapter.NewJSONLinesConsumer(os.Stdout), nil
	}
	return adapter.NewHTTPChangeConsumer(cfg, log)
}

func issueToken(cfg *config.StructuredConfig, log *logger.Logger) {
	token, err := service.NewAuthService(cfg.App, log).CreateToken(context.Background(), cfg.IssueToken)
	if err != nil {
		log.Fatal().Err(err).Msg("error issuing token")
	}
	fmt.Println(token.SignedString)
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.BuildVersion())
	fmt.Printf("Build date: %s\n", build.BuildDate())
	fmt.Printf("Build commit: %s\n", build.BuildCommit())
}
