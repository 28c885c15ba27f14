package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/service"
)

// syncWorker runs the periodic contact sync job.
type syncWorker struct {
	job      service.ContactSyncJob
	interval time.Duration

	logger *logger.Logger
}

func newSyncWorker(job service.ContactSyncJob, interval time.Duration, logger *logger.Logger) *syncWorker {
	return &syncWorker{job: job, interval: interval, logger: logger}
}

func (w *syncWorker) Run(ctx context.Context) {
	w.logger.Info().Str("func", "syncWorker.Run").Dur("interval", w.interval).Msg("periodic contact sync started")
	w.job.Start(w.logger.WithContext(ctx), w.interval)
}

func (w *syncWorker) Stop() {
	w.job.Stop()
	w.logger.Info().Str("func", "syncWorker.Stop").Msg("periodic contact sync stopped")
}
