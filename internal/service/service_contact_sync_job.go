package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-contact-sync/internal/config"
)

type contactSyncJob struct {
	syncService ContactSyncService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewContactSyncJob creates a contactSyncJob that calls
// syncService.SyncContacts on a ticker. The job is idle until Start is called.
func NewContactSyncJob(syncService ContactSyncService) ContactSyncJob {
	return &contactSyncJob{syncService: syncService}
}

// Start implements ContactSyncJob. It stops any previously running job, then
// launches a background goroutine that runs one cycle right away and then
// one every interval. If interval is zero or negative it defaults to
// config.DefaultSyncInterval. The goroutine exits when ctx is cancelled or
// Stop is called.
//
// Cycle failures are reported to the consumer by the sync service; the job
// keeps ticking.
func (j *contactSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		_, _ = j.syncService.SyncContacts(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				_, _ = j.syncService.SyncContacts(jobCtx)
			}
		}
	}()
}

// Stop implements ContactSyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *contactSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
