// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-contact-sync/internal/config"
	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/service"
)

// mockWorker records the order of Run and Stop calls.
type mockWorker struct {
	id    int
	calls *[]string
}

func (m *mockWorker) Run(context.Context) {
	*m.calls = append(*m.calls, "run", string(rune('0'+m.id)))
}

func (m *mockWorker) Stop() {
	*m.calls = append(*m.calls, "stop", string(rune('0'+m.id)))
}

func TestWorkers_RunAndStopOrder(t *testing.T) {
	var calls []string
	ws := &Workers{workers: []Worker{
		&mockWorker{id: 1, calls: &calls},
		&mockWorker{id: 2, calls: &calls},
	}}

	ws.Run(context.Background())
	ws.Stop()

	expected := []string{"run", "1", "run", "2", "stop", "2", "stop", "1"}
	if len(calls) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, calls)
	}
	for i := range expected {
		if calls[i] != expected[i] {
			t.Errorf("call[%d]: expected %q, got %q", i, expected[i], calls[i])
		}
	}
}

func TestWorkers_Empty(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
	ws.Stop()
}

// spyJob implements service.ContactSyncJob.
type spyJob struct {
	started  int
	stopped  int
	interval time.Duration
	ctx      context.Context
}

func (s *spyJob) Start(ctx context.Context, interval time.Duration) {
	s.started++
	s.interval = interval
	s.ctx = ctx
}

func (s *spyJob) Stop() {
	s.stopped++
}

func TestNewWorkers_WiresSyncJob(t *testing.T) {
	job := &spyJob{}
	services := &service.Services{ContactSyncJob: job}

	ws := NewWorkers(services, config.Workers{SyncInterval: 3 * time.Minute}, logger.Nop())
	if len(ws.workers) != 1 {
		t.Fatalf("expected 1 worker, got %d", len(ws.workers))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ws.Run(ctx)

	if job.started != 1 {
		t.Errorf("expected job to be started once, got %d", job.started)
	}
	if job.interval != 3*time.Minute {
		t.Errorf("expected interval 3m, got %s", job.interval)
	}
	cancel()
	if job.ctx.Err() == nil {
		t.Error("job context must follow the worker context")
	}

	ws.Stop()
	if job.stopped != 1 {
		t.Errorf("expected job to be stopped once, got %d", job.stopped)
	}
}
