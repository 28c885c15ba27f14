package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-contact-sync/internal/adapter"
	"github.com/MKhiriev/go-contact-sync/internal/config"
	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/store"
	"github.com/MKhiriev/go-contact-sync/internal/transport"
	"github.com/MKhiriev/go-contact-sync/internal/utils"
	"github.com/MKhiriev/go-contact-sync/internal/xslt"
	"github.com/MKhiriev/go-contact-sync/models"
)

// reportTimeout bounds the reports made after a cycle has already been
// cancelled.
const reportTimeout = 10 * time.Second

type contactSyncService struct {
	objectClass string

	device      transport.Device
	transformer xslt.Transformer
	anchors     store.AnchorRepository
	cycles      store.CycleRepository
	consumer    adapter.ChangeConsumer
	observer    CycleObserver

	negotiator SessionNegotiator
	fetcher    BulkFetcher
	pipeline   RecordTransformer
	emitter    ChangeEmitter

	// running serializes cycles; it holds a token while a cycle runs.
	running chan struct{}

	ids *utils.UUIDGenerator
	now func() time.Time

	logger *logger.Logger
}

// ContactSyncDeps are the collaborators of a [ContactSyncService].
// Observer is optional.
type ContactSyncDeps struct {
	Device      transport.Device
	Transformer xslt.Transformer
	Anchors     store.AnchorRepository
	Cycles      store.CycleRepository
	Consumer    adapter.ChangeConsumer
	Observer    CycleObserver
}

// NewContactSyncService wires the sync stages around deps.Device.
func NewContactSyncService(deps ContactSyncDeps, cfg config.StructuredConfig, logger *logger.Logger) ContactSyncService {
	return &contactSyncService{
		objectClass: cfg.Device.ObjectClass,
		device:      deps.Device,
		transformer: deps.Transformer,
		anchors:     deps.Anchors,
		cycles:      deps.Cycles,
		consumer:    deps.Consumer,
		observer:    deps.Observer,
		negotiator:  NewSessionNegotiator(deps.Device),
		fetcher:     NewBulkFetcher(deps.Device, cfg.Sync),
		pipeline:    NewRecordTransformer(deps.Transformer),
		emitter:     NewChangeEmitter(deps.Consumer),
		running:     make(chan struct{}, 1),
		ids:         utils.NewUUIDGenerator(),
		now:         time.Now,
		logger:      logger,
	}
}

// Connect implements [ContactSyncService]. The stylesheet is checked first
// so that a misconfigured transform is reported before the device is
// touched.
func (s *contactSyncService) Connect(ctx context.Context) error {
	if err := s.transformer.Check(); err != nil {
		s.logger.Err(err).Str("func", "contactSyncService.Connect").Msg("stylesheet is not usable")
		return fmt.Errorf("%w: %w", models.ErrTransform, err)
	}

	if err := s.device.Connect(ctx); err != nil {
		return fmt.Errorf("connect device: %w", err)
	}
	return nil
}

// Disconnect implements [ContactSyncService].
func (s *contactSyncService) Disconnect(ctx context.Context) error {
	return s.device.Disconnect(ctx)
}

// SyncContacts implements [ContactSyncService].
func (s *contactSyncService) SyncContacts(ctx context.Context) (models.SyncReport, error) {
	select {
	case s.running <- struct{}{}:
		defer func() { <-s.running }()
	case <-ctx.Done():
		return models.SyncReport{}, fmt.Errorf("wait for running cycle: %w", ctx.Err())
	}

	cycleID := s.ids.Generate()
	log := &logger.Logger{Logger: s.logger.With().
		Str("cycle_id", cycleID).
		Str("object_class", s.objectClass).
		Logger()}
	ctx = utils.WithCycleID(log.WithContext(ctx), cycleID)

	report := models.SyncReport{
		CycleID:     cycleID,
		ObjectClass: s.objectClass,
		StartedAt:   s.now().UTC(),
	}
	log.Info().Str("func", "contactSyncService.SyncContacts").Msg("sync cycle started")

	completed, err := s.runCycle(ctx, &report)
	report.FinishedAt = s.now().UTC()

	if err != nil {
		s.fail(ctx, report, err, completed)
		return report, err
	}

	s.record(ctx, models.SucceededCycle(report))
	log.Info().
		Str("func", "contactSyncService.SyncContacts").
		Str("kind", string(report.Kind)).
		Int("events", report.Events).
		Int("chunks", report.Chunks).
		Dur("took", report.FinishedAt.Sub(report.StartedAt)).
		Msg("sync cycle completed")
	return report, nil
}

// runCycle runs the sync stages. completed reports whether the consumer
// was already told the cycle succeeded.
func (s *contactSyncService) runCycle(ctx context.Context, report *models.SyncReport) (completed bool, err error) {
	log := logger.FromContext(ctx)

	if !s.device.Connected() {
		if err = s.Connect(ctx); err != nil {
			return false, err
		}
	}

	prior, err := s.priorAnchor(ctx)
	if err != nil {
		return false, err
	}

	session, err := s.negotiator.Negotiate(ctx, s.objectClass, prior)
	if err != nil {
		return false, fmt.Errorf("negotiate session: %w", err)
	}
	report.Kind = session.Kind
	report.NewAnchor = session.NewAnchor

	var docs []models.ContactDocument
	if session.IsSlow() {
		batch, err := s.fetcher.FetchAll(ctx, s.objectClass)
		if err != nil {
			return false, fmt.Errorf("fetch records: %w", err)
		}
		report.Chunks = batch.Len()

		if docs, err = s.pipeline.Transform(ctx, batch); err != nil {
			return false, fmt.Errorf("transform records: %w", err)
		}
	} else {
		log.Info().Str("func", "contactSyncService.runCycle").Msg("fast sync: device deltas are not retrieved, nothing to report")
	}

	if report.Events, err = s.emitter.Emit(ctx, session, docs); err != nil {
		return false, err
	}

	if err = s.anchors.SetAnchor(ctx, s.objectClass, session.NewAnchor); err != nil {
		return false, fmt.Errorf("persist anchor: %w", err)
	}

	if err = s.consumer.OnCycleComplete(ctx); err != nil {
		return true, fmt.Errorf("report cycle completion: %w", err)
	}
	return true, nil
}

// priorAnchor returns the stored anchor, or "" when none is stored.
func (s *contactSyncService) priorAnchor(ctx context.Context) (string, error) {
	anchor, err := s.anchors.GetAnchor(ctx, s.objectClass)
	if errors.Is(err, store.ErrAnchorNotFound) {
		logger.FromContext(ctx).Info().Str("func", "contactSyncService.priorAnchor").Msg("no stored anchor, first sync")
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read anchor: %w", err)
	}
	return anchor.Value, nil
}

// fail reports a failed cycle. The device session is dropped when its
// state is unknown: after transport or protocol failures and cancellation.
func (s *contactSyncService) fail(ctx context.Context, report models.SyncReport, cause error, completed bool) {
	log := logger.FromContext(ctx)
	kind := models.KindOf(cause)

	log.Err(cause).
		Str("func", "contactSyncService.fail").
		Str("error_kind", string(kind)).
		Int("events", report.Events).
		Msg("sync cycle failed")

	reportCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reportTimeout)
	defer cancel()

	if !completed {
		if err := s.consumer.OnCycleError(reportCtx, kind, cause.Error()); err != nil {
			log.Err(err).Str("func", "contactSyncService.fail").Msg("consumer did not accept cycle error")
		}
	}

	if dropSession(cause) && s.device.Connected() {
		if err := s.device.Disconnect(reportCtx); err != nil {
			log.Warn().Err(err).Str("func", "contactSyncService.fail").Msg("disconnect after failure")
		}
	}

	s.record(reportCtx, models.FailedCycle(report, cause))
}

func dropSession(err error) bool {
	return errors.Is(err, models.ErrConnection) ||
		errors.Is(err, models.ErrProtocol) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// record stores the cycle in the history and notifies the observer.
// History failures are logged only.
func (s *contactSyncService) record(ctx context.Context, record models.CycleRecord) {
	if s.observer != nil {
		s.observer.ObserveCycle(record)
	}

	if err := s.cycles.SaveCycle(context.WithoutCancel(ctx), record); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "contactSyncService.record").Msg("failed to save cycle history")
	}
}

// CommitChange implements [ContactSyncService].
func (s *contactSyncService) CommitChange(ctx context.Context, event models.ChangeEvent) error {
	logger.FromContext(ctx).Info().
		Str("func", "contactSyncService.CommitChange").
		Str("uid", event.UID).
		Str("change_type", string(event.ChangeType)).
		Msg("writing to the device is not supported, change acknowledged")
	return nil
}
