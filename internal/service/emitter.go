package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-contact-sync/internal/adapter"
	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/models"
)

type emitter struct {
	consumer adapter.ChangeConsumer
}

// NewChangeEmitter returns a [ChangeEmitter] that reports to consumer.
func NewChangeEmitter(consumer adapter.ChangeConsumer) ChangeEmitter {
	return &emitter{consumer: consumer}
}

// Emit implements [ChangeEmitter]. Every document of a slow session is
// reported as added, every document of a fast session as modified.
func (e *emitter) Emit(ctx context.Context, session models.SyncSession, docs []models.ContactDocument) (int, error) {
	changeType := models.ChangeTypeFor(session.Kind)

	for i, doc := range docs {
		if err := e.consumer.OnChange(ctx, models.NewChangeEvent(doc, changeType)); err != nil {
			return i, fmt.Errorf("emit %s change for %q: %w", changeType, doc.UID, err)
		}
	}

	logger.FromContext(ctx).Debug().
		Str("func", "emitter.Emit").
		Str("change_type", string(changeType)).
		Int("events", len(docs)).
		Msg("change events delivered")
	return len(docs), nil
}
