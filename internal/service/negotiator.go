package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/message"
	"github.com/MKhiriev/go-contact-sync/internal/transport"
	"github.com/MKhiriev/go-contact-sync/models"
)

// vtimeLayout is the host timestamp format of the hello envelope.
const vtimeLayout = "20060102T150405Z"

type negotiator struct {
	session transport.Session
	now     func() time.Time
}

// NewSessionNegotiator returns a [SessionNegotiator] talking over session.
func NewSessionNegotiator(session transport.Session) SessionNegotiator {
	return &negotiator{session: session, now: time.Now}
}

// Negotiate implements [SessionNegotiator].
func (n *negotiator) Negotiate(ctx context.Context, objectClass, priorAnchor string) (models.SyncSession, error) {
	log := logger.FromContext(ctx)

	started := n.now().UTC()
	if priorAnchor == "" {
		priorAnchor = message.FirstSyncAnchor
	}

	hello := message.NewHello(objectClass, priorAnchor, started.Format(vtimeLayout))
	if err := n.session.Send(ctx, hello); err != nil {
		return models.SyncSession{}, fmt.Errorf("send hello: %w", err)
	}

	answer, err := n.session.Receive(ctx)
	if err != nil {
		return models.SyncSession{}, fmt.Errorf("receive hello answer: %w", err)
	}

	resp, err := message.DecodeHelloResponse(answer, objectClass)
	if err != nil {
		log.Err(err).Str("func", "negotiator.Negotiate").Msg("unexpected hello answer")
		return models.SyncSession{}, err
	}

	session := models.SyncSession{
		ObjectClass:     objectClass,
		Kind:            resp.Kind(),
		PriorAnchor:     priorAnchor,
		DeviceOldAnchor: resp.OldAnchor,
		NewAnchor:       resp.NewAnchor,
		SessionNumber:   resp.SessionNumber,
		StartedAt:       started,
	}

	log.Info().
		Str("func", "negotiator.Negotiate").
		Str("kind", string(session.Kind)).
		Str("sync_type", resp.SyncType).
		Str("prior_anchor", priorAnchor).
		Str("device_old_anchor", resp.OldAnchor).
		Str("new_anchor", resp.NewAnchor).
		Uint64("session_number", resp.SessionNumber).
		Msg("sync session negotiated")

	return session, nil
}
