package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-contact-sync/internal/config"
	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/message"
	"github.com/MKhiriev/go-contact-sync/internal/transport"
	"github.com/MKhiriev/go-contact-sync/models"
)

type fetcher struct {
	session   transport.Session
	maxChunks int
}

// NewBulkFetcher returns a [BulkFetcher] that accepts at most
// cfg.MaxChunks record chunks per slow sync.
func NewBulkFetcher(session transport.Session, cfg config.Sync) BulkFetcher {
	maxChunks := cfg.MaxChunks
	if maxChunks <= 0 {
		maxChunks = config.DefaultMaxChunks
	}
	return &fetcher{session: session, maxChunks: maxChunks}
}

// FetchAll implements [BulkFetcher].
//
// The device answers the get-all request with one chunk, and each
// acknowledgement with the next one, until a chunk carries the
// ready-to-receive marker. Chunks that mention the contact record marker
// are wrapped as contact references; others are kept verbatim.
func (f *fetcher) FetchAll(ctx context.Context, objectClass string) (message.Batch, error) {
	log := logger.FromContext(ctx)

	chunk, err := f.exchange(ctx, message.NewEnvelope(message.MsgGetAllRecordsFromDevice, objectClass))
	if err != nil {
		return message.Batch{}, fmt.Errorf("request all records: %w", err)
	}

	var batch message.Batch
	ack := message.NewEnvelope(message.MsgAcknowledgeChangesFromDevice, objectClass)
	for !message.Contains(chunk, message.MsgDeviceReadyToReceiveChanges) {
		if batch.Len() >= f.maxChunks {
			return message.Batch{}, fmt.Errorf("%w: %w: no %s after %d chunks",
				models.ErrProtocol, ErrChunkLimitExceeded, message.MsgDeviceReadyToReceiveChanges, f.maxChunks)
		}

		if message.Contains(chunk, models.ContactRecordMarker) {
			batch.Append(message.WrapReference(chunk))
		} else {
			batch.Append(chunk)
		}
		log.Debug().Str("func", "fetcher.FetchAll").Int("chunk", batch.Len()).Msg("chunk received")

		if chunk, err = f.exchange(ctx, ack); err != nil {
			return message.Batch{}, fmt.Errorf("acknowledge chunk %d: %w", batch.Len(), err)
		}
	}

	if err = f.session.Send(ctx, message.NewEnvelope(message.MsgPing, message.PingPreparingChanges)); err != nil {
		return message.Batch{}, fmt.Errorf("ping device: %w", err)
	}

	final, err := f.exchange(ctx, message.NewEnvelope(message.MsgFinishSessionOnDevice, objectClass))
	if err != nil {
		return message.Batch{}, fmt.Errorf("finish session: %w", err)
	}
	if !message.Contains(final, message.MsgDeviceFinishedSession) {
		cmd, _ := message.Command(final)
		log.Warn().Str("func", "fetcher.FetchAll").Str("command", cmd).Msg("device did not confirm finished session")
	}

	log.Info().Str("func", "fetcher.FetchAll").Int("chunks", batch.Len()).Msg("all records fetched")
	return batch, nil
}

// exchange sends req and waits for the answer.
func (f *fetcher) exchange(ctx context.Context, req *message.Node) (*message.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrConnection, err)
	}
	if err := f.session.Send(ctx, req); err != nil {
		return nil, err
	}
	return f.session.Receive(ctx)
}
