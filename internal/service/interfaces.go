// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the device sync session engine and the
// application services around it.
//
// A sync cycle runs the stages below in order, each behind its own
// interface so that tests can drive them in isolation:
//
//	SessionNegotiator -> BulkFetcher (slow only) -> RecordTransformer -> ChangeEmitter
//
// [ContactSyncService] owns the cycle: it reads the stored anchor, runs the
// stages, persists the new anchor and reports the outcome to the consumer.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-contact-sync/internal/message"
	"github.com/MKhiriev/go-contact-sync/models"
)

// SessionNegotiator performs the hello handshake that opens a sync session.
type SessionNegotiator interface {
	// Negotiate sends the hello envelope for objectClass and classifies the
	// device's answer. An empty priorAnchor announces a first sync.
	Negotiate(ctx context.Context, objectClass, priorAnchor string) (models.SyncSession, error)
}

// BulkFetcher retrieves every record of a slow sync.
type BulkFetcher interface {
	// FetchAll drives the chunk loop and returns the records in device
	// emission order. No partial batch is returned on failure.
	FetchAll(ctx context.Context, objectClass string) (message.Batch, error)
}

// RecordTransformer turns a raw batch into contact documents.
type RecordTransformer interface {
	// Transform converts the whole batch. Any failure discards every
	// document of the batch.
	Transform(ctx context.Context, batch message.Batch) ([]models.ContactDocument, error)
}

// ChangeEmitter reports contact documents as change events.
type ChangeEmitter interface {
	// Emit delivers one event per document in order and returns the number
	// of events delivered before the first failure.
	Emit(ctx context.Context, session models.SyncSession, docs []models.ContactDocument) (int, error)
}

// ContactSyncService runs contact sync cycles against one device.
type ContactSyncService interface {
	// Connect opens the device session after checking the stylesheet.
	Connect(ctx context.Context) error

	// Disconnect closes the device session.
	Disconnect(ctx context.Context) error

	// SyncContacts runs one full cycle and reports it to the consumer.
	// Cycles are serialized; a second caller waits for the running cycle
	// or for ctx to be done.
	SyncContacts(ctx context.Context) (models.SyncReport, error)

	// CommitChange accepts a change from the sync engine. Writing back to
	// the device is not supported; the change is acknowledged untouched.
	CommitChange(ctx context.Context, event models.ChangeEvent) error
}

// SyncStateService exposes persisted sync state to the control API.
type SyncStateService interface {
	GetAnchor(ctx context.Context, objectClass string) (models.AnchorResponse, error)
	// ResetAnchor forgets the anchor so the next cycle is a first sync.
	ResetAnchor(ctx context.Context, objectClass string) error
	ListCycles(ctx context.Context, objectClass string, limit uint64) ([]models.CycleRecord, error)
}

// ContactSyncJob runs sync cycles periodically.
type ContactSyncJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

// AppInfoService reports build and plugin metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetPluginInfo(ctx context.Context) models.PluginInfo
}

// AuthService issues and verifies control API tokens.
type AuthService interface {
	CreateToken(ctx context.Context, operator string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// CycleObserver is notified of every finished cycle.
type CycleObserver interface {
	ObserveCycle(record models.CycleRecord)
}
