// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter delivers the contact change feed to the sync engine.
//
// The primary abstraction is [ChangeConsumer], which decouples the sync
// service from the engine that consumes change events. The package ships an
// HTTP/REST implementation ([NewHTTPChangeConsumer]) and a JSON-lines writer
// used for dry runs ([NewJSONLinesConsumer]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrDuplicateChange] for 409, [ErrUnauthorized] for 401).
// Callbacks are posted once and never retried.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-contact-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ChangeConsumer receives the outcome of a sync cycle. Calls for one cycle
// are made sequentially: zero or more OnChange calls followed by exactly one
// of OnCycleComplete or OnCycleError.
//
// The cycle identifier, when present, is available from the context via
// utils.GetCycleIDFromContext.
type ChangeConsumer interface {
	// OnChange reports a single change event. A returned error ends the
	// cycle in failure.
	OnChange(ctx context.Context, event models.ChangeEvent) error

	// OnCycleComplete reports that every event of the cycle was delivered.
	OnCycleComplete(ctx context.Context) error

	// OnCycleError reports the terminal failure of a cycle.
	OnCycleError(ctx context.Context, kind models.ErrorKind, message string) error
}
