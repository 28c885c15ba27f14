package store

import (
	"context"

	"github.com/MKhiriev/go-contact-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AnchorRepository persists the last successful sync anchor per object class.
type AnchorRepository interface {
	// GetAnchor returns the stored anchor or [ErrAnchorNotFound].
	GetAnchor(ctx context.Context, objectClass string) (models.Anchor, error)
	// SetAnchor inserts or replaces the anchor of objectClass.
	SetAnchor(ctx context.Context, objectClass, value string) error
	// DeleteAnchor forgets the anchor so the next cycle is a first sync.
	// Deleting a missing anchor returns [ErrAnchorNotFound].
	DeleteAnchor(ctx context.Context, objectClass string) error
}

// CycleRepository keeps the history of finished sync cycles.
type CycleRepository interface {
	SaveCycle(ctx context.Context, record models.CycleRecord) error
	// ListCycles returns the newest cycles of objectClass first, at most limit.
	ListCycles(ctx context.Context, objectClass string, limit uint64) ([]models.CycleRecord, error)
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
