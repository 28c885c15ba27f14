package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/store"
	"github.com/MKhiriev/go-contact-sync/models"
)

const (
	DefaultCycleListLimit uint64 = 20
	MaxCycleListLimit     uint64 = 500
)

type syncStateService struct {
	anchors store.AnchorRepository
	cycles  store.CycleRepository

	logger *logger.Logger
}

// NewSyncStateService returns a [SyncStateService] over the given repositories.
func NewSyncStateService(anchors store.AnchorRepository, cycles store.CycleRepository, logger *logger.Logger) SyncStateService {
	return &syncStateService{anchors: anchors, cycles: cycles, logger: logger}
}

// GetAnchor implements [SyncStateService]. A missing anchor is not an
// error: the response reports Found=false.
func (s *syncStateService) GetAnchor(ctx context.Context, objectClass string) (models.AnchorResponse, error) {
	if objectClass == "" {
		return models.AnchorResponse{}, ErrInvalidDataProvided
	}

	anchor, err := s.anchors.GetAnchor(ctx, objectClass)
	if errors.Is(err, store.ErrAnchorNotFound) {
		return models.AnchorResponse{ObjectClass: objectClass}, nil
	}
	if err != nil {
		return models.AnchorResponse{}, fmt.Errorf("get anchor: %w", err)
	}

	updatedAt := anchor.UpdatedAt
	return models.AnchorResponse{
		ObjectClass: objectClass,
		Anchor:      anchor.Value,
		Found:       true,
		UpdatedAt:   &updatedAt,
	}, nil
}

// ResetAnchor implements [SyncStateService].
func (s *syncStateService) ResetAnchor(ctx context.Context, objectClass string) error {
	if objectClass == "" {
		return ErrInvalidDataProvided
	}

	if err := s.anchors.DeleteAnchor(ctx, objectClass); err != nil {
		return fmt.Errorf("reset anchor: %w", err)
	}
	logger.FromContext(ctx).Info().
		Str("func", "syncStateService.ResetAnchor").
		Str("object_class", objectClass).
		Msg("anchor reset, next cycle is a first sync")
	return nil
}

// ListCycles implements [SyncStateService]. A zero limit selects
// DefaultCycleListLimit; larger limits are capped at MaxCycleListLimit.
func (s *syncStateService) ListCycles(ctx context.Context, objectClass string, limit uint64) ([]models.CycleRecord, error) {
	if objectClass == "" {
		return nil, ErrInvalidDataProvided
	}

	switch {
	case limit == 0:
		limit = DefaultCycleListLimit
	case limit > MaxCycleListLimit:
		limit = MaxCycleListLimit
	}

	cycles, err := s.cycles.ListCycles(ctx, objectClass, limit)
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	return cycles, nil
}
