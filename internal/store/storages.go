package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-contact-sync/internal/config"
	"github.com/MKhiriev/go-contact-sync/internal/logger"
)

// Storages groups the repositories backed by one database connection.
type Storages struct {
	AnchorRepository AnchorRepository
	CycleRepository  CycleRepository

	db *DB
}

// NewStorages opens the database named by cfg.DB.DSN, applies pending
// migrations and wires the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnect(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		AnchorRepository: NewAnchorRepository(db, logger),
		CycleRepository:  NewCycleRepository(db, logger),
		db:               db,
	}, nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
