package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/models"
)

type anchorRepository struct {
	db     *DB
	now    func() time.Time
	logger *logger.Logger
}

func NewAnchorRepository(db *DB, logger *logger.Logger) AnchorRepository {
	logger.Debug().Msg("AnchorRepository created")
	return &anchorRepository{
		db:     db,
		now:    time.Now,
		logger: logger,
	}
}

func (r *anchorRepository) GetAnchor(ctx context.Context, objectClass string) (models.Anchor, error) {
	query, args, err := buildSelectAnchorQuery(r.db.builder(), objectClass)
	if err != nil {
		r.logger.Err(err).Str("func", "*anchorRepository.GetAnchor").Msg("error building query")
		return models.Anchor{}, err
	}

	var anchor models.Anchor
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&anchor.ObjectClass, &anchor.Value, &anchor.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Anchor{}, ErrAnchorNotFound
	case err != nil:
		r.logger.Err(err).
			Str("func", "*anchorRepository.GetAnchor").
			Str("object_class", objectClass).
			Msg("error reading anchor")
		return models.Anchor{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return anchor, nil
}

func (r *anchorRepository) SetAnchor(ctx context.Context, objectClass, value string) error {
	query, args, err := buildUpsertAnchorQuery(r.db.builder(), objectClass, value, r.now().UTC())
	if err != nil {
		r.logger.Err(err).Str("func", "*anchorRepository.SetAnchor").Msg("error building query")
		return err
	}

	if _, err = r.db.exec(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "*anchorRepository.SetAnchor").
			Str("object_class", objectClass).
			Msg("error saving anchor")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *anchorRepository) DeleteAnchor(ctx context.Context, objectClass string) error {
	query, args, err := buildDeleteAnchorQuery(r.db.builder(), objectClass)
	if err != nil {
		r.logger.Err(err).Str("func", "*anchorRepository.DeleteAnchor").Msg("error building query")
		return err
	}

	res, err := r.db.exec(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).
			Str("func", "*anchorRepository.DeleteAnchor").
			Str("object_class", objectClass).
			Msg("error deleting anchor")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAnchorNotFound
	}

	return nil
}
