package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/models"
)

type cycleRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewCycleRepository(db *DB, logger *logger.Logger) CycleRepository {
	logger.Debug().Msg("CycleRepository created")
	return &cycleRepository{
		db:     db,
		logger: logger,
	}
}

func (r *cycleRepository) SaveCycle(ctx context.Context, record models.CycleRecord) error {
	query, args, err := buildInsertCycleQuery(r.db.builder(), record)
	if err != nil {
		r.logger.Err(err).Str("func", "*cycleRepository.SaveCycle").Msg("error building query")
		return err
	}

	if _, err = r.db.exec(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "*cycleRepository.SaveCycle").
			Str("cycle_id", record.CycleID).
			Msg("error saving cycle")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *cycleRepository) ListCycles(ctx context.Context, objectClass string, limit uint64) ([]models.CycleRecord, error) {
	query, args, err := buildListCyclesQuery(r.db.builder(), objectClass, limit)
	if err != nil {
		r.logger.Err(err).Str("func", "*cycleRepository.ListCycles").Msg("error building query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).
			Str("func", "*cycleRepository.ListCycles").
			Str("object_class", objectClass).
			Msg("error listing cycles")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.CycleRecord, 0)
	for rows.Next() {
		var (
			rec                     models.CycleRecord
			kind, result, errorKind string
		)
		if err := rows.Scan(
			&rec.CycleID,
			&rec.ObjectClass,
			&kind,
			&result,
			&errorKind,
			&rec.Message,
			&rec.Events,
			&rec.Chunks,
			&rec.StartedAt,
			&rec.FinishedAt,
		); err != nil {
			r.logger.Err(err).Str("func", "*cycleRepository.ListCycles").Msg("error scanning cycle row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		rec.Kind = models.SessionKind(kind)
		rec.Result = models.CycleResult(result)
		rec.ErrorKind = models.ErrorKind(errorKind)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
