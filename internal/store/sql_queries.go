package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-contact-sync/models"
)

const (
	anchorsTable = "sync_anchors"
	cyclesTable  = "sync_cycles"

	upsertAnchorSuffix = "ON CONFLICT (object_class) DO UPDATE SET anchor = excluded.anchor, updated_at = excluded.updated_at"
)

var cycleColumns = []string{
	"cycle_id",
	"object_class",
	"kind",
	"result",
	"error_kind",
	"message",
	"events",
	"chunks",
	"started_at",
	"finished_at",
}

func buildSelectAnchorQuery(b sq.StatementBuilderType, objectClass string) (string, []any, error) {
	query, args, err := b.
		Select("object_class", "anchor", "updated_at").
		From(anchorsTable).
		Where(sq.Eq{"object_class": objectClass}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpsertAnchorQuery(b sq.StatementBuilderType, objectClass, value string, updatedAt time.Time) (string, []any, error) {
	query, args, err := b.
		Insert(anchorsTable).
		Columns("object_class", "anchor", "updated_at").
		Values(objectClass, value, updatedAt).
		Suffix(upsertAnchorSuffix).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteAnchorQuery(b sq.StatementBuilderType, objectClass string) (string, []any, error) {
	query, args, err := b.
		Delete(anchorsTable).
		Where(sq.Eq{"object_class": objectClass}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertCycleQuery(b sq.StatementBuilderType, r models.CycleRecord) (string, []any, error) {
	query, args, err := b.
		Insert(cyclesTable).
		Columns(cycleColumns...).
		Values(
			r.CycleID,
			r.ObjectClass,
			string(r.Kind),
			string(r.Result),
			string(r.ErrorKind),
			r.Message,
			r.Events,
			r.Chunks,
			r.StartedAt,
			r.FinishedAt,
		).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildListCyclesQuery(b sq.StatementBuilderType, objectClass string, limit uint64) (string, []any, error) {
	q := b.
		Select(cycleColumns...).
		From(cyclesTable).
		Where(sq.Eq{"object_class": objectClass}).
		OrderBy("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
