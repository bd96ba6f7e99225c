package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// entryRepo implements EntryRepo on the entries table.
type entryRepo struct {
	drv *entsql.Driver
	rev *revisionCounter
}

func (r *entryRepo) Load(ctx context.Context, key string) (*Entry, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("name", "value", "revision", "updated_at").
		From(entsql.Table(tableEntries)).
		Where(entsql.EQ("name", key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query entry %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("read entry %q: %w", key, err)
		}
		return nil, ErrNotFound
	}

	var (
		e         Entry
		updatedMs int64
	)
	if err := rows.Scan(&e.Key, &e.Value, &e.Revision, &updatedMs); err != nil {
		return nil, fmt.Errorf("scan entry %q: %w", key, err)
	}
	e.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return &e, nil
}

func (r *entryRepo) SaveAll(ctx context.Context, values map[string][]byte) (int64, error) {
	rev, err := r.rev.Next(ctx)
	if err != nil {
		return 0, err
	}
	if err := r.upsert(ctx, values, rev, time.Now()); err != nil {
		return 0, err
	}
	return rev, nil
}

// upsert writes values stamped with rev in one transaction. A row already
// holding a newer revision is left alone, so a writer that drew its
// revision first but commits last cannot overwrite a newer state.
func (r *entryRepo) upsert(ctx context.Context, values map[string][]byte, rev int64, at time.Time) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin entries tx: %w", err)
	}
	for _, k := range keys {
		query, args := entsql.Dialect(dialect.SQLite).
			Insert(tableEntries).
			Columns("name", "value", "revision", "updated_at").
			Values(k, values[k], rev, at.UnixMilli()).
			OnConflict(
				entsql.ConflictColumns("name"),
				entsql.ResolveWithNewValues(),
				entsql.UpdateWhere(entsql.ExprP("excluded.revision > "+tableEntries+".revision")),
			).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("save entry %q: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit entries: %w", err)
	}
	return nil
}

func (r *entryRepo) Revision(ctx context.Context) (int64, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Max("revision")).
		From(entsql.Table(tableEntries)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("query revision: %w", err)
	}
	defer rows.Close()

	var rev sql.NullInt64
	if rows.Next() {
		if err := rows.Scan(&rev); err != nil {
			return 0, fmt.Errorf("scan revision: %w", err)
		}
	}
	return rev.Int64, rows.Err()
}

func (r *entryRepo) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).Delete(tableEntries).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	return nil
}
