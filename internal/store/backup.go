package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// backupRepo implements BackupRepo on the backups table.
type backupRepo struct {
	drv *entsql.Driver
}

var backupColumns = []string{"id", "reason", "revision", "created_at", "data"}

func (r *backupRepo) Save(ctx context.Context, b *Backup) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableBackups).
		Columns(backupColumns...).
		Values(b.ID, b.Reason, b.Revision, b.CreatedAt.UnixMilli(), b.Data).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save backup: %w", err)
	}
	return nil
}

func (r *backupRepo) Get(ctx context.Context, id string) (*Backup, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(backupColumns...).
		From(entsql.Table(tableBackups)).
		Where(entsql.EQ("id", id))

	backups, err := r.query(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(backups) == 0 {
		return nil, fmt.Errorf("backup %q: %w", id, ErrNotFound)
	}
	return &backups[0], nil
}

func (r *backupRepo) List(ctx context.Context, opts QueryOpts) ([]Backup, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(backupColumns...).
		From(entsql.Table(tableBackups)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("revision"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	return r.query(ctx, sel)
}

func (r *backupRepo) Prune(ctx context.Context, keep int) error {
	// Find the threshold: the newest backup that falls outside the window.
	sel := entsql.Dialect(dialect.SQLite).
		Select(backupColumns...).
		From(entsql.Table(tableBackups)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("revision")).
		Offset(keep).
		Limit(1)
	backups, err := r.query(ctx, sel)
	if err != nil {
		return fmt.Errorf("query backups for prune: %w", err)
	}
	if len(backups) == 0 {
		return nil // fewer than keep backups exist
	}

	threshold := backups[0].CreatedAt.UnixMilli()
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(tableBackups).
		Where(entsql.LTE("created_at", threshold)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune backups: %w", err)
	}
	return nil
}

func (r *backupRepo) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).Delete(tableBackups).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear backups: %w", err)
	}
	return nil
}

func (r *backupRepo) query(ctx context.Context, sel *entsql.Selector) ([]Backup, error) {
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query backups: %w", err)
	}
	defer rows.Close()

	var out []Backup
	for rows.Next() {
		var (
			b         Backup
			createdMs int64
		)
		if err := rows.Scan(&b.ID, &b.Reason, &b.Revision, &createdMs, &b.Data); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		b.CreatedAt = time.UnixMilli(createdMs).UTC()
		out = append(out, b)
	}
	return out, rows.Err()
}
