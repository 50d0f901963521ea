package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jusunglee/hanzify/internal/db"
	"github.com/jusunglee/hanzify/internal/metrics"
)

//go:embed schema.sql
var schemaSQL string

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements db.Repository using PostgreSQL via pgx
type Repository struct {
	pool *pgxpool.Pool
	q    querier
}

// New creates a new PostgreSQL repository and applies the schema.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	pool, err := db.NewPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{pool: pool, q: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// RecordPoolStats copies the pool counters into the DB gauges.
func (r *Repository) RecordPoolStats() {
	stat := r.pool.Stat()
	metrics.DBPoolTotalConns.Set(float64(stat.TotalConns()))
	metrics.DBPoolIdleConns.Set(float64(stat.IdleConns()))
	metrics.DBPoolAcquiredConns.Set(float64(stat.AcquiredConns()))
	metrics.DBPoolMaxConns.Set(float64(stat.MaxConns()))
}

func (r *Repository) WithTx(ctx context.Context, fn func(repo db.Repository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	// If fn() panics, the normal err-check rollback below won't run.
	// recover() catches the panic so we can roll back the tx (releasing the db connection), then re-panic.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback(ctx)
			panic(r)
		}
	}()

	err = fn(&Repository{pool: r.pool, q: tx})
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Lookup methods

const lookupColumns = `id, name, normalized, feminine, hanzi, pinyin, traditional, created_at`

func (r *Repository) RecordLookup(ctx context.Context, arg db.RecordLookupParams) (db.Lookup, error) {
	row := r.q.QueryRow(ctx, `
		INSERT INTO lookups (name, normalized, feminine, hanzi, pinyin, traditional)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+lookupColumns,
		arg.Name, arg.Normalized, arg.Feminine, arg.Hanzi, arg.Pinyin, arg.Traditional)
	return scanLookup(row)
}

func (r *Repository) GetLookup(ctx context.Context, id int64) (db.Lookup, error) {
	row := r.q.QueryRow(ctx, `SELECT `+lookupColumns+` FROM lookups WHERE id = $1`, id)
	return scanLookup(row)
}

func (r *Repository) ListRecentLookups(ctx context.Context, arg db.ListRecentLookupsParams) ([]db.Lookup, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+lookupColumns+`
		FROM lookups
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Lookup, error) {
		return scanLookup(row)
	})
}

func (r *Repository) ListPopularNames(ctx context.Context, arg db.ListPopularNamesParams) ([]db.PopularName, error) {
	rows, err := r.q.Query(ctx, `
		SELECT normalized, hanzi, COUNT(*) AS lookups, MAX(created_at) AS last_seen
		FROM lookups
		WHERE created_at >= $1
		GROUP BY normalized, hanzi
		ORDER BY lookups DESC, last_seen DESC, normalized
		LIMIT $2
	`, arg.Since, arg.Limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.PopularName, error) {
		var n db.PopularName
		err := row.Scan(&n.Normalized, &n.Hanzi, &n.Count, &n.LastSeen)
		return n, err
	})
}

func (r *Repository) CountLookups(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM lookups`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteOldLookups(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM lookups WHERE created_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanLookup(row pgx.Row) (db.Lookup, error) {
	var l db.Lookup
	err := row.Scan(&l.ID, &l.Name, &l.Normalized, &l.Feminine, &l.Hanzi, &l.Pinyin, &l.Traditional, &l.CreatedAt)
	if err != nil {
		return db.Lookup{}, db.MapNoRows(err)
	}
	return l, nil
}
