package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jusunglee/hanzify/internal/db"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository implements db.Repository using SQLite
type Repository struct {
	db *sql.DB
	q  querier
}

// New creates a new SQLite repository
func New(ctx context.Context, dbPath string) (*Repository, error) {
	// Strip sqlite:// prefix if present
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	isNew := dbPath == ":memory:"
	if !isNew {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			isNew = true
		}
	}

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}

	// Each connection to :memory: is its own database.
	if dbPath == ":memory:" {
		sqliteDB.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	if isNew {
		slog.Info("created new SQLite database", "path", dbPath)
	}

	return &Repository{db: sqliteDB, q: sqliteDB}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) WithTx(ctx context.Context, fn func(repo db.Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Repository{db: r.db, q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Lookup methods

const lookupColumns = `id, name, normalized, feminine, hanzi, pinyin, traditional, created_at`

func (r *Repository) RecordLookup(ctx context.Context, arg db.RecordLookupParams) (db.Lookup, error) {
	result, err := r.q.ExecContext(ctx, `
		INSERT INTO lookups (name, normalized, feminine, hanzi, pinyin, traditional)
		VALUES (?, ?, ?, ?, ?, ?)
	`, arg.Name, arg.Normalized, arg.Feminine, arg.Hanzi, arg.Pinyin, arg.Traditional)
	if err != nil {
		return db.Lookup{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return db.Lookup{}, err
	}
	return r.GetLookup(ctx, id)
}

func (r *Repository) GetLookup(ctx context.Context, id int64) (db.Lookup, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+lookupColumns+` FROM lookups WHERE id = ?`, id)
	return scanLookup(row)
}

func (r *Repository) ListRecentLookups(ctx context.Context, arg db.ListRecentLookupsParams) ([]db.Lookup, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+lookupColumns+`
		FROM lookups
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLookups(rows)
}

func (r *Repository) ListPopularNames(ctx context.Context, arg db.ListPopularNamesParams) ([]db.PopularName, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT normalized, hanzi, COUNT(*) AS lookups, MAX(created_at) AS last_seen
		FROM lookups
		WHERE created_at >= ?
		GROUP BY normalized, hanzi
		ORDER BY lookups DESC, last_seen DESC, normalized
		LIMIT ?
	`, formatTime(arg.Since), arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []db.PopularName
	for rows.Next() {
		var n db.PopularName
		var lastSeenStr string
		if err := rows.Scan(&n.Normalized, &n.Hanzi, &n.Count, &lastSeenStr); err != nil {
			return nil, err
		}
		n.LastSeen, _ = time.Parse(time.RFC3339, lastSeenStr)
		names = append(names, n)
	}
	return names, rows.Err()
}

func (r *Repository) CountLookups(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM lookups`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteOldLookups(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.q.ExecContext(ctx, `DELETE FROM lookups WHERE created_at < ?`, formatTime(before))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Scan helpers

func scanLookup(row *sql.Row) (db.Lookup, error) {
	var l db.Lookup
	var createdAtStr string
	err := row.Scan(&l.ID, &l.Name, &l.Normalized, &l.Feminine, &l.Hanzi, &l.Pinyin, &l.Traditional, &createdAtStr)
	if err != nil {
		return db.Lookup{}, db.MapNoRows(err)
	}
	l.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	return l, nil
}

func scanLookups(rows *sql.Rows) ([]db.Lookup, error) {
	var lookups []db.Lookup
	for rows.Next() {
		var l db.Lookup
		var createdAtStr string
		if err := rows.Scan(&l.ID, &l.Name, &l.Normalized, &l.Feminine, &l.Hanzi, &l.Pinyin, &l.Traditional, &createdAtStr); err != nil {
			return nil, err
		}
		l.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		lookups = append(lookups, l)
	}
	return lookups, rows.Err()
}

// formatTime matches the created_at column default.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
