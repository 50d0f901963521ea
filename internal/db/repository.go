package db

import (
	"context"
	"time"
)

// Lookup is one recorded transliteration.
type Lookup struct {
	ID          int64
	Name        string
	Normalized  string
	Feminine    bool
	Hanzi       string
	Pinyin      string
	Traditional string
	CreatedAt   time.Time
}

// PopularName aggregates lookups of the same normalized name.
type PopularName struct {
	Normalized string
	Hanzi      string
	Count      int64
	LastSeen   time.Time
}

type RecordLookupParams struct {
	Name        string
	Normalized  string
	Feminine    bool
	Hanzi       string
	Pinyin      string
	Traditional string
}

type ListRecentLookupsParams struct {
	Limit  int32
	Offset int32
}

type ListPopularNamesParams struct {
	Limit int32
	Since time.Time
}

// Repository defines the interface for database operations
type Repository interface {
	// Lookups
	RecordLookup(ctx context.Context, arg RecordLookupParams) (Lookup, error)
	GetLookup(ctx context.Context, id int64) (Lookup, error)
	ListRecentLookups(ctx context.Context, arg ListRecentLookupsParams) ([]Lookup, error)
	ListPopularNames(ctx context.Context, arg ListPopularNamesParams) ([]PopularName, error)
	CountLookups(ctx context.Context) (int64, error)

	// Retention/Cleanup
	DeleteOldLookups(ctx context.Context, before time.Time) (int64, error)

	// Transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
