package terminology

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a code has no reference row.
var ErrNotFound = errors.New("code not found")

// CodeRepository provides access to the per-system reference tables.
type CodeRepository interface {
	// Search returns up to limit entries whose display, description or
	// code contains query, case-insensitively.
	Search(ctx context.Context, system System, query string, limit int) ([]CodeEntry, error)
	// GetByCode returns the entry for code, or ErrNotFound.
	GetByCode(ctx context.Context, system System, code string) (*CodeEntry, error)
	// DisplayMap resolves codes to display text in one round trip.
	// Codes with no reference row are absent from the returned map.
	DisplayMap(ctx context.Context, system System, codes []string) (map[string]string, error)
	// UpsertBatch writes entries keyed by code, replacing all columns.
	UpsertBatch(ctx context.Context, system System, entries []CodeEntry) error
	// UpsertOne writes a single entry keyed by code.
	UpsertOne(ctx context.Context, system System, entry CodeEntry) error
}
