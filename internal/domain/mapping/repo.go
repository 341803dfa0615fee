package mapping

import "context"

// Repository stores curated mappings keyed by (source_code, target_code).
type Repository interface {
	// Upsert inserts or fully replaces one mapping row.
	Upsert(ctx context.Context, m Mapping) error
	// ListBySource returns all mappings whose source_code equals code.
	ListBySource(ctx context.Context, code string) ([]Mapping, error)
	// ListBySources returns all mappings for the given source codes.
	ListBySources(ctx context.Context, codes []string) ([]Mapping, error)
}
