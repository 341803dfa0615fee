package terminology

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

const maxSearchLimit = 100

// MappingLookup resolves the best translation per source code. The
// mapping domain provides the implementation; the interface lives here
// so search can annotate results without a package cycle.
type MappingLookup interface {
	BestMappings(ctx context.Context, sourceCodes []string) (map[string]MappedConcept, error)
}

// Service implements terminology search across the reference tables.
type Service struct {
	repo     CodeRepository
	mappings MappingLookup
	logger   zerolog.Logger
}

func NewService(repo CodeRepository, mappings MappingLookup, logger zerolog.Logger) *Service {
	return &Service{repo: repo, mappings: mappings, logger: logger}
}

// Search matches query against each applicable system independently,
// returning up to limit hits per system, each annotated with its best
// mapping when one exists. Zero hits is a normal empty result. No
// minimum query length is enforced here; gating short queries is the
// caller's concern.
func (s *Service) Search(ctx context.Context, query string, system System, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if limit <= 0 {
		limit = 20
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	systems := []System{system}
	if system == SystemAll {
		systems = Systems()
	}

	results := make([]SearchResult, 0)
	var codes []string
	for _, sys := range systems {
		entries, err := s.repo.Search(ctx, sys, query, limit)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", sys, err)
		}
		for _, e := range entries {
			results = append(results, SearchResult{
				System:      sys,
				Code:        e.Code,
				Display:     e.Display,
				Description: e.Description,
				Category:    e.Category,
				SystemURI:   e.SystemURI,
			})
			codes = append(codes, e.Code)
		}
	}

	if s.mappings != nil && len(codes) > 0 {
		best, err := s.mappings.BestMappings(ctx, codes)
		if err != nil {
			// Annotation is best-effort; hits are still useful bare.
			s.logger.Warn().Err(err).Msg("best-mapping annotation failed")
			return results, nil
		}
		for i := range results {
			if m, ok := best[results[i].Code]; ok {
				mc := m
				results[i].Mapping = &mc
			}
		}
	}
	return results, nil
}

// Lookup fetches a single entry by system and code.
func (s *Service) Lookup(ctx context.Context, system System, code string) (*CodeEntry, error) {
	return s.repo.GetByCode(ctx, system, code)
}
