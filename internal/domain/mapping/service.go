package mapping

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/termbridge/termbridge/internal/domain/terminology"
)

// Service answers translate queries over the curated mapping table.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Translate returns every mapping whose source_code equals code.
// Codes are unique across curated source systems, so the system
// argument only documents caller intent. No mapping yields
// success=false with an empty list, not an error.
func (s *Service) Translate(ctx context.Context, system terminology.System, code string) (*TranslateResult, error) {
	mappings, err := s.repo.ListBySource(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("translate %s/%s: %w", system, code, err)
	}

	result := &TranslateResult{
		Success:      len(mappings) > 0,
		Translations: make([]Translation, 0, len(mappings)),
	}
	for _, m := range mappings {
		result.Translations = append(result.Translations, Translation{
			TargetCode:    m.TargetCode,
			TargetDisplay: m.TargetDisplay,
			TargetSystem:  m.TargetSystem,
			Equivalence:   m.Equivalence,
			Confidence:    m.Confidence,
		})
	}
	return result, nil
}

// BestMappings implements terminology.MappingLookup for search-result
// annotation: one winning mapping per source code, highest confidence
// first, ties broken by smallest target code.
func (s *Service) BestMappings(ctx context.Context, sourceCodes []string) (map[string]terminology.MappedConcept, error) {
	mappings, err := s.repo.ListBySources(ctx, sourceCodes)
	if err != nil {
		return nil, err
	}

	bySource := make(map[string][]Mapping)
	for _, m := range mappings {
		bySource[m.SourceCode] = append(bySource[m.SourceCode], m)
	}

	out := make(map[string]terminology.MappedConcept, len(bySource))
	for code, ms := range bySource {
		best := BestMapping(ms)
		out[code] = terminology.MappedConcept{
			TargetCode:    best.TargetCode,
			TargetDisplay: best.TargetDisplay,
			TargetSystem:  best.TargetSystem,
			Equivalence:   best.Equivalence,
			Confidence:    best.Confidence,
		}
	}
	return out, nil
}
