package mapping

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/termbridge/termbridge/internal/domain/terminology"
)

// BuildResult is the tally for one builder run.
type BuildResult struct {
	Loaded   int      `json:"loaded"`
	Failed   int      `json:"failed"`
	Dangling []string `json:"dangling,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// Builder denormalizes curated tuples against the reference tables and
// upserts them. Re-running adds and updates only; mappings absent from
// the new tuple list are left in place.
type Builder struct {
	codes  terminology.CodeRepository
	repo   Repository
	logger zerolog.Logger
}

func NewBuilder(codes terminology.CodeRepository, repo Repository, logger zerolog.Logger) *Builder {
	return &Builder{codes: codes, repo: repo, logger: logger}
}

// Build resolves display text for every tuple in two bulk lookups, then
// upserts the denormalized rows with status approved. A code missing
// from its reference table falls back to the bare code as display and
// is reported as a dangling reference.
func (b *Builder) Build(ctx context.Context, tuples []CuratedTuple) (*BuildResult, error) {
	sourceCodes := make([]string, 0, len(tuples))
	targetCodes := make([]string, 0, len(tuples))
	for _, t := range tuples {
		sourceCodes = append(sourceCodes, t.SourceCode)
		targetCodes = append(targetCodes, t.TargetCode)
	}

	sourceDisplays, err := b.codes.DisplayMap(ctx, terminology.SystemNAMASTE, sourceCodes)
	if err != nil {
		return nil, fmt.Errorf("resolve source displays: %w", err)
	}
	targetDisplays, err := b.codes.DisplayMap(ctx, terminology.SystemICD11, targetCodes)
	if err != nil {
		return nil, fmt.Errorf("resolve target displays: %w", err)
	}

	result := &BuildResult{}
	for _, t := range tuples {
		sourceDisplay, ok := sourceDisplays[t.SourceCode]
		if !ok {
			sourceDisplay = t.SourceCode
			result.Dangling = append(result.Dangling, t.SourceCode)
			b.logger.Warn().Str("code", t.SourceCode).Str("side", "source").
				Msg("curated mapping references a code missing from the reference table")
		}
		targetDisplay, ok := targetDisplays[t.TargetCode]
		if !ok {
			targetDisplay = t.TargetCode
			result.Dangling = append(result.Dangling, t.TargetCode)
			b.logger.Warn().Str("code", t.TargetCode).Str("side", "target").
				Msg("curated mapping references a code missing from the reference table")
		}

		m := Mapping{
			SourceCode:    t.SourceCode,
			SourceDisplay: sourceDisplay,
			SourceSystem:  terminology.NamasteURI,
			TargetCode:    t.TargetCode,
			TargetDisplay: targetDisplay,
			TargetSystem:  terminology.ICD11URI,
			Confidence:    NormalizeConfidence(t.Confidence),
			Equivalence:   t.Equivalence,
			Method:        MethodCurated,
			Status:        StatusApproved,
			Evidence:      t.Evidence,
		}
		if err := b.repo.Upsert(ctx, m); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s->%s: %v", t.SourceCode, t.TargetCode, err))
			continue
		}
		result.Loaded++
	}

	b.logger.Info().
		Int("loaded", result.Loaded).
		Int("failed", result.Failed).
		Int("dangling", len(result.Dangling)).
		Msg("curated mapping build complete")
	return result, nil
}
