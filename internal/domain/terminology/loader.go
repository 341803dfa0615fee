package terminology

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const defaultChunkSize = 50

// LoadResult is the per-run tally reported by the loader. A run only
// fails outright on unreadable input; row-level failures are counted.
type LoadResult struct {
	Parsed         int      `json:"parsed"`
	Loaded         int      `json:"loaded"`
	Failed         int      `json:"failed"`
	SkippedHeaders int      `json:"skipped_headers"`
	SkippedBlank   int      `json:"skipped_blank"`
	Duplicates     int      `json:"duplicates"`
	Errors         []string `json:"errors,omitempty"`
}

// Loader ingests reference vocabularies from CSV files or seed slices.
type Loader struct {
	repo      CodeRepository
	logger    zerolog.Logger
	chunkSize int
}

func NewLoader(repo CodeRepository, logger zerolog.Logger) *Loader {
	return &Loader{repo: repo, logger: logger, chunkSize: defaultChunkSize}
}

// column aliases accepted in CSV headers, lowercased.
var (
	codeColumns        = []string{"code", "namaste_code", "icd11_code", "snomed_code", "loinc_code"}
	displayColumns     = []string{"display", "term", "name", "title"}
	descriptionColumns = []string{"description", "definition", "long_name", "component"}
	categoryColumns    = []string{"category", "semantic_tag", "ayush_system", "chapter"}
)

func findColumn(header []string, aliases []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, a := range aliases {
			if h == a {
				return i
			}
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// isHeaderEcho reports whether a data row restates the header line,
// case-insensitively with whitespace trimmed. Exports sometimes repeat
// the header mid-file after concatenation.
func isHeaderEcho(record, header []string) bool {
	if len(record) != len(header) {
		return false
	}
	for i := range record {
		if !strings.EqualFold(strings.TrimSpace(record[i]), strings.TrimSpace(header[i])) {
			return false
		}
	}
	return true
}

// LoadCSV parses one system's CSV stream and upserts the rows.
// Duplicate header lines and rows with a blank code are discarded;
// within the batch the first occurrence of each code wins.
func (l *Loader) LoadCSV(ctx context.Context, system System, r io.Reader) (*LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	codeIdx := findColumn(header, codeColumns)
	if codeIdx < 0 {
		return nil, fmt.Errorf("csv header has no code column: %v", header)
	}
	displayIdx := findColumn(header, displayColumns)
	descIdx := findColumn(header, descriptionColumns)
	catIdx := findColumn(header, categoryColumns)

	result := &LoadResult{}
	seen := make(map[string]bool)
	var entries []CodeEntry

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Parsed++

		if isHeaderEcho(record, header) {
			result.SkippedHeaders++
			continue
		}
		code := field(record, codeIdx)
		if code == "" {
			result.SkippedBlank++
			continue
		}
		if seen[code] {
			result.Duplicates++
			continue
		}
		seen[code] = true

		entries = append(entries, CodeEntry{
			Code:        code,
			Display:     field(record, displayIdx),
			Description: field(record, descIdx),
			Category:    field(record, catIdx),
			SystemURI:   system.URI(),
			Active:      true,
		})
	}

	l.upsertChunks(ctx, system, entries, result)
	l.logger.Info().
		Str("system", string(system)).
		Int("parsed", result.Parsed).
		Int("loaded", result.Loaded).
		Int("failed", result.Failed).
		Int("skipped_headers", result.SkippedHeaders).
		Int("skipped_blank", result.SkippedBlank).
		Int("duplicates", result.Duplicates).
		Msg("reference load complete")
	return result, nil
}

// LoadEntries upserts a pre-built slice, deduplicating by code. Used by
// the seed command.
func (l *Loader) LoadEntries(ctx context.Context, system System, in []CodeEntry) (*LoadResult, error) {
	result := &LoadResult{Parsed: len(in)}
	seen := make(map[string]bool)
	var entries []CodeEntry
	for _, e := range in {
		if e.Code == "" {
			result.SkippedBlank++
			continue
		}
		if seen[e.Code] {
			result.Duplicates++
			continue
		}
		seen[e.Code] = true
		if e.SystemURI == "" {
			e.SystemURI = system.URI()
		}
		e.Active = true
		entries = append(entries, e)
	}
	l.upsertChunks(ctx, system, entries, result)
	return result, nil
}

// upsertChunks writes entries in fixed-size chunks. A failed chunk is
// retried row by row so one bad row cannot sink the rest of the batch.
func (l *Loader) upsertChunks(ctx context.Context, system System, entries []CodeEntry, result *LoadResult) {
	for start := 0; start < len(entries); start += l.chunkSize {
		end := start + l.chunkSize
		if end > len(entries) {
			end = len(entries)
		}
		chunk := entries[start:end]

		if err := l.repo.UpsertBatch(ctx, system, chunk); err != nil {
			l.logger.Warn().Err(err).
				Str("system", string(system)).
				Int("chunk_size", len(chunk)).
				Msg("batch upsert failed, retrying per row")
		} else {
			result.Loaded += len(chunk)
			continue
		}

		for _, e := range chunk {
			if err := l.repo.UpsertOne(ctx, system, e); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", e.Code, err))
				continue
			}
			result.Loaded++
		}
	}
}
