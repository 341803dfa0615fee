package mapping

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/termbridge/termbridge/internal/platform/db"
)

type queryable interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns the Postgres-backed mapping repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) Upsert(ctx context.Context, m Mapping) error {
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO terminology_mappings
		   (source_code, source_display, source_system,
		    target_code, target_display, target_system,
		    confidence, equivalence, method, status, evidence)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 ON CONFLICT (source_code, target_code) DO UPDATE SET
		   source_display = EXCLUDED.source_display,
		   source_system = EXCLUDED.source_system,
		   target_display = EXCLUDED.target_display,
		   target_system = EXCLUDED.target_system,
		   confidence = EXCLUDED.confidence,
		   equivalence = EXCLUDED.equivalence,
		   method = EXCLUDED.method,
		   status = EXCLUDED.status,
		   evidence = EXCLUDED.evidence,
		   updated_at = now()`,
		m.SourceCode, m.SourceDisplay, m.SourceSystem,
		m.TargetCode, m.TargetDisplay, m.TargetSystem,
		m.Confidence, m.Equivalence, m.Method, m.Status, m.Evidence)
	if err != nil {
		return fmt.Errorf("upsert mapping %s->%s: %w", m.SourceCode, m.TargetCode, err)
	}
	return nil
}

const mappingColumns = `source_code, source_display, COALESCE(source_system,''),
	 target_code, target_display, COALESCE(target_system,''),
	 confidence, equivalence, COALESCE(method,''), COALESCE(status,''), COALESCE(evidence,'')`

func (r *repoPG) ListBySource(ctx context.Context, code string) ([]Mapping, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+mappingColumns+`
		 FROM terminology_mappings
		 WHERE source_code = $1
		 ORDER BY confidence DESC, target_code`, code)
	if err != nil {
		return nil, fmt.Errorf("list mappings for %s: %w", code, err)
	}
	return scanMappings(rows)
}

func (r *repoPG) ListBySources(ctx context.Context, codes []string) ([]Mapping, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+mappingColumns+`
		 FROM terminology_mappings
		 WHERE source_code = ANY($1)
		 ORDER BY source_code, confidence DESC, target_code`, codes)
	if err != nil {
		return nil, fmt.Errorf("list mappings for %d codes: %w", len(codes), err)
	}
	return scanMappings(rows)
}

func scanMappings(rows pgx.Rows) ([]Mapping, error) {
	defer rows.Close()
	var out []Mapping
	for rows.Next() {
		var m Mapping
		if err := rows.Scan(
			&m.SourceCode, &m.SourceDisplay, &m.SourceSystem,
			&m.TargetCode, &m.TargetDisplay, &m.TargetSystem,
			&m.Confidence, &m.Equivalence, &m.Method, &m.Status, &m.Evidence); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
