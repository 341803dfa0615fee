package terminology

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

// reference table per system; names are fixed, never interpolated from input.
var referenceTables = map[System]string{
	SystemNAMASTE: "reference_namaste",
	SystemICD11:   "reference_icd11_tm2",
	SystemSNOMED:  "reference_snomed",
	SystemLOINC:   "reference_loinc",
}

func tableFor(system System) (string, error) {
	t, ok := referenceTables[system]
	if !ok {
		return "", fmt.Errorf("no reference table for system %q", system)
	}
	return t, nil
}

type codeRepoPG struct{ pool *pgxpool.Pool }

// NewCodeRepoPG returns the Postgres-backed code repository.
func NewCodeRepoPG(pool *pgxpool.Pool) CodeRepository { return &codeRepoPG{pool: pool} }

func (r *codeRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *codeRepoPG) Search(ctx context.Context, system System, query string, limit int) ([]CodeEntry, error) {
	table, err := tableFor(system)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + query + "%"
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(
		`SELECT code, display, COALESCE(description,''), COALESCE(category,''),
		        COALESCE(system_uri,$3), active
		 FROM %s
		 WHERE active AND (code ILIKE $1 OR display ILIKE $1 OR description ILIKE $1)
		 ORDER BY display LIMIT $2`, table), pattern, limit, system.URI())
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", table, err)
	}
	defer rows.Close()

	var results []CodeEntry
	for rows.Next() {
		var e CodeEntry
		if err := rows.Scan(&e.Code, &e.Display, &e.Description, &e.Category, &e.SystemURI, &e.Active); err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

func (r *codeRepoPG) GetByCode(ctx context.Context, system System, code string) (*CodeEntry, error) {
	table, err := tableFor(system)
	if err != nil {
		return nil, err
	}
	var e CodeEntry
	err = r.conn(ctx).QueryRow(ctx, fmt.Sprintf(
		`SELECT code, display, COALESCE(description,''), COALESCE(category,''),
		        COALESCE(system_uri,$2), active
		 FROM %s WHERE code = $1`, table), code, system.URI()).
		Scan(&e.Code, &e.Display, &e.Description, &e.Category, &e.SystemURI, &e.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s get %s: %w", table, code, err)
	}
	return &e, nil
}

func (r *codeRepoPG) DisplayMap(ctx context.Context, system System, codes []string) (map[string]string, error) {
	table, err := tableFor(system)
	if err != nil {
		return nil, err
	}
	displays := make(map[string]string, len(codes))
	if len(codes) == 0 {
		return displays, nil
	}
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(
		`SELECT code, display FROM %s WHERE code = ANY($1)`, table), codes)
	if err != nil {
		return nil, fmt.Errorf("%s display map: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var code, display string
		if err := rows.Scan(&code, &display); err != nil {
			return nil, err
		}
		displays[code] = display
	}
	return displays, rows.Err()
}

func (r *codeRepoPG) UpsertBatch(ctx context.Context, system System, entries []CodeEntry) error {
	table, err := tableFor(system)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	var (
		sb   strings.Builder
		args []interface{}
	)
	fmt.Fprintf(&sb, "INSERT INTO %s (code, display, description, category, system_uri, active) VALUES ", table)
	for i, e := range entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(args, e.Code, e.Display, e.Description, e.Category, e.SystemURI, e.Active)
	}
	sb.WriteString(` ON CONFLICT (code) DO UPDATE SET
		display = EXCLUDED.display,
		description = EXCLUDED.description,
		category = EXCLUDED.category,
		system_uri = EXCLUDED.system_uri,
		active = EXCLUDED.active,
		updated_at = now()`)

	if _, err := r.conn(ctx).Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("%s upsert batch of %d: %w", table, len(entries), err)
	}
	return nil
}

func (r *codeRepoPG) UpsertOne(ctx context.Context, system System, entry CodeEntry) error {
	return r.UpsertBatch(ctx, system, []CodeEntry{entry})
}
