package diagnosis

import (
	"context"
	"encoding/json"
	"errors"
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

// NewRepoPG returns the Postgres-backed session repository.
func NewRepoPG(pool *pgxpool.Pool) SessionRepository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) CreateSession(ctx context.Context, s *Session) error {
	patient, err := json.Marshal(s.Patient)
	if err != nil {
		return fmt.Errorf("marshal patient: %w", err)
	}
	entries, err := json.Marshal(s.Entries)
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}
	_, err = r.conn(ctx).Exec(ctx,
		`INSERT INTO diagnosis_sessions (id, patient, entries, bundle, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, patient, entries, []byte(s.Bundle), s.CreatedBy, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", s.ID, err)
	}
	return nil
}

func (r *repoPG) GetSession(ctx context.Context, id string) (*Session, error) {
	var (
		s       Session
		patient []byte
		entries []byte
		bundle  []byte
	)
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id, patient, entries, bundle, COALESCE(created_by,''), created_at
		 FROM diagnosis_sessions WHERE id = $1`, id).
		Scan(&s.ID, &patient, &entries, &bundle, &s.CreatedBy, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	if err := json.Unmarshal(patient, &s.Patient); err != nil {
		return nil, fmt.Errorf("decode patient: %w", err)
	}
	if err := json.Unmarshal(entries, &s.Entries); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	s.Bundle = bundle
	return &s, nil
}

func (r *repoPG) SaveSubmittedBundle(ctx context.Context, id string, bundle json.RawMessage) error {
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO submitted_bundles (id, bundle) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET bundle = EXCLUDED.bundle, received_at = now()`,
		id, []byte(bundle))
	if err != nil {
		return fmt.Errorf("save submitted bundle %s: %w", id, err)
	}
	return nil
}
