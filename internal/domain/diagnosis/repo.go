package diagnosis

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrSessionNotFound is returned when a session id has no row.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists saved diagnosis sessions and submitted
// bundles.
type SessionRepository interface {
	CreateSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	// SaveSubmittedBundle stores a raw bundle received on the FHIR
	// surface, keyed by the given id.
	SaveSubmittedBundle(ctx context.Context, id string, bundle json.RawMessage) error
}
