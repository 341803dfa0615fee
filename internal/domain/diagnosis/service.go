package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service saves diagnosis sessions, generating each session's bundle
// at save time.
type Service struct {
	repo   SessionRepository
	logger zerolog.Logger
}

func NewService(repo SessionRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// SaveSession validates the input, assembles the bundle and persists
// the session. Precondition failures surface before any I/O.
func (s *Service) SaveSession(ctx context.Context, patient Patient, entries []Entry, createdBy string) (*Session, error) {
	bundle, err := BuildBundle(patient, entries)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("marshal bundle: %w", err)
	}

	session := &Session{
		ID:        uuid.NewString(),
		Patient:   patient,
		Entries:   entries,
		Bundle:    raw,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Str("patient_id", patient.ID).
		Int("entries", len(entries)).
		Msg("diagnosis session saved")
	return session, nil
}

// GetSession fetches a saved session by id.
func (s *Service) GetSession(ctx context.Context, id string) (*Session, error) {
	return s.repo.GetSession(ctx, id)
}

// AcceptBundle stores a bundle submitted directly on the FHIR surface
// and returns the id it was stored under.
func (s *Service) AcceptBundle(ctx context.Context, raw json.RawMessage) (string, error) {
	var probe struct {
		ResourceType string `json:"resourceType"`
		ID           string `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", fmt.Errorf("decode bundle: %w", err)
	}
	if probe.ResourceType != "Bundle" {
		return "", fmt.Errorf("resourceType is %q, want Bundle", probe.ResourceType)
	}
	id := probe.ID
	if id == "" {
		id = uuid.NewString()
	}
	if err := s.repo.SaveSubmittedBundle(ctx, id, raw); err != nil {
		return "", err
	}
	return id, nil
}
