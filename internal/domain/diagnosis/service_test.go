package diagnosis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type mockSessionRepo struct {
	sessions map[string]*Session
	bundles  map[string]json.RawMessage
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{
		sessions: make(map[string]*Session),
		bundles:  make(map[string]json.RawMessage),
	}
}

func (m *mockSessionRepo) CreateSession(_ context.Context, s *Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionRepo) GetSession(_ context.Context, id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *mockSessionRepo) SaveSubmittedBundle(_ context.Context, id string, bundle json.RawMessage) error {
	m.bundles[id] = bundle
	return nil
}

func TestSaveSessionGeneratesBundle(t *testing.T) {
	repo := newMockSessionRepo()
	svc := NewService(repo, zerolog.Nop())

	session, err := svc.SaveSession(context.Background(),
		Patient{ID: "p-1", Name: "Test"}, []Entry{vataEntry(true)}, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if session.ID == "" {
		t.Error("session id not assigned")
	}
	if session.CreatedBy != "user-1" {
		t.Errorf("created_by = %q", session.CreatedBy)
	}

	var bundle map[string]interface{}
	if err := json.Unmarshal(session.Bundle, &bundle); err != nil {
		t.Fatal(err)
	}
	if bundle["resourceType"] != "Bundle" {
		t.Errorf("bundle resourceType = %v", bundle["resourceType"])
	}
	if _, ok := repo.sessions[session.ID]; !ok {
		t.Error("session not persisted")
	}
}

func TestSaveSessionPreconditionBeforeIO(t *testing.T) {
	repo := newMockSessionRepo()
	svc := NewService(repo, zerolog.Nop())

	if _, err := svc.SaveSession(context.Background(), Patient{ID: "p-1"}, nil, ""); err != ErrEmptyDiagnoses {
		t.Errorf("err = %v", err)
	}
	if len(repo.sessions) != 0 {
		t.Error("session persisted despite precondition failure")
	}
}

func TestCreateSessionHandler(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewService(newMockSessionRepo(), zerolog.Nop()))

	body := `{
		"patient": {"id": "p-1", "name": "Test Patient"},
		"entries": [{"code": "AY001", "display": "Vata Dosha Imbalance",
		             "system": "https://ayush.gov.in/fhir/CodeSystem/namaste"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateSession(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var session Session
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatal(err)
	}
	if session.Patient.ID != "p-1" || len(session.Entries) != 1 {
		t.Errorf("session = %+v", session)
	}
}

func TestCreateSessionHandlerRejectsEmptyList(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewService(newMockSessionRepo(), zerolog.Nop()))

	body := `{"patient": {"id": "p-1"}, "entries": []}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.CreateSession(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestGetSessionHandlerNotFound(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewService(newMockSessionRepo(), zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/missing", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.GetSession(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestSubmitBundleEchoes(t *testing.T) {
	e := echo.New()
	repo := newMockSessionRepo()
	h := NewHandler(NewService(repo, zerolog.Nop()))

	body := `{"resourceType": "Bundle", "id": "b-1", "type": "transaction"}`
	req := httptest.NewRequest(http.MethodPost, "/fhir/Bundle", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitBundle(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if _, ok := repo.bundles["b-1"]; !ok {
		t.Error("bundle not stored")
	}

	var echoed map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &echoed); err != nil {
		t.Fatal(err)
	}
	if echoed["id"] != "b-1" || echoed["type"] != "transaction" {
		t.Errorf("echo = %v", echoed)
	}
}

func TestSubmitBundleRejectsNonBundle(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewService(newMockSessionRepo(), zerolog.Nop()))

	body := `{"resourceType": "Patient", "id": "p-1"}`
	req := httptest.NewRequest(http.MethodPost, "/fhir/Bundle", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitBundle(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "OperationOutcome") {
		t.Error("expected OperationOutcome body")
	}
}
