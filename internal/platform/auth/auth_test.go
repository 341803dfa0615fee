package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestMockProviderKnownUser(t *testing.T) {
	p := NewMockProvider(nil)
	principal, err := p.Authenticate(context.Background(), "91-1234-5678-9012")
	if err != nil {
		t.Fatal(err)
	}
	if principal.Name != "Dr. Asha Kulkarni" {
		t.Errorf("name = %q", principal.Name)
	}
	if len(principal.Roles) == 0 {
		t.Error("expected roles")
	}
}

func TestMockProviderUnknownUser(t *testing.T) {
	p := NewMockProvider(nil)
	if _, err := p.Authenticate(context.Background(), "not-a-user"); err != ErrInvalidCredential {
		t.Errorf("err = %v, want ErrInvalidCredential", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	principal := &Principal{
		UserID: "user-1",
		AbhaID: "91-1234-5678-9012",
		Name:   "Dr. Asha Kulkarni",
		Roles:  []string{"clinician"},
		Scopes: []string{"terminology.read"},
	}
	raw, err := issuer.Issue(principal)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := issuer.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if claims.AbhaID != principal.AbhaID {
		t.Errorf("abha_id = %q, want %q", claims.AbhaID, principal.AbhaID)
	}
	if claims.Subject != "user-1" {
		t.Errorf("sub = %q, want user-1", claims.Subject)
	}
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	issuer.ttl = -time.Minute
	raw, err := issuer.Issue(&Principal{UserID: "u", AbhaID: "a"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := issuer.Parse(raw); err != ErrTokenExpired {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	e := echo.New()
	issuer := NewTokenIssuer("s", time.Hour)
	h := Middleware(issuer, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	e := echo.New()
	issuer := NewTokenIssuer("s", time.Hour)
	raw, err := issuer.Issue(&Principal{UserID: "u-1", AbhaID: "91-1", Scopes: []string{"terminology.read"}})
	if err != nil {
		t.Fatal(err)
	}

	h := Middleware(issuer, zerolog.Nop())(func(c echo.Context) error {
		p := PrincipalFromContext(c)
		if p == nil || p.AbhaID != "91-1" {
			t.Errorf("principal = %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	c := e.NewContext(req, httptest.NewRecorder())
	if err := h(c); err != nil {
		t.Fatal(err)
	}
}

func TestLoginEndpoint(t *testing.T) {
	e := echo.New()
	handler := NewHandler(NewMockProvider(nil), NewTokenIssuer("s", time.Hour), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"abha_id":"91-1234-5678-9012"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.AccessToken == "" {
		t.Error("access_token empty")
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("token_type = %q", resp.TokenType)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	e := echo.New()
	handler := NewHandler(NewMockProvider(nil), NewTokenIssuer("s", time.Hour), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"abha_id":"99-9999-9999-9999"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := handler.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}
