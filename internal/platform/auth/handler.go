package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler serves the login endpoint.
type Handler struct {
	provider IdentityProvider
	issuer   *TokenIssuer
	logger   zerolog.Logger
}

func NewHandler(provider IdentityProvider, issuer *TokenIssuer, logger zerolog.Logger) *Handler {
	return &Handler{provider: provider, issuer: issuer, logger: logger}
}

// RegisterRoutes registers auth routes on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
}

type loginRequest struct {
	AbhaID string `json:"abha_id"`
}

type loginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	Name        string   `json:"name"`
	AbhaID      string   `json:"abha_id"`
	Roles       []string `json:"roles"`
}

// Login exchanges an ABHA ID for an access token.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.AbhaID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "abha_id is required")
	}

	principal, err := h.provider.Authenticate(c.Request().Context(), req.AbhaID)
	if err != nil {
		if errors.Is(err, ErrInvalidCredential) {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown ABHA ID")
		}
		h.logger.Error().Err(err).Msg("authenticate failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "authentication unavailable")
	}

	token, err := h.issuer.Issue(principal)
	if err != nil {
		h.logger.Error().Err(err).Msg("issue token failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "could not issue token")
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.issuer.TTL().Seconds()),
		Name:        principal.Name,
		AbhaID:      principal.AbhaID,
		Roles:       principal.Roles,
	})
}
