package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const principalKey = "principal"

// Middleware returns bearer token authentication middleware.
func Middleware(issuer *TokenIssuer, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing Authorization header")
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must use Bearer scheme")
			}

			claims, err := issuer.Parse(raw)
			if err != nil {
				logger.Debug().Err(err).Msg("token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(principalKey, &Principal{
				UserID: claims.Subject,
				AbhaID: claims.AbhaID,
				Name:   claims.Name,
				Roles:  claims.Roles,
				Scopes: strings.Fields(claims.Scope),
			})
			return next(c)
		}
	}
}

// DevMiddleware injects a fixed principal without checking credentials.
// Used when AUTH_MODE=development.
func DevMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(principalKey, &Principal{
				UserID: "dev-user",
				AbhaID: "91-0000-0000-0000",
				Name:   "Development User",
				Roles:  []string{"clinician"},
				Scopes: []string{"terminology.read", "bundle.write"},
			})
			return next(c)
		}
	}
}

// PrincipalFromContext returns the authenticated principal, or nil.
func PrincipalFromContext(c echo.Context) *Principal {
	p, _ := c.Get(principalKey).(*Principal)
	return p
}
