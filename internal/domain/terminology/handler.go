package terminology

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler serves terminology search over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers terminology routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/terminology/search", h.Search)
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// Search handles GET /terminology/search?query=&system=&limit=.
func (h *Handler) Search(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter is required")
	}

	system, err := ParseSystem(c.QueryParam("system"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
	}

	results, err := h.svc.Search(c.Request().Context(), query, system, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, searchResponse{Results: results})
}
