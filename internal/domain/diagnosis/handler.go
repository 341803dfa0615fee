package diagnosis

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/termbridge/termbridge/internal/platform/auth"
	"github.com/termbridge/termbridge/internal/platform/fhir"
)

// Handler serves diagnosis sessions and FHIR bundle submission.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers session and bundle routes.
func (h *Handler) RegisterRoutes(api, fhirGroup *echo.Group) {
	api.POST("/sessions", h.CreateSession)
	api.GET("/sessions/:id", h.GetSession)
	fhirGroup.POST("/Bundle", h.SubmitBundle)
}

type createSessionRequest struct {
	Patient Patient `json:"patient"`
	Entries []Entry `json:"entries"`
}

// CreateSession handles POST /sessions.
func (h *Handler) CreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	createdBy := ""
	if p := auth.PrincipalFromContext(c); p != nil {
		createdBy = p.UserID
	}

	session, err := h.svc.SaveSession(c.Request().Context(), req.Patient, req.Entries, createdBy)
	if err != nil {
		if errors.Is(err, ErrMissingPatientID) || errors.Is(err, ErrEmptyDiagnoses) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not save session")
	}
	return c.JSON(http.StatusCreated, session)
}

// GetSession handles GET /sessions/:id.
func (h *Handler) GetSession(c echo.Context) error {
	session, err := h.svc.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "session not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load session")
	}
	return c.JSON(http.StatusOK, session)
}

// SubmitBundle handles POST /fhir/Bundle: the submitted bundle is
// stored and echoed back; failures return an OperationOutcome.
func (h *Handler) SubmitBundle(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil || len(raw) == 0 {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("request body is empty"))
	}

	id, err := h.svc.AcceptBundle(c.Request().Context(), raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome(err.Error()))
	}

	var echoed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &echoed); err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("bundle is not a JSON object"))
	}
	idRaw, _ := json.Marshal(id)
	echoed["id"] = idRaw
	return c.JSON(http.StatusCreated, echoed)
}
