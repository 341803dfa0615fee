package mapping

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/termbridge/termbridge/internal/domain/terminology"
	"github.com/termbridge/termbridge/internal/platform/fhir"
)

// Handler serves translate over both the plain API and the FHIR surface.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers translate routes.
func (h *Handler) RegisterRoutes(api, fhirGroup *echo.Group) {
	api.GET("/terminology/translate", h.Translate)
	fhirGroup.GET("/ConceptMap/$translate", h.TranslateFHIR)
	fhirGroup.POST("/ConceptMap/$translate", h.TranslateFHIR)
}

// Translate handles GET /terminology/translate?system=&code=.
func (h *Handler) Translate(c echo.Context) error {
	system, code, err := translateParams(c)
	if err != nil {
		return err
	}
	result, err := h.svc.Translate(c.Request().Context(), system, code)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "translate failed")
	}
	return c.JSON(http.StatusOK, result)
}

// TranslateFHIR handles ConceptMap/$translate in FHIR Parameters form.
// GET reads query parameters; POST reads a Parameters body.
func (h *Handler) TranslateFHIR(c echo.Context) error {
	var system terminology.System
	var code string
	var err error

	if c.Request().Method == http.MethodPost {
		system, code, err = translateBody(c)
	} else {
		system, code, err = translateParams(c)
	}
	if err != nil {
		he, ok := err.(*echo.HTTPError)
		if !ok {
			he = echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(he.Code, fhir.NewOperationOutcome(
			fhir.IssueSeverityError, fhir.IssueTypeRequired, he.Message.(string)))
	}

	result, err := h.svc.Translate(c.Request().Context(), system, code)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome("translate failed"))
	}
	return c.JSON(http.StatusOK, translateParameters(result))
}

func translateParams(c echo.Context) (terminology.System, string, error) {
	code := c.QueryParam("code")
	if code == "" {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "code parameter is required")
	}
	raw := c.QueryParam("system")
	if sys, ok := terminology.SystemForURI(raw); ok {
		return sys, code, nil
	}
	system, err := terminology.ParseSystem(raw)
	if err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return system, code, nil
}

func translateBody(c echo.Context) (terminology.System, string, error) {
	var params fhir.Parameters
	if err := c.Bind(&params); err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "body must be a Parameters resource")
	}
	var rawSystem, code string
	if p := params.Find("system"); p != nil {
		rawSystem = p.ValueUri
		if rawSystem == "" {
			rawSystem = p.ValueString
		}
	}
	if p := params.Find("code"); p != nil {
		code = p.ValueCode
		if code == "" {
			code = p.ValueString
		}
	}
	if code == "" {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "code parameter is required")
	}
	if sys, ok := terminology.SystemForURI(rawSystem); ok {
		return sys, code, nil
	}
	system, err := terminology.ParseSystem(rawSystem)
	if err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return system, code, nil
}

// translateParameters shapes a TranslateResult as a FHIR Parameters
// resource: a boolean result parameter plus one match parameter per
// translation, confidence carried as a string under the product part.
func translateParameters(result *TranslateResult) *fhir.Parameters {
	p := fhir.NewParameters().AddBoolean("result", result.Success)
	for _, t := range result.Translations {
		p.AddPart("match",
			fhir.Parameter{Name: "equivalence", ValueCode: t.Equivalence},
			fhir.Parameter{Name: "concept", ValueCoding: &fhir.Coding{
				System:  t.TargetSystem,
				Code:    t.TargetCode,
				Display: t.TargetDisplay,
			}},
			fhir.Parameter{Name: "product", Part: []fhir.Parameter{
				{Name: "value", ValueString: strconv.FormatFloat(t.Confidence, 'f', -1, 64)},
			}},
		)
	}
	return p
}
