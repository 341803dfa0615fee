package mapping

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/termbridge/termbridge/internal/domain/terminology"
	"github.com/termbridge/termbridge/internal/platform/fhir"
)

func seededMappingRepo() *mockMappingRepo {
	repo := newMockMappingRepo()
	repo.rows[key("AY001", "SK25.0")] = Mapping{
		SourceCode: "AY001", SourceDisplay: "Vata Dosha Imbalance", SourceSystem: terminology.NamasteURI,
		TargetCode: "SK25.0", TargetDisplay: "Disorder of vata dosha", TargetSystem: terminology.ICD11URI,
		Confidence: 0.87, Equivalence: EquivalenceRelated, Method: MethodCurated, Status: StatusApproved,
	}
	repo.rows[key("AY001", "SK25.1")] = Mapping{
		SourceCode: "AY001", SourceDisplay: "Vata Dosha Imbalance", SourceSystem: terminology.NamasteURI,
		TargetCode: "SK25.1", TargetDisplay: "Combined dosha pattern", TargetSystem: terminology.ICD11URI,
		Confidence: 0.52, Equivalence: EquivalenceBroader, Method: MethodCurated, Status: StatusApproved,
	}
	return repo
}

func TestTranslateReturnsAllMappings(t *testing.T) {
	svc := NewService(seededMappingRepo(), zerolog.Nop())

	result, err := svc.Translate(context.Background(), terminology.SystemNAMASTE, "AY001")
	if err != nil {
		t.Fatal(err)
	}
	if !result.Success {
		t.Error("success = false, want true")
	}
	if len(result.Translations) != 2 {
		t.Fatalf("got %d translations, want 2", len(result.Translations))
	}

	var found bool
	for _, tr := range result.Translations {
		if tr.TargetCode == "SK25.0" {
			found = true
			if tr.Equivalence != EquivalenceRelated || tr.Confidence != 0.87 {
				t.Errorf("SK25.0 entry = %+v", tr)
			}
		}
	}
	if !found {
		t.Error("SK25.0 translation missing")
	}
}

func TestTranslateUnmappedCode(t *testing.T) {
	svc := NewService(seededMappingRepo(), zerolog.Nop())

	result, err := svc.Translate(context.Background(), terminology.SystemNAMASTE, "AY999")
	if err != nil {
		t.Fatal(err)
	}
	if result.Success {
		t.Error("success = true for unmapped code")
	}
	if result.Translations == nil || len(result.Translations) != 0 {
		t.Errorf("translations = %v, want empty non-nil slice", result.Translations)
	}
}

func TestBestMappingTieBreak(t *testing.T) {
	ms := []Mapping{
		{SourceCode: "X", TargetCode: "B2", Confidence: 0.9},
		{SourceCode: "X", TargetCode: "A1", Confidence: 0.9},
		{SourceCode: "X", TargetCode: "C3", Confidence: 0.95},
	}
	best := BestMapping(ms)
	if best.TargetCode != "C3" {
		t.Errorf("best = %q, want highest confidence C3", best.TargetCode)
	}

	tied := ms[:2]
	best = BestMapping(tied)
	if best.TargetCode != "A1" {
		t.Errorf("best = %q, want lexicographically smallest A1 on tie", best.TargetCode)
	}
	if BestMapping(nil) != nil {
		t.Error("BestMapping(nil) should be nil")
	}
}

func TestBestMappingsAnnotation(t *testing.T) {
	svc := NewService(seededMappingRepo(), zerolog.Nop())

	best, err := svc.BestMappings(context.Background(), []string{"AY001", "AY999"})
	if err != nil {
		t.Fatal(err)
	}
	if len(best) != 1 {
		t.Fatalf("got %d entries, want 1", len(best))
	}
	m, ok := best["AY001"]
	if !ok || m.TargetCode != "SK25.0" || m.Confidence != 0.87 {
		t.Errorf("best[AY001] = %+v", m)
	}
}

func TestTranslateHandlerJSON(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewService(seededMappingRepo(), zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/terminology/translate?system=NAMASTE&code=AY001", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Translate(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var result TranslateResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if !result.Success || len(result.Translations) != 2 {
		t.Errorf("result = %+v", result)
	}
}

func TestTranslateHandlerMissingCode(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewService(seededMappingRepo(), zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/terminology/translate?system=NAMASTE", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	err := h.Translate(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestTranslateFHIRShape(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewService(seededMappingRepo(), zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet,
		"/fhir/ConceptMap/$translate?system="+terminology.NamasteURI+"&code=AY001", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.TranslateFHIR(c); err != nil {
		t.Fatal(err)
	}

	var params fhir.Parameters
	if err := json.Unmarshal(rec.Body.Bytes(), &params); err != nil {
		t.Fatal(err)
	}
	if params.ResourceType != "Parameters" {
		t.Errorf("resourceType = %q", params.ResourceType)
	}

	result := params.Find("result")
	if result == nil || result.ValueBoolean == nil || !*result.ValueBoolean {
		t.Fatal("result parameter missing or false")
	}

	var matches []fhir.Parameter
	for _, p := range params.Parameter {
		if p.Name == "match" {
			matches = append(matches, p)
		}
	}
	if len(matches) != 2 {
		t.Fatalf("got %d match parameters, want 2", len(matches))
	}

	var sk250 *fhir.Parameter
	for i := range matches {
		for _, part := range matches[i].Part {
			if part.Name == "concept" && part.ValueCoding != nil && part.ValueCoding.Code == "SK25.0" {
				sk250 = &matches[i]
			}
		}
	}
	if sk250 == nil {
		t.Fatal("no match part for SK25.0")
	}

	var equivalence, confidence string
	for _, part := range sk250.Part {
		switch part.Name {
		case "equivalence":
			equivalence = part.ValueCode
		case "concept":
			if part.ValueCoding.System != terminology.ICD11URI {
				t.Errorf("coding system = %q", part.ValueCoding.System)
			}
		case "product":
			for _, sub := range part.Part {
				if sub.Name == "value" {
					confidence = sub.ValueString
				}
			}
		}
	}
	if equivalence != EquivalenceRelated {
		t.Errorf("equivalence = %q, want related", equivalence)
	}
	if confidence != "0.87" {
		t.Errorf("product value = %q, want 0.87", confidence)
	}
}

func TestTranslateFHIRUnmapped(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewService(seededMappingRepo(), zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/fhir/ConceptMap/$translate?system=NAMASTE&code=AY999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.TranslateFHIR(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for unmapped code", rec.Code)
	}

	var params fhir.Parameters
	if err := json.Unmarshal(rec.Body.Bytes(), &params); err != nil {
		t.Fatal(err)
	}
	result := params.Find("result")
	if result == nil || result.ValueBoolean == nil || *result.ValueBoolean {
		t.Error("result should be false")
	}
	if params.Find("match") != nil {
		t.Error("unexpected match parameter for unmapped code")
	}
}

func TestTranslateFHIRPostBody(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewService(seededMappingRepo(), zerolog.Nop()))

	body := `{
		"resourceType": "Parameters",
		"parameter": [
			{"name": "system", "valueUri": "` + terminology.NamasteURI + `"},
			{"name": "code", "valueCode": "AY001"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/fhir/ConceptMap/$translate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.TranslateFHIR(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var params fhir.Parameters
	if err := json.Unmarshal(rec.Body.Bytes(), &params); err != nil {
		t.Fatal(err)
	}
	result := params.Find("result")
	if result == nil || result.ValueBoolean == nil || !*result.ValueBoolean {
		t.Error("result should be true")
	}
}
