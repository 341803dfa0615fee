package terminology

import "fmt"

// System identifies a source vocabulary.
type System string

const (
	SystemNAMASTE System = "NAMASTE"
	SystemICD11   System = "ICD11"
	SystemSNOMED  System = "SNOMED"
	SystemLOINC   System = "LOINC"
	SystemAll     System = "ALL"
)

// Canonical system URIs used in codings.
const (
	NamasteURI = "https://ayush.gov.in/fhir/CodeSystem/namaste"
	ICD11URI   = "http://id.who.int/icd/release/11/mms"
	SnomedURI  = "http://snomed.info/sct"
	LoincURI   = "http://loinc.org"
)

// Systems lists the concrete vocabularies, in search order.
func Systems() []System {
	return []System{SystemNAMASTE, SystemICD11, SystemSNOMED, SystemLOINC}
}

// ParseSystem validates a system query parameter. Empty means ALL.
func ParseSystem(s string) (System, error) {
	switch System(s) {
	case "", SystemAll:
		return SystemAll, nil
	case SystemNAMASTE, SystemICD11, SystemSNOMED, SystemLOINC:
		return System(s), nil
	}
	return "", fmt.Errorf("unknown code system %q", s)
}

// URI returns the canonical system URI.
func (s System) URI() string {
	switch s {
	case SystemNAMASTE:
		return NamasteURI
	case SystemICD11:
		return ICD11URI
	case SystemSNOMED:
		return SnomedURI
	case SystemLOINC:
		return LoincURI
	}
	return ""
}

// SystemForURI maps a canonical URI back to its system identifier.
func SystemForURI(uri string) (System, bool) {
	for _, s := range Systems() {
		if s.URI() == uri {
			return s, true
		}
	}
	return "", false
}

// CodeEntry represents one term in one vocabulary. Uniqueness is on
// (system, code); for LOINC the component text is stored in Description,
// for SNOMED the semantic tag in Category.
type CodeEntry struct {
	Code        string `db:"code" json:"code"`
	Display     string `db:"display" json:"display"`
	Description string `db:"description" json:"description,omitempty"`
	Category    string `db:"category" json:"category,omitempty"`
	SystemURI   string `db:"system_uri" json:"system"`
	Active      bool   `db:"active" json:"active"`
}

// MappedConcept is the best known translation for a source code,
// annotated onto search results.
type MappedConcept struct {
	TargetCode    string  `json:"target_code"`
	TargetDisplay string  `json:"target_display"`
	TargetSystem  string  `json:"target_system"`
	Equivalence   string  `json:"equivalence"`
	Confidence    float64 `json:"confidence"`
}

// SearchResult is a read-only projection for API responses.
type SearchResult struct {
	System      System         `json:"code_system"`
	Code        string         `json:"code"`
	Display     string         `json:"display"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category,omitempty"`
	SystemURI   string         `json:"system"`
	Mapping     *MappedConcept `json:"mapping,omitempty"`
}
