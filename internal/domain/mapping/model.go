package mapping

import "sort"

// Equivalence qualifiers between mapped concepts, FHIR ConceptMap style.
const (
	EquivalenceEquivalent = "equivalent"
	EquivalenceRelated    = "related"
	EquivalenceNarrower   = "narrower"
	EquivalenceBroader    = "broader"
	EquivalenceUnmatched  = "unmatched"
)

// Mapping statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// MethodCurated marks mappings written by the curated alignment builder.
const MethodCurated = "curated_alignment"

// Mapping is a directed, weighted edge between a source and a target
// concept. Display text is denormalized from the reference tables at
// build time. Confidence is always stored on the fractional 0-1 scale.
type Mapping struct {
	SourceCode    string  `db:"source_code" json:"source_code"`
	SourceDisplay string  `db:"source_display" json:"source_display"`
	SourceSystem  string  `db:"source_system" json:"source_system"`
	TargetCode    string  `db:"target_code" json:"target_code"`
	TargetDisplay string  `db:"target_display" json:"target_display"`
	TargetSystem  string  `db:"target_system" json:"target_system"`
	Confidence    float64 `db:"confidence" json:"confidence"`
	Equivalence   string  `db:"equivalence" json:"equivalence"`
	Method        string  `db:"method" json:"method"`
	Status        string  `db:"status" json:"status"`
	Evidence      string  `db:"evidence" json:"evidence,omitempty"`
}

// Translation is one entry in a translate response.
type Translation struct {
	TargetCode    string  `json:"target_code"`
	TargetDisplay string  `json:"target_display"`
	TargetSystem  string  `json:"target_system"`
	Equivalence   string  `json:"equivalence"`
	Confidence    float64 `json:"confidence"`
}

// TranslateResult reports all known translations for a source code.
// No mapping is a normal outcome, never an error.
type TranslateResult struct {
	Success      bool          `json:"success"`
	Translations []Translation `json:"translations"`
}

// NormalizeConfidence converts a writer-supplied confidence to the
// canonical 0-1 scale. Curated lists use both fractional and percentage
// scales, so anything above 1 is treated as a percentage. Out-of-range
// values are clamped.
func NormalizeConfidence(v float64) float64 {
	if v > 1 {
		v = v / 100
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// BestMapping picks the winning mapping for a source code: highest
// confidence, ties broken by lexicographically smallest target code.
func BestMapping(ms []Mapping) *Mapping {
	if len(ms) == 0 {
		return nil
	}
	sorted := make([]Mapping, len(ms))
	copy(sorted, ms)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Confidence != sorted[j].Confidence {
			return sorted[i].Confidence > sorted[j].Confidence
		}
		return sorted[i].TargetCode < sorted[j].TargetCode
	})
	best := sorted[0]
	return &best
}
