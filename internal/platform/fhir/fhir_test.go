package fhir

import (
	"encoding/json"
	"testing"
)

func TestOperationOutcomeHasErrors(t *testing.T) {
	tests := []struct {
		name     string
		severity string
		want     bool
	}{
		{"error", IssueSeverityError, true},
		{"fatal", IssueSeverityFatal, true},
		{"warning", IssueSeverityWarning, false},
		{"information", IssueSeverityInformation, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOperationOutcome(tt.severity, IssueTypeProcessing, "msg")
			if got := o.HasErrors(); got != tt.want {
				t.Errorf("HasErrors() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequiredFieldOutcome(t *testing.T) {
	o := RequiredFieldOutcome("patient.id")
	if len(o.Issue) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(o.Issue))
	}
	issue := o.Issue[0]
	if issue.Code != IssueTypeRequired {
		t.Errorf("code = %q, want required", issue.Code)
	}
	if len(issue.Expression) != 1 || issue.Expression[0] != "patient.id" {
		t.Errorf("expression = %v, want [patient.id]", issue.Expression)
	}
}

func TestBundleAddEntry(t *testing.T) {
	b := NewTransactionBundle("b-1")
	err := b.AddEntry("Condition", "c-1", map[string]string{"resourceType": "Condition", "id": "c-1"})
	if err != nil {
		t.Fatal(err)
	}
	if b.ResourceCount() != 1 {
		t.Fatalf("ResourceCount = %d, want 1", b.ResourceCount())
	}
	entry := b.Entry[0]
	if entry.FullURL != "Condition/c-1" {
		t.Errorf("fullUrl = %q, want Condition/c-1", entry.FullURL)
	}
	if entry.Request == nil || entry.Request.Method != "POST" || entry.Request.URL != "Condition" {
		t.Errorf("unexpected request directive: %+v", entry.Request)
	}
}

func TestParametersShape(t *testing.T) {
	p := NewParameters().
		AddBoolean("result", true).
		AddPart("match",
			Parameter{Name: "equivalence", ValueCode: "related"},
			Parameter{Name: "concept", ValueCoding: &Coding{System: "http://id.who.int/icd/release/11/mms", Code: "SK25.0", Display: "Disorder of vata dosha"}},
		)

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["resourceType"] != "Parameters" {
		t.Errorf("resourceType = %v, want Parameters", decoded["resourceType"])
	}

	result := p.Find("result")
	if result == nil || result.ValueBoolean == nil || !*result.ValueBoolean {
		t.Error("result parameter missing or false")
	}
	match := p.Find("match")
	if match == nil || len(match.Part) != 2 {
		t.Fatal("match parameter missing or malformed")
	}
	if match.Part[0].ValueCode != "related" {
		t.Errorf("equivalence = %q, want related", match.Part[0].ValueCode)
	}
}
