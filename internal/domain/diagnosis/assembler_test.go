package diagnosis

import (
	"encoding/json"
	"testing"

	"github.com/termbridge/termbridge/internal/platform/fhir"
)

func vataEntry(mapped bool) Entry {
	e := Entry{
		Code:      "AY001",
		Display:   "Vata Dosha Imbalance",
		SystemURI: "https://ayush.gov.in/fhir/CodeSystem/namaste",
		Status:    StatusActive,
	}
	if mapped {
		e.Mapped = true
		e.TargetCode = "SK25.0"
		e.TargetDisplay = "Disorder of vata dosha"
		e.TargetSystem = "http://id.who.int/icd/release/11/mms"
	}
	return e
}

func decodeCondition(t *testing.T, raw json.RawMessage) conditionResource {
	t.Helper()
	var cond conditionResource
	if err := json.Unmarshal(raw, &cond); err != nil {
		t.Fatal(err)
	}
	return cond
}

func TestBuildBundlePreconditions(t *testing.T) {
	if _, err := BuildBundle(Patient{}, []Entry{vataEntry(true)}); err != ErrMissingPatientID {
		t.Errorf("err = %v, want ErrMissingPatientID", err)
	}
	if _, err := BuildBundle(Patient{ID: "p-1"}, nil); err != ErrEmptyDiagnoses {
		t.Errorf("err = %v, want ErrEmptyDiagnoses", err)
	}
}

func TestBuildBundleDualCoding(t *testing.T) {
	bundle, err := BuildBundle(Patient{ID: "p-1", Name: "Test Patient"}, []Entry{vataEntry(true)})
	if err != nil {
		t.Fatal(err)
	}
	if bundle.Type != "transaction" {
		t.Errorf("bundle type = %q", bundle.Type)
	}
	// One Patient plus one Condition.
	if bundle.ResourceCount() != 2 {
		t.Fatalf("entries = %d, want 2", bundle.ResourceCount())
	}

	cond := decodeCondition(t, bundle.Entry[1].Resource)
	if len(cond.Code.Coding) != 2 {
		t.Fatalf("codings = %d, want 2", len(cond.Code.Coding))
	}
	if cond.Code.Coding[0].Code != "AY001" {
		t.Errorf("first coding = %q, want source AY001", cond.Code.Coding[0].Code)
	}
	if cond.Code.Coding[1].Code != "SK25.0" {
		t.Errorf("second coding = %q, want target SK25.0", cond.Code.Coding[1].Code)
	}
	if cond.Subject.Reference != "Patient/p-1" {
		t.Errorf("subject = %q", cond.Subject.Reference)
	}
}

func TestBuildBundleSingleCodingWhenUnmapped(t *testing.T) {
	bundle, err := BuildBundle(Patient{ID: "p-1"}, []Entry{vataEntry(false)})
	if err != nil {
		t.Fatal(err)
	}
	cond := decodeCondition(t, bundle.Entry[1].Resource)
	if len(cond.Code.Coding) != 1 {
		t.Errorf("codings = %d, want 1 for unmapped entry", len(cond.Code.Coding))
	}
	if len(cond.Note) != 0 {
		t.Error("unexpected note on entry without notes")
	}
}

func TestBuildBundleNoteOnlyWhenPresent(t *testing.T) {
	withNotes := vataEntry(true)
	withNotes.Notes = "Aggravated after travel"

	bundle, err := BuildBundle(Patient{ID: "p-1"}, []Entry{withNotes, vataEntry(true)})
	if err != nil {
		t.Fatal(err)
	}
	if bundle.ResourceCount() != 3 {
		t.Fatalf("entries = %d, want 3", bundle.ResourceCount())
	}

	first := decodeCondition(t, bundle.Entry[1].Resource)
	if len(first.Note) != 1 || first.Note[0].Text != "Aggravated after travel" {
		t.Errorf("note = %+v", first.Note)
	}
	second := decodeCondition(t, bundle.Entry[2].Resource)
	if len(second.Note) != 0 {
		t.Error("note leaked onto entry without notes")
	}
}

func TestBuildBundlePatientIdentity(t *testing.T) {
	bundle, err := BuildBundle(Patient{
		ID: "p-1", AbhaID: "91-1234-5678-9012", Name: "Asha", Gender: "female",
	}, []Entry{vataEntry(true)})
	if err != nil {
		t.Fatal(err)
	}

	var p patientResource
	if err := json.Unmarshal(bundle.Entry[0].Resource, &p); err != nil {
		t.Fatal(err)
	}
	if p.ResourceType != "Patient" || p.ID != "p-1" {
		t.Errorf("patient = %+v", p)
	}
	if len(p.Identifier) != 1 || p.Identifier[0].Value != "91-1234-5678-9012" {
		t.Errorf("identifier = %+v", p.Identifier)
	}
	if bundle.Entry[0].FullURL != fhir.FormatReference("Patient", "p-1") {
		t.Errorf("fullUrl = %q", bundle.Entry[0].FullURL)
	}
}
