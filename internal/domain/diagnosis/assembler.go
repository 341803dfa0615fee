package diagnosis

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/termbridge/termbridge/internal/platform/fhir"
)

// Assembler precondition errors, raised before any I/O.
var (
	ErrMissingPatientID = errors.New("patient id is required")
	ErrEmptyDiagnoses   = errors.New("diagnosis list is empty")
)

type patientResource struct {
	ResourceType string            `json:"resourceType"`
	ID           string            `json:"id"`
	Identifier   []fhir.Identifier `json:"identifier,omitempty"`
	Name         []fhir.HumanName  `json:"name,omitempty"`
	Gender       string            `json:"gender,omitempty"`
	BirthDate    string            `json:"birthDate,omitempty"`
}

type conditionResource struct {
	ResourceType   string               `json:"resourceType"`
	ID             string               `json:"id"`
	ClinicalStatus *fhir.CodeableConcept `json:"clinicalStatus,omitempty"`
	Code           fhir.CodeableConcept `json:"code"`
	Subject        fhir.Reference       `json:"subject"`
	RecordedDate   string               `json:"recordedDate,omitempty"`
	Note           []fhir.Annotation    `json:"note,omitempty"`
}

// BuildBundle assembles a transaction Bundle from a patient and their
// diagnosis entries: exactly one Patient resource and one Condition per
// entry. Conditions carry the source coding always and the target
// coding only when the entry's translation succeeded; a note only when
// clinical notes are non-empty. The assembler performs no I/O.
func BuildBundle(patient Patient, entries []Entry) (*fhir.Bundle, error) {
	if patient.ID == "" {
		return nil, ErrMissingPatientID
	}
	if len(entries) == 0 {
		return nil, ErrEmptyDiagnoses
	}

	bundle := fhir.NewTransactionBundle(uuid.NewString())

	p := patientResource{
		ResourceType: "Patient",
		ID:           patient.ID,
		Gender:       patient.Gender,
		BirthDate:    patient.BirthDate,
	}
	if patient.AbhaID != "" {
		p.Identifier = append(p.Identifier, fhir.Identifier{
			System: "https://healthid.ndhm.gov.in",
			Value:  patient.AbhaID,
		})
	}
	if patient.Name != "" {
		p.Name = append(p.Name, fhir.HumanName{Text: patient.Name})
	}
	if err := bundle.AddEntry("Patient", patient.ID, p); err != nil {
		return nil, err
	}

	for _, e := range entries {
		cond := conditionResource{
			ResourceType: "Condition",
			ID:           uuid.NewString(),
			Subject:      fhir.Reference{Reference: fhir.FormatReference("Patient", patient.ID)},
			Code: fhir.CodeableConcept{
				Coding: []fhir.Coding{{System: e.SystemURI, Code: e.Code, Display: e.Display}},
				Text:   e.Display,
			},
		}
		if e.Mapped {
			cond.Code.Coding = append(cond.Code.Coding, fhir.Coding{
				System:  e.TargetSystem,
				Code:    e.TargetCode,
				Display: e.TargetDisplay,
			})
		}
		if e.Status != "" {
			cond.ClinicalStatus = &fhir.CodeableConcept{
				Coding: []fhir.Coding{{
					System: "http://terminology.hl7.org/CodeSystem/condition-clinical",
					Code:   e.Status,
				}},
			}
		}
		if !e.RecordedAt.IsZero() {
			cond.RecordedDate = e.RecordedAt.UTC().Format(time.RFC3339)
		}
		if e.Notes != "" {
			cond.Note = []fhir.Annotation{{Text: e.Notes}}
		}
		if err := bundle.AddEntry("Condition", cond.ID, cond); err != nil {
			return nil, err
		}
	}

	return bundle, nil
}
