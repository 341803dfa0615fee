package diagnosis

import (
	"encoding/json"
	"time"
)

// Entry statuses follow the FHIR condition clinical status codes we use.
const (
	StatusActive   = "active"
	StatusResolved = "resolved"
	StatusInactive = "inactive"
)

// Patient is the demographic record a session is recorded against.
type Patient struct {
	ID        string `json:"id"`
	AbhaID    string `json:"abha_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Gender    string `json:"gender,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

// Entry is one selected diagnosis: the source coding always, the
// translated target coding only when a translate call succeeded.
type Entry struct {
	Code          string    `json:"code"`
	Display       string    `json:"display"`
	SystemURI     string    `json:"system"`
	Mapped        bool      `json:"mapped"`
	TargetCode    string    `json:"target_code,omitempty"`
	TargetDisplay string    `json:"target_display,omitempty"`
	TargetSystem  string    `json:"target_system,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status,omitempty"`
	RecordedAt    time.Time `json:"recorded_at,omitempty"`
}

// Session is a saved clinical entry: patient, entries, and the bundle
// generated from them. Saved sessions are immutable; a correction means
// a new session and a fresh bundle.
type Session struct {
	ID        string          `json:"id"`
	Patient   Patient         `json:"patient"`
	Entries   []Entry         `json:"entries"`
	Bundle    json.RawMessage `json:"bundle,omitempty"`
	CreatedBy string          `json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
