package fhir

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bundle represents a FHIR Bundle resource.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type"`
	Total        *int          `json:"total,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
	Timestamp    *time.Time    `json:"timestamp,omitempty"`
}

type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
	Request  *BundleRequest  `json:"request,omitempty"`
	Response *BundleResponse `json:"response,omitempty"`
}

type BundleRequest struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

type BundleResponse struct {
	Status   string      `json:"status"`
	Location string      `json:"location,omitempty"`
	Outcome  interface{} `json:"outcome,omitempty"`
}

// NewTransactionBundle creates an empty transaction Bundle.
func NewTransactionBundle(id string) *Bundle {
	now := time.Now().UTC()
	return &Bundle{
		ResourceType: "Bundle",
		ID:           id,
		Type:         "transaction",
		Timestamp:    &now,
	}
}

// AddEntry marshals a resource and appends it with a POST request directive.
func (b *Bundle) AddEntry(resourceType, id string, resource interface{}) error {
	raw, err := json.Marshal(resource)
	if err != nil {
		return fmt.Errorf("marshal %s entry: %w", resourceType, err)
	}
	b.Entry = append(b.Entry, BundleEntry{
		FullURL:  FormatReference(resourceType, id),
		Resource: raw,
		Request: &BundleRequest{
			Method: "POST",
			URL:    resourceType,
		},
	})
	return nil
}

// ResourceCount returns the number of entries in the bundle.
func (b *Bundle) ResourceCount() int {
	return len(b.Entry)
}

// FormatReference creates a FHIR reference string.
func FormatReference(resourceType, id string) string {
	return fmt.Sprintf("%s/%s", resourceType, id)
}
