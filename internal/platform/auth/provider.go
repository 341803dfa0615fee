package auth

import (
	"context"
	"errors"
)

var ErrInvalidCredential = errors.New("invalid credential")

// Principal is an authenticated caller.
type Principal struct {
	UserID string   `json:"user_id"`
	AbhaID string   `json:"abha_id"`
	Name   string   `json:"name"`
	Roles  []string `json:"roles"`
	Scopes []string `json:"scopes"`
}

// IdentityProvider resolves a login credential to a principal. The
// production deployment would back this with the ABDM gateway; the
// mock provider ships with a fixed user list for demos.
type IdentityProvider interface {
	Authenticate(ctx context.Context, abhaID string) (*Principal, error)
}

// MockProvider authenticates against an in-memory list of ABHA users.
type MockProvider struct {
	users map[string]Principal
}

// MockUser is a demo ABHA identity accepted by the mock provider.
type MockUser struct {
	AbhaID string
	Name   string
	Roles  []string
}

// DefaultMockUsers returns the demo identities registered out of the box.
func DefaultMockUsers() []MockUser {
	return []MockUser{
		{AbhaID: "91-1234-5678-9012", Name: "Dr. Asha Kulkarni", Roles: []string{"clinician"}},
		{AbhaID: "91-2345-6789-0123", Name: "Dr. Ravi Sharma", Roles: []string{"clinician"}},
		{AbhaID: "91-3456-7890-1234", Name: "Meera Nair", Roles: []string{"terminology-curator"}},
	}
}

// NewMockProvider builds a provider from the given users. An empty
// list falls back to DefaultMockUsers.
func NewMockProvider(users []MockUser) *MockProvider {
	if len(users) == 0 {
		users = DefaultMockUsers()
	}
	m := make(map[string]Principal, len(users))
	for _, u := range users {
		m[u.AbhaID] = Principal{
			UserID: "user-" + u.AbhaID,
			AbhaID: u.AbhaID,
			Name:   u.Name,
			Roles:  u.Roles,
			Scopes: []string{"terminology.read", "bundle.write"},
		}
	}
	return &MockProvider{users: m}
}

func (p *MockProvider) Authenticate(_ context.Context, abhaID string) (*Principal, error) {
	principal, ok := p.users[abhaID]
	if !ok {
		return nil, ErrInvalidCredential
	}
	return &principal, nil
}
