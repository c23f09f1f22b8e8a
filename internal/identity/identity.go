// Package identity defines the boundary to the external identity provider.
// The service never authenticates users itself; it consumes a verified caller
// identity and pushes the one out-of-band attribute change (display name)
// back through this boundary.
package identity

import (
	"context"
	"sync"
)

// Caller is the authenticated identity attached to every request by the auth
// middleware. Attributes mirror what the identity provider asserts in its
// token claims.
type Caller struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	DisplayName   string `json:"displayName"`
	PhotoURL      string `json:"photoURL"`
}

// Provider is the write-side of the identity boundary. Display name is the
// one profile field with a side channel outside the document stores.
type Provider interface {
	UpdateDisplayName(ctx context.Context, uid, displayName string) error
}

// InMemoryProvider records display name updates. It stands in for the real
// directory in tests and single-node deployments.
type InMemoryProvider struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewInMemoryProvider() *InMemoryProvider {
	return &InMemoryProvider{names: make(map[string]string)}
}

func (p *InMemoryProvider) UpdateDisplayName(_ context.Context, uid, displayName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.names[uid] = displayName
	return nil
}

// DisplayName returns the last pushed display name for uid, if any.
func (p *InMemoryProvider) DisplayName(uid string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	name, ok := p.names[uid]
	return name, ok
}
