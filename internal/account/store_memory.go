package account

import (
	"context"
	"maps"
	"sync"

	"github.com/Omkar76/nscc-backend/pkg/sentinel"
)

// InMemoryStore keeps profiles in process memory. It favors clarity over
// performance and backs unit tests and single-node deployments.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[string]*Profile)}
}

func (s *InMemoryStore) Get(_ context.Context, uid string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[uid]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (s *InMemoryStore) Merge(_ context.Context, uid string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[uid]
	if !ok {
		p = &Profile{UID: uid}
		s.profiles[uid] = p
	}
	p.Apply(fields)
	return nil
}

func cloneProfile(p *Profile) *Profile {
	out := *p
	out.Fields = maps.Clone(p.Fields)
	return &out
}
