package event

import (
	"context"
	"slices"
	"sync"

	"github.com/Omkar76/nscc-backend/pkg/sentinel"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string]*Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string]*Event)}
}

func (s *InMemoryStore) Get(_ context.Context, id string) (*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *ev
	out.RequiredUserFields = slices.Clone(ev.RequiredUserFields)
	return &out, nil
}

func (s *InMemoryStore) Put(_ context.Context, ev *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *ev
	stored.RequiredUserFields = slices.Clone(ev.RequiredUserFields)
	s.events[ev.ID] = &stored
	return nil
}
