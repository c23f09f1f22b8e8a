package store

import (
	"context"
	"maps"
	"sync"

	"github.com/Omkar76/nscc-backend/internal/registration"
	"github.com/Omkar76/nscc-backend/pkg/sentinel"
)

type key struct {
	eventID string
	uid     string
}

type InMemoryStore struct {
	mu      sync.RWMutex
	records map[key]*registration.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[key]*registration.Record)}
}

func (s *InMemoryStore) Exists(_ context.Context, eventID, uid string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[key{eventID, uid}]
	return ok, nil
}

func (s *InMemoryStore) Get(_ context.Context, eventID, uid string) (*registration.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key{eventID, uid}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *rec
	out.Fields = maps.Clone(rec.Fields)
	return &out, nil
}

func (s *InMemoryStore) Merge(_ context.Context, rec *registration.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{rec.EventID, rec.UID}
	existing, ok := s.records[k]
	if !ok {
		stored := *rec
		stored.Fields = maps.Clone(rec.Fields)
		if stored.Fields == nil {
			stored.Fields = make(map[string]string)
		}
		s.records[k] = &stored
		return nil
	}
	existing.Email = rec.Email
	existing.EmailVerified = rec.EmailVerified
	existing.ModifiedAt = rec.ModifiedAt
	maps.Copy(existing.Fields, rec.Fields)
	return nil
}
