// Package memory provides the in-memory EntityRepository used by the
// skeleton. It stands in for a real database until one is wired up and keeps
// the repository contract honest: values are copied on the way in and out, so
// callers never share state with the store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/marcuskbra/skeleton-challenge/internal/domain"
	"github.com/marcuskbra/skeleton-challenge/internal/repository"
)

type EntityStore struct {
	mu       sync.RWMutex
	entities map[string]domain.Entity
	onCount  func(int)
}

func NewEntityStore() *EntityStore {
	return &EntityStore{entities: make(map[string]domain.Entity)}
}

// NotifyCount registers fn to receive the store size after every create or
// delete, typically to feed a gauge. Called with the store lock held.
func (s *EntityStore) NotifyCount(fn func(count int)) *EntityStore {
	s.onCount = fn
	return s
}

func (s *EntityStore) countChanged() {
	if s.onCount != nil {
		s.onCount(len(s.entities))
	}
}

func (s *EntityStore) Create(ctx context.Context, entity *domain.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[entity.ID]; ok {
		return repository.ErrAlreadyExists
	}
	s.entities[entity.ID] = entity.Clone()
	s.countChanged()
	return nil
}

func (s *EntityStore) GetByID(ctx context.Context, id string) (*domain.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.entities[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := entity.Clone()
	return &out, nil
}

func (s *EntityStore) Update(ctx context.Context, entity *domain.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[entity.ID]; !ok {
		return repository.ErrNotFound
	}
	s.entities[entity.ID] = entity.Clone()
	return nil
}

func (s *EntityStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.entities, id)
	s.countChanged()
	return nil
}

func (s *EntityStore) List(ctx context.Context) ([]*domain.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Entity, 0, len(s.entities))
	for _, entity := range s.entities {
		e := entity.Clone()
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
