package membership

import (
	"context"
	"sort"
	"sync"

	id "wanderlist/pkg/domain"
)

type edgeKey struct {
	userID      id.UserID
	objectiveID id.ObjectiveID
}

// InMemoryStore keeps membership edges in a map.
type InMemoryStore struct {
	mu    sync.RWMutex
	edges map[edgeKey]Membership
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{edges: make(map[edgeKey]Membership)}
}

func (s *InMemoryStore) Add(_ context.Context, m Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := edgeKey{userID: m.UserID, objectiveID: m.ObjectiveID}
	if _, ok := s.edges[key]; !ok {
		s.edges[key] = m
	}
	return nil
}

func (s *InMemoryStore) Exists(_ context.Context, userID id.UserID, objectiveID id.ObjectiveID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.edges[edgeKey{userID: userID, objectiveID: objectiveID}]
	return ok, nil
}

func (s *InMemoryStore) Delete(_ context.Context, userID id.UserID, objectiveID id.ObjectiveID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := edgeKey{userID: userID, objectiveID: objectiveID}
	if _, ok := s.edges[key]; !ok {
		return ErrNotFound
	}
	delete(s.edges, key)
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID id.UserID) ([]Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Membership
	for key, m := range s.edges {
		if key.userID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedAt.Before(out[j].AddedAt) })
	return out, nil
}
