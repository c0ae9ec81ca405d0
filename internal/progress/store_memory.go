package progress

import (
	"context"
	"sort"
	"sync"
	"time"

	id "wanderlist/pkg/domain"
)

type visitKey struct {
	userID id.UserID
	itemID id.ItemID
}

// InMemoryStore keeps visits in a map keyed by (user, item).
type InMemoryStore struct {
	mu     sync.RWMutex
	visits map[visitKey]time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{visits: make(map[visitKey]time.Time)}
}

func (s *InMemoryStore) Mark(_ context.Context, userID id.UserID, itemID id.ItemID, visitedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := visitKey{userID: userID, itemID: itemID}
	// First visit wins; re-marking keeps the original timestamp.
	if _, ok := s.visits[key]; !ok {
		s.visits[key] = visitedAt
	}
	return nil
}

func (s *InMemoryStore) Unmark(_ context.Context, userID id.UserID, itemID id.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.visits, visitKey{userID: userID, itemID: itemID})
	return nil
}

func (s *InMemoryStore) VisitedSet(_ context.Context, userID id.UserID, itemIDs []id.ItemID) (map[id.ItemID]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[id.ItemID]time.Time, len(itemIDs))
	for _, itemID := range itemIDs {
		if visitedAt, ok := s.visits[visitKey{userID: userID, itemID: itemID}]; ok {
			out[itemID] = visitedAt
		}
	}
	return out, nil
}

func (s *InMemoryStore) CountVisited(_ context.Context, userID id.UserID, itemIDs []id.ItemID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, itemID := range itemIDs {
		if _, ok := s.visits[visitKey{userID: userID, itemID: itemID}]; ok {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) ListVisited(_ context.Context, userID id.UserID) ([]Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Visit
	for key, visitedAt := range s.visits {
		if key.userID == userID {
			out = append(out, Visit{UserID: key.userID, ItemID: key.itemID, VisitedAt: visitedAt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitedAt.Before(out[j].VisitedAt) })
	return out, nil
}

func (s *InMemoryStore) UnmarkAllForItems(_ context.Context, userID id.UserID, itemIDs []id.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, itemID := range itemIDs {
		delete(s.visits, visitKey{userID: userID, itemID: itemID})
	}
	return nil
}
