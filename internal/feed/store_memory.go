package feed

import (
	"context"
	"sort"
	"sync"

	id "wanderlist/pkg/domain"
)

// InMemoryStore keeps feed entries in a slice per user. Favors clarity over
// performance; the unit tests drive every invariant through it.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[id.UserID][]Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[id.UserID][]Entry)}
}

func (s *InMemoryStore) Insert(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.UserID] = append(s.entries[entry.UserID], entry)
	return nil
}

func (s *InMemoryStore) DeleteVisited(_ context.Context, userID id.UserID, itemID id.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteWhere(userID, func(e Entry) bool {
		return e.Kind == KindVisitedPlace && e.ItemID == itemID
	})
	return nil
}

func (s *InMemoryStore) DeleteCompleted(_ context.Context, userID id.UserID, objectiveID id.ObjectiveID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteWhere(userID, func(e Entry) bool {
		return e.Kind == KindCompletedObjective && e.ObjectiveID == objectiveID
	})
	return nil
}

func (s *InMemoryStore) DeleteForObjective(_ context.Context, userID id.UserID, objectiveID id.ObjectiveID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteWhere(userID, func(e Entry) bool {
		return e.ObjectiveID == objectiveID &&
			(e.Kind == KindVisitedPlace || e.Kind == KindCompletedObjective)
	})
	return nil
}

func (s *InMemoryStore) DeleteForFollow(_ context.Context, followID id.FollowID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID := range s.entries {
		s.deleteWhere(userID, func(e Entry) bool {
			return e.Kind == KindNewFollower && e.FollowID == followID
		})
	}
	return nil
}

func (s *InMemoryStore) HasCompleted(_ context.Context, userID id.UserID, objectiveID id.ObjectiveID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries[userID] {
		if e.Kind == KindCompletedObjective && e.ObjectiveID == objectiveID {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID id.UserID, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]Entry{}, s.entries[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// deleteWhere must be called with the write lock held.
func (s *InMemoryStore) deleteWhere(userID id.UserID, match func(Entry) bool) {
	kept := s.entries[userID][:0]
	for _, e := range s.entries[userID] {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	s.entries[userID] = kept
}
