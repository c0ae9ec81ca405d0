package social

import (
	"context"
	"sort"
	"sync"

	id "wanderlist/pkg/domain"
)

// InMemoryStore keeps follow edges in a map keyed by edge ID.
type InMemoryStore struct {
	mu    sync.RWMutex
	edges map[id.FollowID]Follow
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{edges: make(map[id.FollowID]Follow)}
}

func (s *InMemoryStore) Insert(_ context.Context, follow Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges[follow.ID] = follow
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, followerID, followedID id.UserID) (Follow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.edges {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			return f, nil
		}
	}
	return Follow{}, ErrNotFound
}

func (s *InMemoryStore) Delete(_ context.Context, followID id.FollowID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.edges[followID]; !ok {
		return ErrNotFound
	}
	delete(s.edges, followID)
	return nil
}

func (s *InMemoryStore) CountFollowers(_ context.Context, userID id.UserID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, f := range s.edges {
		if f.FollowedID == userID {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) CountFollowing(_ context.Context, userID id.UserID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, f := range s.edges {
		if f.FollowerID == userID {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) ListFollowers(_ context.Context, userID id.UserID) ([]Follow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Follow
	for _, f := range s.edges {
		if f.FollowedID == userID {
			out = append(out, f)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (s *InMemoryStore) ListFollowing(_ context.Context, userID id.UserID) ([]Follow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Follow
	for _, f := range s.edges {
		if f.FollowerID == userID {
			out = append(out, f)
		}
	}
	sortByCreated(out)
	return out, nil
}

func sortByCreated(follows []Follow) {
	sort.Slice(follows, func(i, j int) bool { return follows[i].CreatedAt.Before(follows[j].CreatedAt) })
}
