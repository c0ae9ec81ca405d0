package profile

import (
	"context"
	"sort"
	"strings"
	"sync"

	id "wanderlist/pkg/domain"
)

// InMemoryStore keeps profiles in a map keyed by user ID.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[id.UserID]Profile
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[id.UserID]Profile)}
}

func (s *InMemoryStore) Get(_ context.Context, userID id.UserID) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *InMemoryStore) Create(_ context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.usernameTakenLocked(p.Username, p.UserID) {
		return ErrUsernameTaken
	}
	s.profiles[p.UserID] = p
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.UserID]; !ok {
		return ErrNotFound
	}
	if s.usernameTakenLocked(p.Username, p.UserID) {
		return ErrUsernameTaken
	}
	s.profiles[p.UserID] = p
	return nil
}

func (s *InMemoryStore) Search(_ context.Context, query string, limit int) ([]Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(query)
	var out []Profile
	for _, p := range s.profiles {
		if strings.Contains(strings.ToLower(p.Username), needle) ||
			strings.Contains(strings.ToLower(p.FullName), needle) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) usernameTakenLocked(username string, self id.UserID) bool {
	for userID, p := range s.profiles {
		if userID != self && strings.EqualFold(p.Username, username) {
			return true
		}
	}
	return false
}
