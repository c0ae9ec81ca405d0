package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	id "wanderlist/pkg/domain"
)

// InMemoryStore keeps the catalog in maps. Used by unit tests and by dev
// deployments seeded from fixtures.
type InMemoryStore struct {
	mu         sync.RWMutex
	objectives map[id.ObjectiveID]Objective
	items      map[id.ItemID]Item
	categories map[id.CategoryID]Category
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		objectives: make(map[id.ObjectiveID]Objective),
		items:      make(map[id.ItemID]Item),
		categories: make(map[id.CategoryID]Category),
	}
}

// SeedObjective loads an objective and its items, fixing TotalItems to the
// item count so the completion invariant holds from the start.
func (s *InMemoryStore) SeedObjective(objective Objective, items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	objective.TotalItems = len(items)
	s.objectives[objective.ID] = objective
	for _, item := range items {
		item.ObjectiveID = objective.ID
		s.items[item.ID] = item
	}
}

func (s *InMemoryStore) SeedCategory(category Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.ID] = category
}

func (s *InMemoryStore) GetObjective(_ context.Context, objectiveID id.ObjectiveID) (Objective, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if objective, ok := s.objectives[objectiveID]; ok {
		return objective, nil
	}
	return Objective{}, ErrNotFound
}

func (s *InMemoryStore) ListObjectives(_ context.Context, filter Filter) ([]Objective, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Objective
	search := strings.ToLower(filter.Search)
	for _, objective := range s.objectives {
		if !filter.CategoryID.IsNil() && objective.CategoryID != filter.CategoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(objective.Title), search) {
			continue
		}
		out = append(out, objective)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *InMemoryStore) GetItem(_ context.Context, itemID id.ItemID) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if item, ok := s.items[itemID]; ok {
		return item, nil
	}
	return Item{}, ErrNotFound
}

func (s *InMemoryStore) ListItems(_ context.Context, objectiveID id.ObjectiveID) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Item
	for _, item := range s.items {
		if item.ObjectiveID == objectiveID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (s *InMemoryStore) ListItemsByIDs(_ context.Context, itemIDs []id.ItemID) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		if item, ok := s.items[itemID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *InMemoryStore) ListCategories(_ context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Category, 0, len(s.categories))
	for _, category := range s.categories {
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
