package catalog

import (
	"context"
	"fmt"

	id "wanderlist/pkg/domain"
)

// Service exposes catalog reads to the transport layer and to the other
// managers. It is a thin wrapper; the reference data carries no rules beyond
// existence.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) GetObjective(ctx context.Context, objectiveID id.ObjectiveID) (Objective, error) {
	return s.store.GetObjective(ctx, objectiveID)
}

func (s *Service) ListObjectives(ctx context.Context, filter Filter) ([]Objective, error) {
	objectives, err := s.store.ListObjectives(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list objectives: %w", err)
	}
	return objectives, nil
}

func (s *Service) GetItem(ctx context.Context, itemID id.ItemID) (Item, error) {
	return s.store.GetItem(ctx, itemID)
}

func (s *Service) ListItems(ctx context.Context, objectiveID id.ObjectiveID) ([]Item, error) {
	items, err := s.store.ListItems(ctx, objectiveID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *Service) ListItemsByIDs(ctx context.Context, itemIDs []id.ItemID) ([]Item, error) {
	return s.store.ListItemsByIDs(ctx, itemIDs)
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.store.ListCategories(ctx)
}
