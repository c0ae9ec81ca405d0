package membership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"wanderlist/internal/catalog"
	"wanderlist/internal/platform/metrics"
	id "wanderlist/pkg/domain"
	"wanderlist/pkg/requestcontext"
)

// ProgressStore is the slice of the progress store the cascade and the
// dashboard need.
type ProgressStore interface {
	CountVisited(ctx context.Context, userID id.UserID, itemIDs []id.ItemID) (int, error)
	UnmarkAllForItems(ctx context.Context, userID id.UserID, itemIDs []id.ItemID) error
}

// FeedPurger removes every feed entry scoped to a (user, objective) pair.
type FeedPurger interface {
	PurgeObjective(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error
}

// Service implements the membership commands. Removal cascades in a fixed
// order: edge first, then progress rows, then feed entries, so a command
// that fails midway never leaves progress for an objective the user still
// appears to hold.
type Service struct {
	store    Store
	catalog  *catalog.Service
	progress ProgressStore
	feed     FeedPurger
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewService(store Store, catalogSvc *catalog.Service, progress ProgressStore, feed FeedPurger, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		catalog:  catalogSvc,
		progress: progress,
		feed:     feed,
		metrics:  m,
		logger:   logger,
	}
}

// AddObjective puts the objective on the user's list. Adding an objective
// the user already holds is a silent success.
func (s *Service) AddObjective(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error {
	if _, err := s.catalog.GetObjective(ctx, objectiveID); err != nil {
		return fmt.Errorf("add objective: %w", err)
	}

	m := Membership{
		UserID:      userID,
		ObjectiveID: objectiveID,
		AddedAt:     requestcontext.Now(ctx),
	}
	if err := s.store.Add(ctx, m); err != nil {
		return fmt.Errorf("add objective: %w", err)
	}
	s.metrics.IncMembership("add")
	return nil
}

// RemoveObjective drops the edge and cascades: progress rows for the
// objective's items go, then every feed entry the pair produced. Removing
// an objective the user never added returns ErrNotFound.
func (s *Service) RemoveObjective(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error {
	if err := s.store.Delete(ctx, userID, objectiveID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("remove objective: %w", err)
	}

	items, err := s.catalog.ListItems(ctx, objectiveID)
	if err != nil {
		return fmt.Errorf("remove objective: %w", err)
	}
	ids := make([]id.ItemID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	if err := s.progress.UnmarkAllForItems(ctx, userID, ids); err != nil {
		return fmt.Errorf("remove objective: %w", err)
	}
	if err := s.feed.PurgeObjective(ctx, userID, objectiveID); err != nil {
		return fmt.Errorf("remove objective: %w", err)
	}

	s.metrics.IncMembership("remove")
	return nil
}

// HasObjective reports whether the edge exists.
func (s *Service) HasObjective(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) (bool, error) {
	return s.store.Exists(ctx, userID, objectiveID)
}

// ListObjectives returns the user's edges in the order they were added.
func (s *Service) ListObjectives(ctx context.Context, userID id.UserID) ([]Membership, error) {
	memberships, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return memberships, nil
}

// Dashboard rolls progress into each held objective. Per-objective loads
// fan out since each one needs a catalog read plus a count.
func (s *Service) Dashboard(ctx context.Context, userID id.UserID) ([]DashboardEntry, error) {
	memberships, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	if len(memberships) == 0 {
		return nil, nil
	}

	var mu sync.Mutex
	entries := make([]DashboardEntry, 0, len(memberships))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, m := range memberships {
		g.Go(func() error {
			entry, err := s.dashboardEntry(gctx, userID, m)
			if err != nil {
				return err
			}
			mu.Lock()
			entries = append(entries, entry)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].AddedAt.Before(entries[j].AddedAt) })
	return entries, nil
}

func (s *Service) dashboardEntry(ctx context.Context, userID id.UserID, m Membership) (DashboardEntry, error) {
	objective, err := s.catalog.GetObjective(ctx, m.ObjectiveID)
	if err != nil {
		return DashboardEntry{}, err
	}
	items, err := s.catalog.ListItems(ctx, m.ObjectiveID)
	if err != nil {
		return DashboardEntry{}, err
	}
	ids := make([]id.ItemID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	completed, err := s.progress.CountVisited(ctx, userID, ids)
	if err != nil {
		return DashboardEntry{}, err
	}

	entry := DashboardEntry{
		ObjectiveID: objective.ID,
		Title:       objective.Title,
		ImageURL:    objective.ImageURL,
		Total:       len(items),
		Completed:   completed,
		AddedAt:     m.AddedAt,
	}
	if entry.Total > 0 {
		entry.Percent = float64(entry.Completed) / float64(entry.Total) * 100
	}
	return entry, nil
}
