package progress

import (
	"context"
	"fmt"
	"log/slog"

	"wanderlist/internal/catalog"
	"wanderlist/internal/platform/metrics"
	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
	"wanderlist/pkg/requestcontext"
)

// MembershipChecker reports whether a user currently holds an objective.
// Satisfied by the membership service.
type MembershipChecker interface {
	HasObjective(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) (bool, error)
}

// FeedSync is the slice of the feed synchronizer progress needs.
type FeedSync interface {
	RecordVisit(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID, objectiveTitle string, itemID id.ItemID, itemName string) error
	RemoveVisit(ctx context.Context, userID id.UserID, itemID id.ItemID) error
	SyncCompletion(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID, objectiveTitle string, held bool, completed, total int) error
}

// Service implements the progress commands. Every mutation requires the user
// to hold the item's objective, and every mutation ends with a completion
// sync so the feed can never drift from the visit rows.
type Service struct {
	store      Store
	catalog    *catalog.Service
	membership MembershipChecker
	feed       FeedSync
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewService(store Store, catalogSvc *catalog.Service, membership MembershipChecker, feed FeedSync, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		catalog:    catalogSvc,
		membership: membership,
		feed:       feed,
		metrics:    m,
		logger:     logger,
	}
}

// ErrObjectiveNotHeld is returned when a progress command targets an
// objective the user has not added to their list.
var ErrObjectiveNotHeld = dErrors.New(dErrors.CodePreconditionFailed, "objective is not in the user's list")

// ToggleItem flips the visited state of one item and returns the new state.
// The visit row, the visited_place entry, and the completed_objective entry
// all settle before the call returns.
func (s *Service) ToggleItem(ctx context.Context, userID id.UserID, itemID id.ItemID) (bool, error) {
	item, err := s.catalog.GetItem(ctx, itemID)
	if err != nil {
		return false, fmt.Errorf("toggle item: %w", err)
	}

	objective, items, err := s.requireHeld(ctx, userID, item.ObjectiveID)
	if err != nil {
		return false, err
	}

	visited, err := s.store.VisitedSet(ctx, userID, []id.ItemID{itemID})
	if err != nil {
		return false, fmt.Errorf("toggle item: %w", err)
	}

	nowVisited := len(visited) == 0
	if nowVisited {
		if err := s.store.Mark(ctx, userID, itemID, requestcontext.Now(ctx)); err != nil {
			return false, fmt.Errorf("toggle item: %w", err)
		}
		if err := s.feed.RecordVisit(ctx, userID, objective.ID, objective.Title, item.ID, item.Name); err != nil {
			return false, err
		}
		s.metrics.IncItemToggle("visit")
	} else {
		if err := s.store.Unmark(ctx, userID, itemID); err != nil {
			return false, fmt.Errorf("toggle item: %w", err)
		}
		if err := s.feed.RemoveVisit(ctx, userID, itemID); err != nil {
			return false, err
		}
		s.metrics.IncItemToggle("unvisit")
	}

	if err := s.syncCompletion(ctx, userID, objective, items); err != nil {
		return false, err
	}
	return nowVisited, nil
}

// MarkAll visits every item in the objective the user has not visited yet.
// One completion sync runs after the batch settles, so intermediate states
// never produce a transient completed_objective entry.
func (s *Service) MarkAll(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error {
	objective, items, err := s.requireHeld(ctx, userID, objectiveID)
	if err != nil {
		return err
	}

	visited, err := s.store.VisitedSet(ctx, userID, itemIDs(items))
	if err != nil {
		return fmt.Errorf("mark all: %w", err)
	}

	now := requestcontext.Now(ctx)
	for _, item := range items {
		if _, ok := visited[item.ID]; ok {
			continue
		}
		if err := s.store.Mark(ctx, userID, item.ID, now); err != nil {
			return fmt.Errorf("mark all: %w", err)
		}
		if err := s.feed.RecordVisit(ctx, userID, objective.ID, objective.Title, item.ID, item.Name); err != nil {
			return err
		}
		s.metrics.IncItemToggle("visit")
	}

	return s.syncCompletion(ctx, userID, objective, items)
}

// UnmarkAll clears every visit in the objective. Membership is untouched;
// only progress and the derived feed entries go.
func (s *Service) UnmarkAll(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error {
	objective, items, err := s.requireHeld(ctx, userID, objectiveID)
	if err != nil {
		return err
	}

	visited, err := s.store.VisitedSet(ctx, userID, itemIDs(items))
	if err != nil {
		return fmt.Errorf("unmark all: %w", err)
	}

	if err := s.store.UnmarkAllForItems(ctx, userID, itemIDs(items)); err != nil {
		return fmt.Errorf("unmark all: %w", err)
	}
	for itemID := range visited {
		if err := s.feed.RemoveVisit(ctx, userID, itemID); err != nil {
			return err
		}
		s.metrics.IncItemToggle("unvisit")
	}

	return s.syncCompletion(ctx, userID, objective, items)
}

// Snapshot reports the user's progress against one objective.
func (s *Service) Snapshot(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) (Snapshot, error) {
	objective, err := s.catalog.GetObjective(ctx, objectiveID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("progress snapshot: %w", err)
	}
	items, err := s.catalog.ListItems(ctx, objectiveID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("progress snapshot: %w", err)
	}

	visited, err := s.store.VisitedSet(ctx, userID, itemIDs(items))
	if err != nil {
		return Snapshot{}, fmt.Errorf("progress snapshot: %w", err)
	}

	snap := Snapshot{
		ObjectiveID: objective.ID,
		Total:       len(items),
		Completed:   len(visited),
	}
	if snap.Total > 0 {
		snap.Percent = float64(snap.Completed) / float64(snap.Total) * 100
	}
	// Keep catalog order so the client renders a stable checklist.
	for _, item := range items {
		if _, ok := visited[item.ID]; ok {
			snap.VisitedItemIDs = append(snap.VisitedItemIDs, item.ID)
		}
	}
	return snap, nil
}

// VisitedPlaces joins every visit with its coordinates for the world map.
func (s *Service) VisitedPlaces(ctx context.Context, userID id.UserID) ([]VisitedPlace, error) {
	visits, err := s.store.ListVisited(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("visited places: %w", err)
	}
	if len(visits) == 0 {
		return nil, nil
	}

	ids := make([]id.ItemID, len(visits))
	for i, v := range visits {
		ids[i] = v.ItemID
	}
	items, err := s.catalog.ListItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("visited places: %w", err)
	}

	itemsByID := make(map[id.ItemID]catalog.Item, len(items))
	titles := make(map[id.ObjectiveID]string)
	for _, item := range items {
		itemsByID[item.ID] = item
		if _, ok := titles[item.ObjectiveID]; !ok {
			objective, err := s.catalog.GetObjective(ctx, item.ObjectiveID)
			if err != nil {
				return nil, fmt.Errorf("visited places: %w", err)
			}
			titles[item.ObjectiveID] = objective.Title
		}
	}

	out := make([]VisitedPlace, 0, len(visits))
	for _, v := range visits {
		item, ok := itemsByID[v.ItemID]
		if !ok {
			// Catalog row removed after the visit; skip the orphan.
			continue
		}
		out = append(out, VisitedPlace{
			ItemID:         item.ID,
			Name:           item.Name,
			Latitude:       item.Latitude,
			Longitude:      item.Longitude,
			ObjectiveID:    item.ObjectiveID,
			ObjectiveTitle: titles[item.ObjectiveID],
			VisitedAt:      v.VisitedAt,
		})
	}
	return out, nil
}

// requireHeld loads the objective and its items, and rejects the command if
// the user has not added the objective.
func (s *Service) requireHeld(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) (catalog.Objective, []catalog.Item, error) {
	objective, err := s.catalog.GetObjective(ctx, objectiveID)
	if err != nil {
		return catalog.Objective{}, nil, fmt.Errorf("load objective: %w", err)
	}

	held, err := s.membership.HasObjective(ctx, userID, objectiveID)
	if err != nil {
		return catalog.Objective{}, nil, fmt.Errorf("check membership: %w", err)
	}
	if !held {
		return catalog.Objective{}, nil, ErrObjectiveNotHeld
	}

	items, err := s.catalog.ListItems(ctx, objectiveID)
	if err != nil {
		return catalog.Objective{}, nil, fmt.Errorf("load items: %w", err)
	}
	return objective, items, nil
}

func (s *Service) syncCompletion(ctx context.Context, userID id.UserID, objective catalog.Objective, items []catalog.Item) error {
	completed, err := s.store.CountVisited(ctx, userID, itemIDs(items))
	if err != nil {
		return fmt.Errorf("sync completion: %w", err)
	}
	return s.feed.SyncCompletion(ctx, userID, objective.ID, objective.Title, true, completed, len(items))
}

func itemIDs(items []catalog.Item) []id.ItemID {
	ids := make([]id.ItemID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
