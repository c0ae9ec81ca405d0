package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"wanderlist/internal/platform/events"
	"wanderlist/internal/platform/metrics"
	id "wanderlist/pkg/domain"
	"wanderlist/pkg/requestcontext"
)

// Service is the feed synchronizer. Other services call it after their own
// state has settled; it owns entry creation, compensating deletes, and the
// completion rule. It never reads progress or membership state itself.
type Service struct {
	store     Store
	publisher *events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewService(store Store, publisher *events.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{store: store, publisher: publisher, metrics: m, logger: logger}
}

// RecordVisit writes the visited_place entry for a newly visited item.
func (s *Service) RecordVisit(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID, objectiveTitle string, itemID id.ItemID, itemName string) error {
	entry := Entry{
		ID:             id.NewEntryID(),
		UserID:         userID,
		Kind:           KindVisitedPlace,
		ObjectiveID:    objectiveID,
		ObjectiveTitle: objectiveTitle,
		ItemID:         itemID,
		ItemName:       itemName,
		CreatedAt:      requestcontext.Now(ctx),
	}
	if err := s.store.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	s.metrics.IncFeedEntry(string(KindVisitedPlace), "insert")
	s.publishCreated(ctx, entry)
	return nil
}

// RemoveVisit deletes the visited_place entry for an unvisited item. A
// missing entry is fine: the delete is compensating, not asserting.
func (s *Service) RemoveVisit(ctx context.Context, userID id.UserID, itemID id.ItemID) error {
	if err := s.store.DeleteVisited(ctx, userID, itemID); err != nil {
		return fmt.Errorf("remove visit: %w", err)
	}
	s.metrics.IncFeedEntry(string(KindVisitedPlace), "delete")
	s.publishDeleted(ctx, Entry{
		UserID: userID,
		Kind:   KindVisitedPlace,
		ItemID: itemID,
	})
	return nil
}

// SyncCompletion reconciles the completed_objective entry for one
// (user, objective) against the caller-supplied completion counts. Idempotent:
// re-syncing an already consistent pair changes nothing.
func (s *Service) SyncCompletion(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID, objectiveTitle string, held bool, completed, total int) error {
	has, err := s.store.HasCompleted(ctx, userID, objectiveID)
	if err != nil {
		return fmt.Errorf("sync completion: %w", err)
	}

	changes := Reconcile(CompletionState{
		Held:              held,
		Completed:         completed,
		Total:             total,
		HasCompletedEntry: has,
	})

	switch {
	case changes.InsertCompleted:
		entry := Entry{
			ID:             id.NewEntryID(),
			UserID:         userID,
			Kind:           KindCompletedObjective,
			ObjectiveID:    objectiveID,
			ObjectiveTitle: objectiveTitle,
			CreatedAt:      requestcontext.Now(ctx),
		}
		if err := s.store.Insert(ctx, entry); err != nil {
			return fmt.Errorf("sync completion: %w", err)
		}
		s.metrics.IncFeedEntry(string(KindCompletedObjective), "insert")
		s.metrics.IncObjectiveCompleted()
		s.publishCreated(ctx, entry)
	case changes.DeleteCompleted:
		if err := s.store.DeleteCompleted(ctx, userID, objectiveID); err != nil {
			return fmt.Errorf("sync completion: %w", err)
		}
		s.metrics.IncFeedEntry(string(KindCompletedObjective), "delete")
		s.publishDeleted(ctx, Entry{
			UserID:         userID,
			Kind:           KindCompletedObjective,
			ObjectiveID:    objectiveID,
			ObjectiveTitle: objectiveTitle,
		})
	}
	return nil
}

// RecordFollower writes the new_follower entry on the followed user's feed.
// followerName is snapshotted so the entry survives later profile edits.
func (s *Service) RecordFollower(ctx context.Context, followedID id.UserID, followID id.FollowID, followerName string) error {
	entry := Entry{
		ID:        id.NewEntryID(),
		UserID:    followedID,
		Kind:      KindNewFollower,
		ItemName:  followerName,
		FollowID:  followID,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record follower: %w", err)
	}
	s.metrics.IncFeedEntry(string(KindNewFollower), "insert")
	s.publishCreated(ctx, entry)
	return nil
}

// RemoveFollower deletes the new_follower entry tied to a dissolved
// relationship.
func (s *Service) RemoveFollower(ctx context.Context, followedID id.UserID, followID id.FollowID) error {
	if err := s.store.DeleteForFollow(ctx, followID); err != nil {
		return fmt.Errorf("remove follower: %w", err)
	}
	s.metrics.IncFeedEntry(string(KindNewFollower), "delete")
	s.publishDeleted(ctx, Entry{
		UserID:   followedID,
		Kind:     KindNewFollower,
		FollowID: followID,
	})
	return nil
}

// PurgeObjective removes every entry the (user, objective) pair produced.
// Called by the membership cascade after progress rows are gone.
func (s *Service) PurgeObjective(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error {
	if err := s.store.DeleteForObjective(ctx, userID, objectiveID); err != nil {
		return fmt.Errorf("purge objective entries: %w", err)
	}
	for _, kind := range []Kind{KindVisitedPlace, KindCompletedObjective} {
		s.publishDeleted(ctx, Entry{
			UserID:      userID,
			Kind:        kind,
			ObjectiveID: objectiveID,
		})
	}
	return nil
}

// List returns the user's feed, newest first, capped at limit (default 200).
func (s *Service) List(ctx context.Context, userID id.UserID, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	entries, err := s.store.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	return entries, nil
}

func (s *Service) publishCreated(ctx context.Context, entry Entry) {
	s.publish(ctx, events.TypeEntryCreated, entry, entry.CreatedAt)
}

// publishDeleted announces a compensating delete. Deletes match by predicate
// rather than entry ID, so the event identifies the entry by its scope
// fields instead.
func (s *Service) publishDeleted(ctx context.Context, entry Entry) {
	s.publish(ctx, events.TypeEntryDeleted, entry, requestcontext.Now(ctx))
}

func (s *Service) publish(ctx context.Context, eventType events.Type, entry Entry, occurredAt time.Time) {
	event := events.ActivityEvent{
		Type:       eventType,
		UserID:     entry.UserID.String(),
		Kind:       string(entry.Kind),
		Title:      entry.ObjectiveTitle,
		OccurredAt: occurredAt,
	}
	if uuid.UUID(entry.ID) != uuid.Nil {
		event.EntryID = entry.ID.String()
	}
	if uuid.UUID(entry.ObjectiveID) != uuid.Nil {
		event.ObjectiveID = entry.ObjectiveID.String()
	}
	if uuid.UUID(entry.ItemID) != uuid.Nil {
		event.ItemID = entry.ItemID.String()
	}
	if uuid.UUID(entry.FollowID) != uuid.Nil {
		event.FollowID = entry.FollowID.String()
	}
	s.publisher.Publish(ctx, event)
}
