package progress

import (
	"context"
	"time"

	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
)

// ErrNotFound keeps progress 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")

// Store persists visit rows. Mark is an idempotent upsert and Unmark of an
// absent row is a no-op, so the service layer can issue both without
// read-modify-write races.
type Store interface {
	Mark(ctx context.Context, userID id.UserID, itemID id.ItemID, visitedAt time.Time) error
	Unmark(ctx context.Context, userID id.UserID, itemID id.ItemID) error
	// VisitedSet reports which of the given items the user has visited,
	// keyed by item with the visit timestamp.
	VisitedSet(ctx context.Context, userID id.UserID, itemIDs []id.ItemID) (map[id.ItemID]time.Time, error)
	CountVisited(ctx context.Context, userID id.UserID, itemIDs []id.ItemID) (int, error)
	// ListVisited returns every visit the user has, for the world map.
	ListVisited(ctx context.Context, userID id.UserID) ([]Visit, error)
	// UnmarkAllForItems removes the user's visits for the given items.
	// Used by bulk unmark and by the membership removal cascade.
	UnmarkAllForItems(ctx context.Context, userID id.UserID, itemIDs []id.ItemID) error
}
