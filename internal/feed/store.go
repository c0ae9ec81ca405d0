package feed

import (
	"context"

	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
)

// ErrNotFound keeps feed 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")

// Store persists feed entries. Deletes of absent rows are no-ops: the
// synchronizer may issue compensating deletes for entries a previous failed
// command never wrote.
type Store interface {
	Insert(ctx context.Context, entry Entry) error
	// DeleteVisited removes the visited_place entry for one (user, item).
	DeleteVisited(ctx context.Context, userID id.UserID, itemID id.ItemID) error
	// DeleteCompleted removes the completed_objective entry for one
	// (user, objective). Objective-scoped on purpose: completion entries
	// have no item-level granularity.
	DeleteCompleted(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error
	// DeleteForObjective removes every visited_place and completed_objective
	// entry scoped to (user, objective). Used by the membership cascade.
	DeleteForObjective(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error
	// DeleteForFollow removes the new_follower entry linked to a
	// relationship row.
	DeleteForFollow(ctx context.Context, followID id.FollowID) error
	HasCompleted(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) (bool, error)
	ListByUser(ctx context.Context, userID id.UserID, limit int) ([]Entry, error)
}
