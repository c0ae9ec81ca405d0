package membership

import (
	"context"

	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
)

// ErrNotFound keeps membership 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")

// Store persists membership edges. Add is idempotent; Delete returns
// ErrNotFound when the edge does not exist so removal of a never-added
// objective surfaces as a 404, not a silent success.
type Store interface {
	Add(ctx context.Context, m Membership) error
	Exists(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) (bool, error)
	Delete(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error
	ListByUser(ctx context.Context, userID id.UserID) ([]Membership, error)
}
