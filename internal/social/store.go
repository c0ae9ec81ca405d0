package social

import (
	"context"

	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
)

// ErrNotFound keeps social 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")

// Store persists follow edges. Find returns ErrNotFound for a missing edge;
// counts come straight from the edge rows so they can never drift.
type Store interface {
	Insert(ctx context.Context, follow Follow) error
	Find(ctx context.Context, followerID, followedID id.UserID) (Follow, error)
	Delete(ctx context.Context, followID id.FollowID) error
	CountFollowers(ctx context.Context, userID id.UserID) (int, error)
	CountFollowing(ctx context.Context, userID id.UserID) (int, error)
	ListFollowers(ctx context.Context, userID id.UserID) ([]Follow, error)
	ListFollowing(ctx context.Context, userID id.UserID) ([]Follow, error)
}
