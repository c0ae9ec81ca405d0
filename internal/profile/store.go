package profile

import (
	"context"

	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
)

// ErrNotFound keeps profile 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")

// ErrUsernameTaken is returned when an update collides with an existing
// username.
var ErrUsernameTaken = dErrors.New(dErrors.CodePreconditionFailed, "username is already taken")

// Store persists profile rows.
type Store interface {
	Get(ctx context.Context, userID id.UserID) (Profile, error)
	Create(ctx context.Context, p Profile) error
	Update(ctx context.Context, p Profile) error
	// Search matches usernames and full names case-insensitively.
	Search(ctx context.Context, query string, limit int) ([]Profile, error)
}
