package catalog

import (
	"context"

	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
)

// ErrNotFound keeps catalog 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")

// Store is the read-only gateway to the reference tables. Implementations
// must return ErrNotFound for missing single records.
type Store interface {
	GetObjective(ctx context.Context, objectiveID id.ObjectiveID) (Objective, error)
	ListObjectives(ctx context.Context, filter Filter) ([]Objective, error)
	GetItem(ctx context.Context, itemID id.ItemID) (Item, error)
	ListItems(ctx context.Context, objectiveID id.ObjectiveID) ([]Item, error)
	ListItemsByIDs(ctx context.Context, itemIDs []id.ItemID) ([]Item, error)
	ListCategories(ctx context.Context) ([]Category, error)
}
