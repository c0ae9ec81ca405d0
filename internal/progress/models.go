// Package progress tracks which items a user has visited and keeps the
// derived completion state consistent with the activity feed. Visits only
// exist for objectives the user currently holds; the membership cascade
// enforces that on removal.
package progress

import (
	"time"

	id "wanderlist/pkg/domain"
)

// Visit is one (user, item) progress row.
type Visit struct {
	UserID    id.UserID
	ItemID    id.ItemID
	VisitedAt time.Time
}

// Snapshot is the per-objective progress view the client renders.
type Snapshot struct {
	ObjectiveID    id.ObjectiveID
	Total          int
	Completed      int
	Percent        float64
	VisitedItemIDs []id.ItemID
}

// VisitedPlace is one pin on the user's world map: a visited item joined
// with its coordinates and owning objective.
type VisitedPlace struct {
	ItemID         id.ItemID
	Name           string
	Latitude       float64
	Longitude      float64
	ObjectiveID    id.ObjectiveID
	ObjectiveTitle string
	VisitedAt      time.Time
}
