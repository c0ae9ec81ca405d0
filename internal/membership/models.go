// Package membership owns the edge between a user and an objective: which
// objectives are on the user's list. Removing the edge cascades to progress
// rows and feed entries so nothing references an objective the user no
// longer holds.
package membership

import (
	"time"

	id "wanderlist/pkg/domain"
)

// Membership is one (user, objective) edge.
type Membership struct {
	UserID      id.UserID
	ObjectiveID id.ObjectiveID
	AddedAt     time.Time
}

// DashboardEntry is one objective on the user's dashboard with its progress
// rolled in.
type DashboardEntry struct {
	ObjectiveID id.ObjectiveID
	Title       string
	ImageURL    string
	Total       int
	Completed   int
	Percent     float64
	AddedAt     time.Time
}
