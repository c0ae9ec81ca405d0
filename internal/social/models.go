// Package social owns the follow graph: who follows whom, the follower and
// following counters, and the new_follower feed entries the graph produces.
package social

import (
	"time"

	id "wanderlist/pkg/domain"
)

// Follow is one directed edge in the follow graph. Each edge carries its own
// identity so the feed entry it produced can be deleted when the edge is.
type Follow struct {
	ID         id.FollowID
	FollowerID id.UserID
	FollowedID id.UserID
	CreatedAt  time.Time
}

// Counts is a user's follower and following totals.
type Counts struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}
