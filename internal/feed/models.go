// Package feed owns the activity feed: derived, user-visible records of
// visits, objective completions, and new followers. Entries are never edited
// in place; every mutation is an insert or a delete driven by a state
// transition in progress, membership, or the follow graph.
package feed

import (
	"time"

	id "wanderlist/pkg/domain"
)

// Kind labels what transition an entry reflects.
type Kind string

const (
	KindVisitedPlace       Kind = "visited_place"
	KindCompletedObjective Kind = "completed_objective"
	KindNewFollower        Kind = "new_follower"
)

// Entry is one activity feed record, owned by the user who sees it.
// ObjectiveTitle and ItemName are snapshots taken at write time so the feed
// stays readable even if reference data changes later. For new_follower
// entries, ItemName carries the follower's username and FollowID links the
// entry to its relationship row (one entry per relationship, ever).
type Entry struct {
	ID             id.EntryID
	UserID         id.UserID
	Kind           Kind
	ObjectiveID    id.ObjectiveID
	ObjectiveTitle string
	ItemID         id.ItemID
	ItemName       string
	FollowID       id.FollowID
	CreatedAt      time.Time
}
