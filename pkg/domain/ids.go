// Package domain provides typed identifiers for the engine's entities.
// Wrapping uuid.UUID in distinct types makes cross-entity assignment a
// compile error: a follower id can never be passed where an objective id is
// expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "wanderlist/pkg/domain-errors"
)

type (
	// UserID identifies a user account (profiles table primary key).
	UserID uuid.UUID
	// ObjectiveID identifies a place collection.
	ObjectiveID uuid.UUID
	// ItemID identifies a single place inside an objective.
	ItemID uuid.UUID
	// CategoryID identifies an objective category.
	CategoryID uuid.UUID
	// FollowID identifies a follow relationship row. Feed entries of kind
	// new_follower carry it as their linkage key.
	FollowID uuid.UUID
	// EntryID identifies an activity feed entry.
	EntryID uuid.UUID
)

func NewUserID() UserID           { return UserID(uuid.New()) }
func NewObjectiveID() ObjectiveID { return ObjectiveID(uuid.New()) }
func NewItemID() ItemID           { return ItemID(uuid.New()) }
func NewCategoryID() CategoryID   { return CategoryID(uuid.New()) }
func NewFollowID() FollowID       { return FollowID(uuid.New()) }
func NewEntryID() EntryID         { return EntryID(uuid.New()) }

func (id UserID) String() string      { return uuid.UUID(id).String() }
func (id ObjectiveID) String() string { return uuid.UUID(id).String() }
func (id ItemID) String() string      { return uuid.UUID(id).String() }
func (id CategoryID) String() string  { return uuid.UUID(id).String() }
func (id FollowID) String() string    { return uuid.UUID(id).String() }
func (id EntryID) String() string     { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id ObjectiveID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ItemID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id CategoryID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id FollowID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id EntryID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }

// parseUUID enforces the shared invariant: IDs arriving at trust boundaries
// must be valid, non-nil UUIDs.
func parseUUID(s string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid identifier")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "identifier must not be nil")
	}
	return parsed, nil
}

func ParseUserID(s string) (UserID, error) {
	parsed, err := parseUUID(s)
	return UserID(parsed), err
}

func ParseObjectiveID(s string) (ObjectiveID, error) {
	parsed, err := parseUUID(s)
	return ObjectiveID(parsed), err
}

func ParseItemID(s string) (ItemID, error) {
	parsed, err := parseUUID(s)
	return ItemID(parsed), err
}

func ParseCategoryID(s string) (CategoryID, error) {
	parsed, err := parseUUID(s)
	return CategoryID(parsed), err
}

func ParseFollowID(s string) (FollowID, error) {
	parsed, err := parseUUID(s)
	return FollowID(parsed), err
}

func ParseEntryID(s string) (EntryID, error) {
	parsed, err := parseUUID(s)
	return EntryID(parsed), err
}
