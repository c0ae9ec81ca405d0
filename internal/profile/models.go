// Package profile owns user-facing identity: usernames, bios, and avatars.
// Avatars live in an S3-compatible bucket; the profile row stores only the
// object key and reads get a short-lived signed URL.
package profile

import (
	"time"

	id "wanderlist/pkg/domain"
)

// Profile is one user's public identity.
type Profile struct {
	UserID    id.UserID
	Username  string
	FullName  string
	Bio       string
	City      string
	AvatarKey string
	// AvatarURL is derived per read from AvatarKey; never stored.
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Update carries the mutable profile fields. Nil pointers leave the field
// untouched.
type Update struct {
	Username *string
	FullName *string
	Bio      *string
	City     *string
}
