package profile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
	"wanderlist/pkg/requestcontext"
)

const maxSearchResults = 50

// ErrInvalidUsername is returned for usernames outside the allowed shape.
var ErrInvalidUsername = dErrors.New(dErrors.CodeInvalidInput, "username must be 3-30 characters of letters, digits, or underscores")

// ErrAvatarsDisabled is returned when no blob store is configured.
var ErrAvatarsDisabled = dErrors.New(dErrors.CodeUnavailable, "avatar storage is not configured")

// Service implements profile reads and writes. Reads resolve the avatar key
// to a signed URL when a blob store is wired.
type Service struct {
	store  Store
	blobs  BlobStore
	logger *slog.Logger
}

func NewService(store Store, blobs BlobStore, logger *slog.Logger) *Service {
	return &Service{store: store, blobs: blobs, logger: logger}
}

// Get returns the profile with its avatar URL resolved.
func (s *Service) Get(ctx context.Context, userID id.UserID) (Profile, error) {
	p, err := s.store.Get(ctx, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	s.resolveAvatar(ctx, &p)
	return p, nil
}

// Username returns just the display name, for snapshotting into feed
// entries.
func (s *Service) Username(ctx context.Context, userID id.UserID) (string, error) {
	p, err := s.store.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get username: %w", err)
	}
	return p.Username, nil
}

// Create registers a new profile row for the user.
func (s *Service) Create(ctx context.Context, userID id.UserID, username, fullName string) (Profile, error) {
	if !validUsername(username) {
		return Profile{}, ErrInvalidUsername
	}
	now := requestcontext.Now(ctx)
	p := Profile{
		UserID:    userID,
		Username:  username,
		FullName:  fullName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Update applies the non-nil fields and bumps updated_at.
func (s *Service) Update(ctx context.Context, userID id.UserID, update Update) (Profile, error) {
	p, err := s.store.Get(ctx, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("update profile: %w", err)
	}

	if update.Username != nil {
		if !validUsername(*update.Username) {
			return Profile{}, ErrInvalidUsername
		}
		p.Username = *update.Username
	}
	if update.FullName != nil {
		p.FullName = *update.FullName
	}
	if update.Bio != nil {
		p.Bio = *update.Bio
	}
	if update.City != nil {
		p.City = *update.City
	}
	p.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	s.resolveAvatar(ctx, &p)
	return p, nil
}

// Search matches usernames and full names, capped at maxSearchResults.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Profile, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 || limit > maxSearchResults {
		limit = maxSearchResults
	}
	profiles, err := s.store.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	for i := range profiles {
		s.resolveAvatar(ctx, &profiles[i])
	}
	return profiles, nil
}

// UploadAvatar stores the image and records the object key on the profile.
func (s *Service) UploadAvatar(ctx context.Context, userID id.UserID, contentType string, body io.Reader) (Profile, error) {
	if s.blobs == nil {
		return Profile{}, ErrAvatarsDisabled
	}

	p, err := s.store.Get(ctx, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("upload avatar: %w", err)
	}

	key := AvatarKey(userID, contentType)
	if err := s.blobs.Put(ctx, key, contentType, body); err != nil {
		return Profile{}, err
	}

	p.AvatarKey = key
	p.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	s.resolveAvatar(ctx, &p)
	return p, nil
}

func (s *Service) resolveAvatar(ctx context.Context, p *Profile) {
	if s.blobs == nil || p.AvatarKey == "" {
		return
	}
	url, err := s.blobs.SignedURL(ctx, p.AvatarKey)
	if err != nil {
		// Signing failures degrade the read, they do not fail it.
		s.logger.WarnContext(ctx, "sign avatar url", "error", err, "user_id", p.UserID)
		return
	}
	p.AvatarURL = url
}

func validUsername(username string) bool {
	if len(username) < 3 || len(username) > 30 {
		return false
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
