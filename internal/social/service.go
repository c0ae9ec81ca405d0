package social

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wanderlist/internal/platform/metrics"
	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
	"wanderlist/pkg/requestcontext"
)

// FeedSync is the slice of the feed synchronizer the follow graph needs.
type FeedSync interface {
	RecordFollower(ctx context.Context, followedID id.UserID, followID id.FollowID, followerName string) error
	RemoveFollower(ctx context.Context, followedID id.UserID, followID id.FollowID) error
}

// UsernameResolver looks up the display name snapshotted into new_follower
// entries. Satisfied by the profile service.
type UsernameResolver interface {
	Username(ctx context.Context, userID id.UserID) (string, error)
}

// ErrSelfFollow is returned when a user tries to follow themselves.
var ErrSelfFollow = dErrors.New(dErrors.CodePreconditionFailed, "cannot follow yourself")

// Service implements the follow commands. Counters are derived from edge
// rows, cached, and invalidated on both ends of every change.
type Service struct {
	store    Store
	feed     FeedSync
	profiles UsernameResolver
	cache    *CountCache
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewService(store Store, feed FeedSync, profiles UsernameResolver, cache *CountCache, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		feed:     feed,
		profiles: profiles,
		cache:    cache,
		metrics:  m,
		logger:   logger,
	}
}

// Follow creates the edge and the followed user's new_follower entry.
// Following someone already followed is a silent success and writes nothing.
func (s *Service) Follow(ctx context.Context, followerID, followedID id.UserID) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	_, err := s.store.Find(ctx, followerID, followedID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("follow: %w", err)
	}

	followerName, err := s.profiles.Username(ctx, followerID)
	if err != nil {
		return fmt.Errorf("follow: %w", err)
	}

	follow := Follow{
		ID:         id.NewFollowID(),
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  requestcontext.Now(ctx),
	}
	if err := s.store.Insert(ctx, follow); err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	if err := s.feed.RecordFollower(ctx, followedID, follow.ID, followerName); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, followerID, followedID)
	s.metrics.IncFollow("follow")
	return nil
}

// Unfollow drops the edge and the new_follower entry it produced. A missing
// edge returns ErrNotFound.
func (s *Service) Unfollow(ctx context.Context, followerID, followedID id.UserID) error {
	follow, err := s.store.Find(ctx, followerID, followedID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("unfollow: %w", err)
	}

	if err := s.store.Delete(ctx, follow.ID); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("unfollow: %w", err)
	}
	if err := s.feed.RemoveFollower(ctx, followedID, follow.ID); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, followerID, followedID)
	s.metrics.IncFollow("unfollow")
	return nil
}

// IsFollowing reports whether the directed edge exists.
func (s *Service) IsFollowing(ctx context.Context, followerID, followedID id.UserID) (bool, error) {
	_, err := s.store.Find(ctx, followerID, followedID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("check following: %w", err)
}

// CountsFor returns the user's follower/following totals, cache first.
func (s *Service) CountsFor(ctx context.Context, userID id.UserID) (Counts, error) {
	if counts, ok := s.cache.Get(ctx, userID); ok {
		return counts, nil
	}

	followers, err := s.store.CountFollowers(ctx, userID)
	if err != nil {
		return Counts{}, fmt.Errorf("count followers: %w", err)
	}
	following, err := s.store.CountFollowing(ctx, userID)
	if err != nil {
		return Counts{}, fmt.Errorf("count following: %w", err)
	}

	counts := Counts{Followers: followers, Following: following}
	s.cache.Set(ctx, userID, counts)
	return counts, nil
}

// Followers returns the users following userID, oldest edge first.
func (s *Service) Followers(ctx context.Context, userID id.UserID) ([]Follow, error) {
	follows, err := s.store.ListFollowers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return follows, nil
}

// Following returns the users userID follows, oldest edge first.
func (s *Service) Following(ctx context.Context, userID id.UserID) ([]Follow, error) {
	follows, err := s.store.ListFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return follows, nil
}
