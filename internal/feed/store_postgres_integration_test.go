//go:build integration

package feed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"wanderlist/internal/feed"
	id "wanderlist/pkg/domain"
	"wanderlist/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *feed.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = feed.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "activity_feed"))
}

func (s *PostgresStoreSuite) visitedEntry(userID id.UserID, objectiveID id.ObjectiveID, at time.Time) feed.Entry {
	return feed.Entry{
		ID:             id.NewEntryID(),
		UserID:         userID,
		Kind:           feed.KindVisitedPlace,
		ObjectiveID:    objectiveID,
		ObjectiveTitle: "Seven Summits",
		ItemID:         id.NewItemID(),
		ItemName:       "Kilimanjaro",
		CreatedAt:      at,
	}
}

func (s *PostgresStoreSuite) TestInsertAndList() {
	ctx := context.Background()
	userID := id.NewUserID()
	objectiveID := id.NewObjectiveID()
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)

	older := s.visitedEntry(userID, objectiveID, base)
	newer := s.visitedEntry(userID, objectiveID, base.Add(time.Minute))
	s.Require().NoError(s.store.Insert(ctx, older))
	s.Require().NoError(s.store.Insert(ctx, newer))

	entries, err := s.store.ListByUser(ctx, userID, 200)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(newer.ID, entries[0].ID, "newest first")
	s.Equal("Kilimanjaro", entries[0].ItemName)
	s.True(entries[0].FollowID.IsNil())
}

func (s *PostgresStoreSuite) TestDeleteVisitedScopesToItem() {
	ctx := context.Background()
	userID := id.NewUserID()
	objectiveID := id.NewObjectiveID()
	now := time.Now().UTC()

	keep := s.visitedEntry(userID, objectiveID, now)
	drop := s.visitedEntry(userID, objectiveID, now)
	s.Require().NoError(s.store.Insert(ctx, keep))
	s.Require().NoError(s.store.Insert(ctx, drop))

	s.Require().NoError(s.store.DeleteVisited(ctx, userID, drop.ItemID))

	entries, err := s.store.ListByUser(ctx, userID, 200)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(keep.ID, entries[0].ID)
}

func (s *PostgresStoreSuite) TestCompletedLifecycle() {
	ctx := context.Background()
	userID := id.NewUserID()
	objectiveID := id.NewObjectiveID()

	has, err := s.store.HasCompleted(ctx, userID, objectiveID)
	s.Require().NoError(err)
	s.False(has)

	entry := feed.Entry{
		ID:             id.NewEntryID(),
		UserID:         userID,
		Kind:           feed.KindCompletedObjective,
		ObjectiveID:    objectiveID,
		ObjectiveTitle: "Seven Summits",
		CreatedAt:      time.Now().UTC(),
	}
	s.Require().NoError(s.store.Insert(ctx, entry))

	has, err = s.store.HasCompleted(ctx, userID, objectiveID)
	s.Require().NoError(err)
	s.True(has)

	s.Require().NoError(s.store.DeleteCompleted(ctx, userID, objectiveID))

	has, err = s.store.HasCompleted(ctx, userID, objectiveID)
	s.Require().NoError(err)
	s.False(has)
}

func (s *PostgresStoreSuite) TestDeleteForObjectiveSparesFollowerEntries() {
	ctx := context.Background()
	userID := id.NewUserID()
	objectiveID := id.NewObjectiveID()
	now := time.Now().UTC()

	s.Require().NoError(s.store.Insert(ctx, s.visitedEntry(userID, objectiveID, now)))
	follower := feed.Entry{
		ID:        id.NewEntryID(),
		UserID:    userID,
		Kind:      feed.KindNewFollower,
		ItemName:  "alice",
		FollowID:  id.NewFollowID(),
		CreatedAt: now,
	}
	s.Require().NoError(s.store.Insert(ctx, follower))

	s.Require().NoError(s.store.DeleteForObjective(ctx, userID, objectiveID))

	entries, err := s.store.ListByUser(ctx, userID, 200)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(feed.KindNewFollower, entries[0].Kind)
}

func (s *PostgresStoreSuite) TestDeleteForFollow() {
	ctx := context.Background()
	userID := id.NewUserID()
	followID := id.NewFollowID()

	entry := feed.Entry{
		ID:        id.NewEntryID(),
		UserID:    userID,
		Kind:      feed.KindNewFollower,
		ItemName:  "alice",
		FollowID:  followID,
		CreatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.store.Insert(ctx, entry))
	s.Require().NoError(s.store.DeleteForFollow(ctx, followID))
	s.Require().NoError(s.store.DeleteForFollow(ctx, followID), "absent row is a no-op")

	entries, err := s.store.ListByUser(ctx, userID, 200)
	s.Require().NoError(err)
	s.Empty(entries)
}
