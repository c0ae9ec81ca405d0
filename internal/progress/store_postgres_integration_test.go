//go:build integration

package progress_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"wanderlist/internal/progress"
	id "wanderlist/pkg/domain"
	"wanderlist/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *progress.PostgresStore

	objectiveID id.ObjectiveID
	itemIDs     []id.ItemID
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = progress.NewPostgres(s.postgres.DB)

	ctx := context.Background()
	s.objectiveID = id.NewObjectiveID()
	_, err := s.postgres.DB.ExecContext(ctx,
		`INSERT INTO objectives (id, title, total_items) VALUES ($1, $2, $3)`,
		uuid.UUID(s.objectiveID), "Seven Summits", 3)
	s.Require().NoError(err)

	for _, name := range []string{"Kilimanjaro", "Denali", "Elbrus"} {
		itemID := id.NewItemID()
		_, err := s.postgres.DB.ExecContext(ctx,
			`INSERT INTO objective_items (id, objective_id, name) VALUES ($1, $2, $3)`,
			uuid.UUID(itemID), uuid.UUID(s.objectiveID), name)
		s.Require().NoError(err)
		s.itemIDs = append(s.itemIDs, itemID)
	}
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "user_progress"))
}

func (s *PostgresStoreSuite) TestMarkIsIdempotent() {
	ctx := context.Background()
	userID := id.NewUserID()
	first := time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.Mark(ctx, userID, s.itemIDs[0], first))
	s.Require().NoError(s.store.Mark(ctx, userID, s.itemIDs[0], first.Add(time.Hour)))

	visited, err := s.store.VisitedSet(ctx, userID, s.itemIDs)
	s.Require().NoError(err)
	s.Len(visited, 1)
	s.WithinDuration(first, visited[s.itemIDs[0]], time.Millisecond, "first visit timestamp wins")
}

func (s *PostgresStoreSuite) TestCountVisited() {
	ctx := context.Background()
	userID := id.NewUserID()
	now := time.Now().UTC()

	s.Require().NoError(s.store.Mark(ctx, userID, s.itemIDs[0], now))
	s.Require().NoError(s.store.Mark(ctx, userID, s.itemIDs[2], now))

	count, err := s.store.CountVisited(ctx, userID, s.itemIDs)
	s.Require().NoError(err)
	s.Equal(2, count)

	count, err = s.store.CountVisited(ctx, id.NewUserID(), s.itemIDs)
	s.Require().NoError(err)
	s.Zero(count, "counts are per user")
}

func (s *PostgresStoreSuite) TestUnmark() {
	ctx := context.Background()
	userID := id.NewUserID()

	s.Require().NoError(s.store.Mark(ctx, userID, s.itemIDs[0], time.Now().UTC()))
	s.Require().NoError(s.store.Unmark(ctx, userID, s.itemIDs[0]))
	s.Require().NoError(s.store.Unmark(ctx, userID, s.itemIDs[0]), "absent row is a no-op")

	count, err := s.store.CountVisited(ctx, userID, s.itemIDs)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *PostgresStoreSuite) TestUnmarkAllForItems() {
	ctx := context.Background()
	userID := id.NewUserID()
	now := time.Now().UTC()
	for _, itemID := range s.itemIDs {
		s.Require().NoError(s.store.Mark(ctx, userID, itemID, now))
	}

	s.Require().NoError(s.store.UnmarkAllForItems(ctx, userID, s.itemIDs[:2]))

	visited, err := s.store.VisitedSet(ctx, userID, s.itemIDs)
	s.Require().NoError(err)
	s.Len(visited, 1)
	s.Contains(visited, s.itemIDs[2])
}

func (s *PostgresStoreSuite) TestListVisitedOrdersByTime() {
	ctx := context.Background()
	userID := id.NewUserID()
	base := time.Now().UTC().Add(-time.Hour)

	s.Require().NoError(s.store.Mark(ctx, userID, s.itemIDs[1], base.Add(2*time.Minute)))
	s.Require().NoError(s.store.Mark(ctx, userID, s.itemIDs[0], base))

	visits, err := s.store.ListVisited(ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(visits, 2)
	s.Equal(s.itemIDs[0], visits[0].ItemID)
	s.Equal(s.itemIDs[1], visits[1].ItemID)
}
