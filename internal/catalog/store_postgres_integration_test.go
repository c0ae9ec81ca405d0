//go:build integration

package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"wanderlist/internal/catalog"
	id "wanderlist/pkg/domain"
	"wanderlist/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *catalog.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = catalog.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "objectives", "objective_items"))
}

func (s *PostgresStoreSuite) seedObjective(title string, columnTotal int, items ...string) id.ObjectiveID {
	ctx := context.Background()
	objectiveID := id.NewObjectiveID()
	_, err := s.postgres.DB.ExecContext(ctx,
		`INSERT INTO objectives (id, title, total_items) VALUES ($1, $2, $3)`,
		uuid.UUID(objectiveID), title, columnTotal)
	s.Require().NoError(err)

	for i, name := range items {
		_, err := s.postgres.DB.ExecContext(ctx,
			`INSERT INTO objective_items (id, objective_id, name, order_index) VALUES ($1, $2, $3, $4)`,
			uuid.New(), uuid.UUID(objectiveID), name, i)
		s.Require().NoError(err)
	}
	return objectiveID
}

func (s *PostgresStoreSuite) TestGetObjectiveDerivesTotalItems() {
	ctx := context.Background()

	// The column defaults to 0 and nothing maintains it; reads must count
	// the items instead.
	objectiveID := s.seedObjective("Seven Summits", 0, "Kilimanjaro", "Denali", "Elbrus")

	objective, err := s.store.GetObjective(ctx, objectiveID)
	s.Require().NoError(err)
	s.Equal(3, objective.TotalItems)
}

func (s *PostgresStoreSuite) TestGetObjectiveIgnoresStaleColumn() {
	ctx := context.Background()
	objectiveID := s.seedObjective("Ancient Wonders", 99, "Petra", "Chichen Itza")

	objective, err := s.store.GetObjective(ctx, objectiveID)
	s.Require().NoError(err)
	s.Equal(2, objective.TotalItems, "item count wins over the stored column")
}

func (s *PostgresStoreSuite) TestListObjectivesDerivesTotalItems() {
	ctx := context.Background()
	s.seedObjective("Seven Summits", 0, "Kilimanjaro")
	s.seedObjective("Ancient Wonders", 0)

	objectives, err := s.store.ListObjectives(ctx, catalog.Filter{})
	s.Require().NoError(err)
	s.Require().Len(objectives, 2)
	s.Equal("Ancient Wonders", objectives[0].Title)
	s.Equal(0, objectives[0].TotalItems)
	s.Equal("Seven Summits", objectives[1].Title)
	s.Equal(1, objectives[1].TotalItems)
}
