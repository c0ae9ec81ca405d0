package progress_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderlist/internal/catalog"
	"wanderlist/internal/feed"
	"wanderlist/internal/membership"
	"wanderlist/internal/progress"
	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
	"wanderlist/pkg/requestcontext"
)

type fixture struct {
	catalog    *catalog.InMemoryStore
	membership *membership.Service
	feed       *feed.Service
	feedStore  *feed.InMemoryStore
	progress   *progress.Service
	store      *progress.InMemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.Default()

	catalogStore := catalog.NewInMemoryStore()
	catalogSvc := catalog.NewService(catalogStore)

	feedStore := feed.NewInMemoryStore()
	feedSvc := feed.NewService(feedStore, nil, nil, logger)

	progressStore := progress.NewInMemoryStore()
	membershipSvc := membership.NewService(membership.NewInMemoryStore(), catalogSvc, progressStore, feedSvc, nil, logger)
	progressSvc := progress.NewService(progressStore, catalogSvc, membershipSvc, feedSvc, nil, logger)

	return &fixture{
		catalog:    catalogStore,
		membership: membershipSvc,
		feed:       feedSvc,
		feedStore:  feedStore,
		progress:   progressSvc,
		store:      progressStore,
	}
}

func (f *fixture) seedObjective(t *testing.T, title string, itemNames ...string) (catalog.Objective, []catalog.Item) {
	t.Helper()
	objective := catalog.Objective{ID: id.NewObjectiveID(), Title: title}
	items := make([]catalog.Item, len(itemNames))
	for i, name := range itemNames {
		items[i] = catalog.Item{
			ID:          id.NewItemID(),
			ObjectiveID: objective.ID,
			Name:        name,
			OrderIndex:  i,
		}
	}
	f.catalog.SeedObjective(objective, items)
	return objective, items
}

func (f *fixture) countFeed(t *testing.T, userID id.UserID, kind feed.Kind) int {
	t.Helper()
	entries, err := f.feed.List(context.Background(), userID, 0)
	require.NoError(t, err)
	n := 0
	for _, e := range entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestService_ToggleItem(t *testing.T) {
	ctx := context.Background()

	t.Run("visit then unvisit round-trips", func(t *testing.T) {
		f := newFixture(t)
		userID := id.NewUserID()
		objective, items := f.seedObjective(t, "Seven Summits", "Kilimanjaro", "Denali", "Elbrus")
		require.NoError(t, f.membership.AddObjective(ctx, userID, objective.ID))

		visited, err := f.progress.ToggleItem(ctx, userID, items[0].ID)
		require.NoError(t, err)
		assert.True(t, visited)
		assert.Equal(t, 1, f.countFeed(t, userID, feed.KindVisitedPlace))

		visited, err = f.progress.ToggleItem(ctx, userID, items[0].ID)
		require.NoError(t, err)
		assert.False(t, visited)
		assert.Zero(t, f.countFeed(t, userID, feed.KindVisitedPlace))

		snap, err := f.progress.Snapshot(ctx, userID, objective.ID)
		require.NoError(t, err)
		assert.Zero(t, snap.Completed)
	})

	t.Run("rejects item whose objective is not held", func(t *testing.T) {
		f := newFixture(t)
		userID := id.NewUserID()
		_, items := f.seedObjective(t, "Seven Summits", "Kilimanjaro")

		_, err := f.progress.ToggleItem(ctx, userID, items[0].ID)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodePreconditionFailed))
		assert.Zero(t, f.countFeed(t, userID, feed.KindVisitedPlace))
	})

	t.Run("unknown item is not found", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.progress.ToggleItem(ctx, id.NewUserID(), id.NewItemID())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("last item completes the objective and untoggling uncompletes", func(t *testing.T) {
		f := newFixture(t)
		userID := id.NewUserID()
		objective, items := f.seedObjective(t, "Seven Summits", "Kilimanjaro", "Denali", "Elbrus")
		require.NoError(t, f.membership.AddObjective(ctx, userID, objective.ID))

		for _, item := range items {
			_, err := f.progress.ToggleItem(ctx, userID, item.ID)
			require.NoError(t, err)
		}
		assert.Equal(t, 1, f.countFeed(t, userID, feed.KindCompletedObjective))

		_, err := f.progress.ToggleItem(ctx, userID, items[1].ID)
		require.NoError(t, err)
		assert.Zero(t, f.countFeed(t, userID, feed.KindCompletedObjective))
	})
}

func TestService_MarkAll(t *testing.T) {
	ctx := context.Background()

	t.Run("marks everything and writes one completion entry", func(t *testing.T) {
		f := newFixture(t)
		userID := id.NewUserID()
		objective, items := f.seedObjective(t, "Seven Summits", "Kilimanjaro", "Denali", "Elbrus")
		require.NoError(t, f.membership.AddObjective(ctx, userID, objective.ID))

		require.NoError(t, f.progress.MarkAll(ctx, userID, objective.ID))

		snap, err := f.progress.Snapshot(ctx, userID, objective.ID)
		require.NoError(t, err)
		assert.Equal(t, len(items), snap.Completed)
		assert.InDelta(t, 100, snap.Percent, 0.001)
		assert.Equal(t, len(items), f.countFeed(t, userID, feed.KindVisitedPlace))
		assert.Equal(t, 1, f.countFeed(t, userID, feed.KindCompletedObjective))
	})

	t.Run("is idempotent", func(t *testing.T) {
		f := newFixture(t)
		userID := id.NewUserID()
		objective, items := f.seedObjective(t, "Seven Summits", "Kilimanjaro", "Denali")
		require.NoError(t, f.membership.AddObjective(ctx, userID, objective.ID))

		require.NoError(t, f.progress.MarkAll(ctx, userID, objective.ID))
		require.NoError(t, f.progress.MarkAll(ctx, userID, objective.ID))

		assert.Equal(t, len(items), f.countFeed(t, userID, feed.KindVisitedPlace))
		assert.Equal(t, 1, f.countFeed(t, userID, feed.KindCompletedObjective))
	})

	t.Run("skips already visited items", func(t *testing.T) {
		f := newFixture(t)
		userID := id.NewUserID()
		objective, items := f.seedObjective(t, "Seven Summits", "Kilimanjaro", "Denali")
		require.NoError(t, f.membership.AddObjective(ctx, userID, objective.ID))

		_, err := f.progress.ToggleItem(ctx, userID, items[0].ID)
		require.NoError(t, err)
		require.NoError(t, f.progress.MarkAll(ctx, userID, objective.ID))

		assert.Equal(t, len(items), f.countFeed(t, userID, feed.KindVisitedPlace))
	})

	t.Run("requires membership", func(t *testing.T) {
		f := newFixture(t)
		objective, _ := f.seedObjective(t, "Seven Summits", "Kilimanjaro")

		err := f.progress.MarkAll(ctx, id.NewUserID(), objective.ID)
		assert.True(t, dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})
}

func TestService_UnmarkAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := id.NewUserID()
	objective, _ := f.seedObjective(t, "Seven Summits", "Kilimanjaro", "Denali", "Elbrus")
	require.NoError(t, f.membership.AddObjective(ctx, userID, objective.ID))
	require.NoError(t, f.progress.MarkAll(ctx, userID, objective.ID))

	require.NoError(t, f.progress.UnmarkAll(ctx, userID, objective.ID))

	snap, err := f.progress.Snapshot(ctx, userID, objective.ID)
	require.NoError(t, err)
	assert.Zero(t, snap.Completed)
	assert.Zero(t, snap.Percent)
	assert.Zero(t, f.countFeed(t, userID, feed.KindVisitedPlace))
	assert.Zero(t, f.countFeed(t, userID, feed.KindCompletedObjective))

	held, err := f.membership.HasObjective(ctx, userID, objective.ID)
	require.NoError(t, err)
	assert.True(t, held, "membership survives a bulk unmark")
}

func TestService_Snapshot_KeepsCatalogOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := id.NewUserID()
	objective, items := f.seedObjective(t, "Seven Summits", "Kilimanjaro", "Denali", "Elbrus")
	require.NoError(t, f.membership.AddObjective(ctx, userID, objective.ID))

	// Visit out of order; the snapshot lists by catalog position.
	_, err := f.progress.ToggleItem(ctx, userID, items[2].ID)
	require.NoError(t, err)
	_, err = f.progress.ToggleItem(ctx, userID, items[0].ID)
	require.NoError(t, err)

	snap, err := f.progress.Snapshot(ctx, userID, objective.ID)
	require.NoError(t, err)
	require.Equal(t, []id.ItemID{items[0].ID, items[2].ID}, snap.VisitedItemIDs)
	assert.InDelta(t, 200.0/3, snap.Percent, 0.01)
}

func TestService_VisitedPlaces(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := id.NewUserID()

	objective := catalog.Objective{ID: id.NewObjectiveID(), Title: "Seven Summits"}
	items := []catalog.Item{
		{ID: id.NewItemID(), ObjectiveID: objective.ID, Name: "Kilimanjaro", Latitude: -3.0674, Longitude: 37.3556},
		{ID: id.NewItemID(), ObjectiveID: objective.ID, Name: "Denali", Latitude: 63.0692, Longitude: -151.0070},
	}
	f.catalog.SeedObjective(objective, items)
	require.NoError(t, f.membership.AddObjective(ctx, userID, objective.ID))

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, item := range items {
		tctx := requestcontext.WithTime(ctx, base.Add(time.Duration(i)*time.Hour))
		_, err := f.progress.ToggleItem(tctx, userID, item.ID)
		require.NoError(t, err)
	}

	places, err := f.progress.VisitedPlaces(ctx, userID)
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "Kilimanjaro", places[0].Name)
	assert.InDelta(t, -3.0674, places[0].Latitude, 0.0001)
	assert.Equal(t, "Seven Summits", places[0].ObjectiveTitle)
	assert.Equal(t, base, places[0].VisitedAt)
}
