//go:build integration

package feed_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"wanderlist/internal/feed"
	"wanderlist/internal/platform/config"
	"wanderlist/internal/platform/events"
	id "wanderlist/pkg/domain"
	"wanderlist/pkg/testutil/containers"
)

func collectEvents(t *testing.T, consumer *kgo.Client, want int) []events.ActivityEvent {
	t.Helper()
	var out []events.ActivityEvent
	deadline := time.Now().Add(30 * time.Second)
	for len(out) < want && time.Now().Before(deadline) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		fetches := consumer.PollFetches(ctx)
		cancel()
		for _, record := range fetches.Records() {
			var event events.ActivityEvent
			require.NoError(t, json.Unmarshal(record.Value, &event))
			out = append(out, event)
		}
	}
	require.Len(t, out, want)
	return out
}

func TestService_PublishesEntryLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	broker := containers.NewRedpandaContainer(t)

	const topic = "wanderlist.activity.feed-lifecycle"
	publisher, err := events.NewPublisher(ctx, config.Kafka{
		Brokers: []string{broker.Broker},
		Topic:   topic,
	}, slog.Default())
	require.NoError(t, err)
	defer publisher.Close()

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	svc := feed.NewService(feed.NewInMemoryStore(), publisher, nil, slog.Default())

	userID := id.NewUserID()
	objectiveID := id.NewObjectiveID()
	itemID := id.NewItemID()

	require.NoError(t, svc.RecordVisit(ctx, userID, objectiveID, "Seven Summits", itemID, "Everest"))
	require.NoError(t, svc.RemoveVisit(ctx, userID, itemID))

	got := collectEvents(t, consumer, 2)

	assert.Equal(t, events.TypeEntryCreated, got[0].Type)
	assert.Equal(t, "visited_place", got[0].Kind)
	assert.NotEmpty(t, got[0].EntryID)

	assert.Equal(t, events.TypeEntryDeleted, got[1].Type)
	assert.Equal(t, "visited_place", got[1].Kind)
	assert.Equal(t, userID.String(), got[1].UserID)
	assert.Equal(t, itemID.String(), got[1].ItemID, "deletes identify the entry by scope")
	assert.Empty(t, got[1].EntryID)

	followID := id.NewFollowID()
	require.NoError(t, svc.RecordFollower(ctx, userID, followID, "marisol"))
	require.NoError(t, svc.RemoveFollower(ctx, userID, followID))

	got = collectEvents(t, consumer, 2)
	assert.Equal(t, events.TypeEntryDeleted, got[1].Type)
	assert.Equal(t, "new_follower", got[1].Kind)
	assert.Equal(t, followID.String(), got[1].FollowID)

	require.NoError(t, svc.SyncCompletion(ctx, userID, objectiveID, "Seven Summits", true, 3, 3))
	require.NoError(t, svc.SyncCompletion(ctx, userID, objectiveID, "Seven Summits", true, 2, 3))

	got = collectEvents(t, consumer, 2)
	assert.Equal(t, events.TypeEntryDeleted, got[1].Type)
	assert.Equal(t, "completed_objective", got[1].Kind)
	assert.Equal(t, objectiveID.String(), got[1].ObjectiveID)

	require.NoError(t, svc.PurgeObjective(ctx, userID, objectiveID))
	got = collectEvents(t, consumer, 2)
	for _, event := range got {
		assert.Equal(t, events.TypeEntryDeleted, event.Type)
		assert.Equal(t, objectiveID.String(), event.ObjectiveID)
	}
	assert.ElementsMatch(t, []string{"visited_place", "completed_objective"},
		[]string{got[0].Kind, got[1].Kind})
}
