package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderlist/internal/feed"
	id "wanderlist/pkg/domain"
	"wanderlist/pkg/requestcontext"
	"wanderlist/pkg/testutil"
)

func newFeedHarness(t *testing.T) (chi.Router, *feed.Service, id.UserID) {
	t.Helper()
	svc := feed.NewService(feed.NewInMemoryStore(), nil, nil, slog.Default())
	router := chi.NewRouter()
	NewFeedHandler(svc).Register(router)
	return router, svc, id.NewUserID()
}

func TestFeedHandler_List(t *testing.T) {
	router, svc, userID := newFeedHarness(t)

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(t.Context(), now)
	itemID := id.NewItemID()
	objectiveID := id.NewObjectiveID()
	require.NoError(t, svc.RecordVisit(ctx, userID, objectiveID, "Seven Summits", itemID, "Everest"))

	t.Run("own feed serializes optional ids", func(t *testing.T) {
		req := testutil.WithUserID(testutil.NewRequest(t, http.MethodGet, "/me/feed"), userID)
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var entries []feedEntryResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "visited_place", entries[0].Kind)
		assert.Equal(t, itemID.String(), entries[0].ItemID)
		assert.Equal(t, objectiveID.String(), entries[0].ObjectiveID)
		assert.Empty(t, entries[0].FollowID, "unset ids are omitted")
		assert.Equal(t, now, entries[0].CreatedAt)
	})

	t.Run("another user's feed by path id", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/users/"+userID.String()+"/feed")
		req = testutil.WithUserID(req, id.NewUserID())
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var entries []feedEntryResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		assert.Len(t, entries, 1)
	})

	t.Run("rejects malformed limit", func(t *testing.T) {
		req := testutil.WithUserID(testutil.NewRequest(t, http.MethodGet, "/me/feed?limit=-1"), userID)
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "invalid_input", body.Error)
	})

	t.Run("rejects malformed user id", func(t *testing.T) {
		req := testutil.WithUserID(testutil.NewRequest(t, http.MethodGet, "/users/not-a-uuid/feed"), userID)
		rr := testutil.DoRequest(router, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
