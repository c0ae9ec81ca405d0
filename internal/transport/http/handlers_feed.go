package httptransport

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"wanderlist/internal/feed"
	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
	"wanderlist/pkg/requestcontext"
)

// FeedService defines the feed reads the handler needs.
type FeedService interface {
	List(ctx context.Context, userID id.UserID, limit int) ([]feed.Entry, error)
}

type FeedHandler struct {
	feed FeedService
}

func NewFeedHandler(feedSvc FeedService) *FeedHandler {
	return &FeedHandler{feed: feedSvc}
}

func (h *FeedHandler) Register(r chi.Router) {
	r.Get("/me/feed", h.handleList)
	r.Get("/users/{userID}/feed", h.handleListForUser)
}

type feedEntryResponse struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	ObjectiveID    string    `json:"objective_id,omitempty"`
	ObjectiveTitle string    `json:"objective_title,omitempty"`
	ItemID         string    `json:"item_id,omitempty"`
	ItemName       string    `json:"item_name,omitempty"`
	FollowID       string    `json:"follow_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (h *FeedHandler) handleList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, requestcontext.UserID(r.Context()))
}

func (h *FeedHandler) handleListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.list(w, r, userID)
}

func (h *FeedHandler) list(w http.ResponseWriter, r *http.Request, userID id.UserID) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	entries, err := h.feed.List(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]feedEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := feedEntryResponse{
			ID:             e.ID.String(),
			Kind:           string(e.Kind),
			ObjectiveTitle: e.ObjectiveTitle,
			ItemName:       e.ItemName,
			CreatedAt:      e.CreatedAt,
		}
		if !e.ObjectiveID.IsNil() {
			resp.ObjectiveID = e.ObjectiveID.String()
		}
		if !e.ItemID.IsNil() {
			resp.ItemID = e.ItemID.String()
		}
		if !e.FollowID.IsNil() {
			resp.FollowID = e.FollowID.String()
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}
