package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"wanderlist/internal/social"
	id "wanderlist/pkg/domain"
	"wanderlist/pkg/requestcontext"
)

// SocialService defines the follow-graph operations the handler needs.
type SocialService interface {
	Follow(ctx context.Context, followerID, followedID id.UserID) error
	Unfollow(ctx context.Context, followerID, followedID id.UserID) error
	IsFollowing(ctx context.Context, followerID, followedID id.UserID) (bool, error)
	CountsFor(ctx context.Context, userID id.UserID) (social.Counts, error)
	Followers(ctx context.Context, userID id.UserID) ([]social.Follow, error)
	Following(ctx context.Context, userID id.UserID) ([]social.Follow, error)
}

type SocialHandler struct {
	social SocialService
}

func NewSocialHandler(socialSvc SocialService) *SocialHandler {
	return &SocialHandler{social: socialSvc}
}

func (h *SocialHandler) Register(r chi.Router) {
	r.Post("/users/{userID}/follow", h.handleFollow)
	r.Delete("/users/{userID}/follow", h.handleUnfollow)
	r.Get("/users/{userID}/follow", h.handleIsFollowing)
	r.Get("/users/{userID}/counts", h.handleCounts)
	r.Get("/users/{userID}/followers", h.handleFollowers)
	r.Get("/users/{userID}/following", h.handleFollowing)
}

type followResponse struct {
	ID         string    `json:"id"`
	FollowerID string    `json:"follower_id"`
	FollowedID string    `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *SocialHandler) handleFollow(w http.ResponseWriter, r *http.Request) {
	followedID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	followerID := requestcontext.UserID(r.Context())
	if err := h.social.Follow(r.Context(), followerID, followedID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *SocialHandler) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	followedID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	followerID := requestcontext.UserID(r.Context())
	if err := h.social.Unfollow(r.Context(), followerID, followedID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *SocialHandler) handleIsFollowing(w http.ResponseWriter, r *http.Request) {
	followedID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	followerID := requestcontext.UserID(r.Context())
	following, err := h.social.IsFollowing(r.Context(), followerID, followedID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"following": following})
}

func (h *SocialHandler) handleCounts(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	counts, err := h.social.CountsFor(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *SocialHandler) handleFollowers(w http.ResponseWriter, r *http.Request) {
	h.listEdges(w, r, h.social.Followers)
}

func (h *SocialHandler) handleFollowing(w http.ResponseWriter, r *http.Request) {
	h.listEdges(w, r, h.social.Following)
}

func (h *SocialHandler) listEdges(w http.ResponseWriter, r *http.Request, list func(context.Context, id.UserID) ([]social.Follow, error)) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	follows, err := list(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]followResponse, 0, len(follows))
	for _, f := range follows {
		out = append(out, followResponse{
			ID:         f.ID.String(),
			FollowerID: f.FollowerID.String(),
			FollowedID: f.FollowedID.String(),
			CreatedAt:  f.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
