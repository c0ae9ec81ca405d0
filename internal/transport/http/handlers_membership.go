package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"wanderlist/internal/membership"
	id "wanderlist/pkg/domain"
	"wanderlist/pkg/requestcontext"
)

// MembershipService defines the list-membership operations the handler needs.
type MembershipService interface {
	AddObjective(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error
	RemoveObjective(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error
	Dashboard(ctx context.Context, userID id.UserID) ([]membership.DashboardEntry, error)
}

type MembershipHandler struct {
	membership MembershipService
}

func NewMembershipHandler(membershipSvc MembershipService) *MembershipHandler {
	return &MembershipHandler{membership: membershipSvc}
}

func (h *MembershipHandler) Register(r chi.Router) {
	r.Get("/me/objectives", h.handleDashboard)
	r.Post("/me/objectives", h.handleAdd)
	r.Delete("/me/objectives/{objectiveID}", h.handleRemove)
}

type addObjectiveRequest struct {
	ObjectiveID string `json:"objective_id"`
}

type dashboardEntryResponse struct {
	ObjectiveID string    `json:"objective_id"`
	Title       string    `json:"title"`
	ImageURL    string    `json:"image_url,omitempty"`
	Total       int       `json:"total"`
	Completed   int       `json:"completed"`
	Percent     float64   `json:"percent"`
	AddedAt     time.Time `json:"added_at"`
}

func (h *MembershipHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addObjectiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	objectiveID, err := id.ParseObjectiveID(req.ObjectiveID)
	if err != nil {
		writeError(w, err)
		return
	}

	userID := requestcontext.UserID(r.Context())
	if err := h.membership.AddObjective(r.Context(), userID, objectiveID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"objective_id": objectiveID.String()})
}

func (h *MembershipHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	objectiveID, err := id.ParseObjectiveID(chi.URLParam(r, "objectiveID"))
	if err != nil {
		writeError(w, err)
		return
	}

	userID := requestcontext.UserID(r.Context())
	if err := h.membership.RemoveObjective(r.Context(), userID, objectiveID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *MembershipHandler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID := requestcontext.UserID(r.Context())
	entries, err := h.membership.Dashboard(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]dashboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dashboardEntryResponse{
			ObjectiveID: e.ObjectiveID.String(),
			Title:       e.Title,
			ImageURL:    e.ImageURL,
			Total:       e.Total,
			Completed:   e.Completed,
			Percent:     e.Percent,
			AddedAt:     e.AddedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
