package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"wanderlist/internal/progress"
	id "wanderlist/pkg/domain"
	"wanderlist/pkg/requestcontext"
)

// ProgressService defines the progress operations the handler needs.
type ProgressService interface {
	ToggleItem(ctx context.Context, userID id.UserID, itemID id.ItemID) (bool, error)
	MarkAll(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error
	UnmarkAll(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) error
	Snapshot(ctx context.Context, userID id.UserID, objectiveID id.ObjectiveID) (progress.Snapshot, error)
	VisitedPlaces(ctx context.Context, userID id.UserID) ([]progress.VisitedPlace, error)
}

type ProgressHandler struct {
	progress ProgressService
}

func NewProgressHandler(progressSvc ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progressSvc}
}

func (h *ProgressHandler) Register(r chi.Router) {
	r.Post("/me/items/{itemID}/toggle", h.handleToggle)
	r.Post("/me/objectives/{objectiveID}/mark-all", h.handleMarkAll)
	r.Post("/me/objectives/{objectiveID}/unmark-all", h.handleUnmarkAll)
	r.Get("/me/objectives/{objectiveID}/progress", h.handleSnapshot)
	r.Get("/me/places", h.handleVisitedPlaces)
}

type toggleResponse struct {
	ItemID  string `json:"item_id"`
	Visited bool   `json:"visited"`
}

type snapshotResponse struct {
	ObjectiveID    string   `json:"objective_id"`
	Total          int      `json:"total"`
	Completed      int      `json:"completed"`
	Percent        float64  `json:"percent"`
	VisitedItemIDs []string `json:"visited_item_ids"`
}

type visitedPlaceResponse struct {
	ItemID         string    `json:"item_id"`
	Name           string    `json:"name"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	ObjectiveID    string    `json:"objective_id"`
	ObjectiveTitle string    `json:"objective_title"`
	VisitedAt      time.Time `json:"visited_at"`
}

func (h *ProgressHandler) handleToggle(w http.ResponseWriter, r *http.Request) {
	itemID, err := id.ParseItemID(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, err)
		return
	}

	userID := requestcontext.UserID(r.Context())
	visited, err := h.progress.ToggleItem(r.Context(), userID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{ItemID: itemID.String(), Visited: visited})
}

func (h *ProgressHandler) handleMarkAll(w http.ResponseWriter, r *http.Request) {
	h.handleBulk(w, r, h.progress.MarkAll)
}

func (h *ProgressHandler) handleUnmarkAll(w http.ResponseWriter, r *http.Request) {
	h.handleBulk(w, r, h.progress.UnmarkAll)
}

func (h *ProgressHandler) handleBulk(w http.ResponseWriter, r *http.Request, op func(context.Context, id.UserID, id.ObjectiveID) error) {
	objectiveID, err := id.ParseObjectiveID(chi.URLParam(r, "objectiveID"))
	if err != nil {
		writeError(w, err)
		return
	}

	userID := requestcontext.UserID(r.Context())
	if err := op(r.Context(), userID, objectiveID); err != nil {
		writeError(w, err)
		return
	}

	snap, err := h.progress.Snapshot(r.Context(), userID, objectiveID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotResponse(snap))
}

func (h *ProgressHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	objectiveID, err := id.ParseObjectiveID(chi.URLParam(r, "objectiveID"))
	if err != nil {
		writeError(w, err)
		return
	}

	userID := requestcontext.UserID(r.Context())
	snap, err := h.progress.Snapshot(r.Context(), userID, objectiveID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotResponse(snap))
}

func (h *ProgressHandler) handleVisitedPlaces(w http.ResponseWriter, r *http.Request) {
	userID := requestcontext.UserID(r.Context())
	places, err := h.progress.VisitedPlaces(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]visitedPlaceResponse, 0, len(places))
	for _, p := range places {
		out = append(out, visitedPlaceResponse{
			ItemID:         p.ItemID.String(),
			Name:           p.Name,
			Latitude:       p.Latitude,
			Longitude:      p.Longitude,
			ObjectiveID:    p.ObjectiveID.String(),
			ObjectiveTitle: p.ObjectiveTitle,
			VisitedAt:      p.VisitedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func toSnapshotResponse(snap progress.Snapshot) snapshotResponse {
	resp := snapshotResponse{
		ObjectiveID:    snap.ObjectiveID.String(),
		Total:          snap.Total,
		Completed:      snap.Completed,
		Percent:        snap.Percent,
		VisitedItemIDs: make([]string, 0, len(snap.VisitedItemIDs)),
	}
	for _, itemID := range snap.VisitedItemIDs {
		resp.VisitedItemIDs = append(resp.VisitedItemIDs, itemID.String())
	}
	return resp
}
