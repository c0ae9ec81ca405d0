package httptransport

import (
	"context"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"wanderlist/internal/catalog"
	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
)

// CatalogService defines the catalog reads the handler needs.
type CatalogService interface {
	GetObjective(ctx context.Context, objectiveID id.ObjectiveID) (catalog.Objective, error)
	ListObjectives(ctx context.Context, filter catalog.Filter) ([]catalog.Objective, error)
	ListItems(ctx context.Context, objectiveID id.ObjectiveID) ([]catalog.Item, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
}

type CatalogHandler struct {
	catalog CatalogService
}

func NewCatalogHandler(catalogSvc CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalogSvc}
}

func (h *CatalogHandler) Register(r chi.Router) {
	r.Get("/objectives", h.handleListObjectives)
	r.Get("/objectives/{objectiveID}", h.handleGetObjective)
	r.Get("/objectives/{objectiveID}/items", h.handleListItems)
	r.Get("/categories", h.handleListCategories)
}

type objectiveResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	TotalItems  int    `json:"total_items"`
	CategoryID  string `json:"category_id,omitempty"`
}

type itemResponse struct {
	ID          string  `json:"id"`
	ObjectiveID string  `json:"objective_id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	OrderIndex  int     `json:"order_index"`
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon,omitempty"`
}

func (h *CatalogHandler) handleListObjectives(w http.ResponseWriter, r *http.Request) {
	filter := catalog.Filter{Search: r.URL.Query().Get("search")}
	if !govalidator.StringLength(filter.Search, "0", "100") {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "search query too long"))
		return
	}
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		categoryID, err := id.ParseCategoryID(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		filter.CategoryID = categoryID
	}

	objectives, err := h.catalog.ListObjectives(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]objectiveResponse, 0, len(objectives))
	for _, o := range objectives {
		out = append(out, toObjectiveResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) handleGetObjective(w http.ResponseWriter, r *http.Request) {
	objectiveID, err := id.ParseObjectiveID(chi.URLParam(r, "objectiveID"))
	if err != nil {
		writeError(w, err)
		return
	}

	objective, err := h.catalog.GetObjective(r.Context(), objectiveID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toObjectiveResponse(objective))
}

func (h *CatalogHandler) handleListItems(w http.ResponseWriter, r *http.Request) {
	objectiveID, err := id.ParseObjectiveID(chi.URLParam(r, "objectiveID"))
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.catalog.GetObjective(r.Context(), objectiveID); err != nil {
		writeError(w, err)
		return
	}
	items, err := h.catalog.ListItems(r.Context(), objectiveID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemResponse{
			ID:          item.ID.String(),
			ObjectiveID: item.ObjectiveID.String(),
			Name:        item.Name,
			Latitude:    item.Latitude,
			Longitude:   item.Longitude,
			OrderIndex:  item.OrderIndex,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{
			ID:   c.ID.String(),
			Name: c.Name,
			Slug: c.Slug,
			Icon: c.Icon,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func toObjectiveResponse(o catalog.Objective) objectiveResponse {
	resp := objectiveResponse{
		ID:          o.ID.String(),
		Title:       o.Title,
		Description: o.Description,
		ImageURL:    o.ImageURL,
		TotalItems:  o.TotalItems,
	}
	if !o.CategoryID.IsNil() {
		resp.CategoryID = o.CategoryID.String()
	}
	return resp
}
