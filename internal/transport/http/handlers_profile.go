package httptransport

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"wanderlist/internal/profile"
	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
	"wanderlist/pkg/requestcontext"
)

const maxAvatarBytes = 5 << 20

// ProfileService defines the profile operations the handler needs.
type ProfileService interface {
	Get(ctx context.Context, userID id.UserID) (profile.Profile, error)
	Update(ctx context.Context, userID id.UserID, update profile.Update) (profile.Profile, error)
	Search(ctx context.Context, query string, limit int) ([]profile.Profile, error)
	UploadAvatar(ctx context.Context, userID id.UserID, contentType string, body io.Reader) (profile.Profile, error)
}

type ProfileHandler struct {
	profiles ProfileService
}

func NewProfileHandler(profiles ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Register(r chi.Router) {
	r.Get("/me/profile", h.handleGetMe)
	r.Patch("/me/profile", h.handleUpdate)
	r.Get("/users/{userID}/profile", h.handleGetUser)
	r.Get("/profiles/search", h.handleSearch)
}

// RegisterAvatar wires the avatar upload on its own route group because the
// body is an image, not JSON.
func (h *ProfileHandler) RegisterAvatar(r chi.Router) {
	r.Put("/me/profile/avatar", h.handleUploadAvatar)
}

type updateProfileRequest struct {
	Username *string `json:"username"`
	FullName *string `json:"full_name"`
	Bio      *string `json:"bio"`
	City     *string `json:"city"`
}

type profileResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	City      string    `json:"city,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *ProfileHandler) handleGetMe(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, requestcontext.UserID(r.Context()))
}

func (h *ProfileHandler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.get(w, r, userID)
}

func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request, userID id.UserID) {
	p, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

func (h *ProfileHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.FullName != nil && !govalidator.StringLength(*req.FullName, "0", "100") {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "full name too long"))
		return
	}
	if req.Bio != nil && !govalidator.StringLength(*req.Bio, "0", "500") {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "bio too long"))
		return
	}
	if req.City != nil && !govalidator.StringLength(*req.City, "0", "100") {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "city too long"))
		return
	}

	userID := requestcontext.UserID(r.Context())
	p, err := h.profiles.Update(r.Context(), userID, profile.Update{
		Username: req.Username,
		FullName: req.FullName,
		Bio:      req.Bio,
		City:     req.City,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

func (h *ProfileHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if !govalidator.StringLength(strings.TrimSpace(query), "1", "100") {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "query must be 1-100 characters"))
		return
	}

	profiles, err := h.profiles.Search(r.Context(), query, 0)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toProfileResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ProfileHandler) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "avatar must be image/jpeg, image/png, or image/webp"))
		return
	}

	userID := requestcontext.UserID(r.Context())
	body := http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	p, err := h.profiles.UploadAvatar(r.Context(), userID, contentType, body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

func toProfileResponse(p profile.Profile) profileResponse {
	return profileResponse{
		UserID:    p.UserID.String(),
		Username:  p.Username,
		FullName:  p.FullName,
		Bio:       p.Bio,
		City:      p.City,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
	}
}
