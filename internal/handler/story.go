package handler

import (
	"net/http"

	"github.com/longhouse/storymap/api/internal/authz"
	"github.com/longhouse/storymap/api/internal/middleware"
	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/service"
)

// StoryHandler handles story HTTP requests
type StoryHandler struct {
	svc   *service.StoryService
	rules *authz.Rules
}

// NewStoryHandler creates a new story handler
func NewStoryHandler(svc *service.StoryService, rules *authz.Rules) *StoryHandler {
	return &StoryHandler{svc: svc, rules: rules}
}

// Create handles POST /v1/communities/{communityId}/stories
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())

	var req model.CreateStoryRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	story, err := h.svc.Create(r.Context(), communityID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, story)
}

// Get handles GET /v1/communities/{communityId}/stories/{storyId}
func (h *StoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())

	storyID, ok := parseID(r, "storyId")
	if !ok {
		WriteError(w, model.NewBadRequestError("invalid story ID"))
		return
	}

	story, err := h.svc.Get(r.Context(), storyID, communityID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	if story.IsRestricted && !h.culturalAccess(r) {
		WriteError(w, model.NewNotFoundError("story"))
		return
	}

	WriteData(w, http.StatusOK, story)
}

// List handles GET /v1/communities/{communityId}/stories
func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())
	page, limit := parsePage(r)

	result, err := h.svc.List(r.Context(), communityID, page, limit, h.culturalAccess(r))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result)
}

// Update handles PATCH /v1/communities/{communityId}/stories/{storyId}
func (h *StoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())

	storyID, ok := parseID(r, "storyId")
	if !ok {
		WriteError(w, model.NewBadRequestError("invalid story ID"))
		return
	}

	var req model.UpdateStoryRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	story, err := h.svc.Update(r.Context(), storyID, communityID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, story)
}

// Delete handles DELETE /v1/communities/{communityId}/stories/{storyId}
func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())

	storyID, ok := parseID(r, "storyId")
	if !ok {
		WriteError(w, model.NewBadRequestError("invalid story ID"))
		return
	}

	if err := h.svc.Delete(r.Context(), storyID, communityID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

func (h *StoryHandler) culturalAccess(r *http.Request) bool {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		return false
	}
	if h.rules.HasCulturalOverride(identity.Role) {
		return true
	}
	return h.rules.CheckPermission(identity.Role, authz.PermCulturalRead)
}
