package handler

import (
	"net/http"

	"github.com/longhouse/storymap/api/internal/authz"
	"github.com/longhouse/storymap/api/internal/middleware"
	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/service"
	"github.com/longhouse/storymap/api/internal/spatial"
)

// PlaceHandler handles place HTTP requests
type PlaceHandler struct {
	svc   *service.PlaceService
	rules *authz.Rules
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(svc *service.PlaceService, rules *authz.Rules) *PlaceHandler {
	return &PlaceHandler{svc: svc, rules: rules}
}

// Create handles POST /v1/communities/{communityId}/places
func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())

	var req model.CreatePlaceRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	place, err := h.svc.Create(r.Context(), communityID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, place)
}

// Get handles GET /v1/communities/{communityId}/places/{placeId}
func (h *PlaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())

	placeID, ok := parseID(r, "placeId")
	if !ok {
		WriteError(w, model.NewBadRequestError("invalid place ID"))
		return
	}

	place, err := h.svc.Get(r.Context(), placeID, communityID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	// Restricted places are invisible outside cultural access; absence and
	// restriction produce the same 404.
	if place.IsRestricted && !h.culturalAccess(r) {
		WriteError(w, model.NewNotFoundError("place"))
		return
	}

	WriteData(w, http.StatusOK, place)
}

// List handles GET /v1/communities/{communityId}/places
func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())
	page, limit := parsePage(r)

	result, err := h.svc.List(r.Context(), communityID, page, limit, h.culturalAccess(r))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result)
}

// Update handles PATCH /v1/communities/{communityId}/places/{placeId}
func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())

	placeID, ok := parseID(r, "placeId")
	if !ok {
		WriteError(w, model.NewBadRequestError("invalid place ID"))
		return
	}

	var req model.UpdatePlaceRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	place, err := h.svc.Update(r.Context(), placeID, communityID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, place)
}

// Delete handles DELETE /v1/communities/{communityId}/places/{placeId}
func (h *PlaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())

	placeID, ok := parseID(r, "placeId")
	if !ok {
		WriteError(w, model.NewBadRequestError("invalid place ID"))
		return
	}

	if err := h.svc.Delete(r.Context(), placeID, communityID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// SearchNear handles GET /v1/communities/{communityId}/places/near
// Query parameters: lat, lng, radius (km), page, limit.
func (h *PlaceHandler) SearchNear(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())

	lat, okLat := parseFloat(r, "lat")
	lng, okLng := parseFloat(r, "lng")
	radius, okRadius := parseFloat(r, "radius")
	if !okLat || !okLng || !okRadius {
		WriteError(w, model.NewBadRequestError("lat, lng, and radius query parameters are required"))
		return
	}

	page, limit := parsePage(r)
	result, err := h.svc.SearchNear(r.Context(), spatial.NearQuery{
		CommunityID:       communityID,
		Lat:               lat,
		Lng:               lng,
		RadiusKm:          radius,
		Page:              page,
		Limit:             limit,
		IncludeRestricted: h.culturalAccess(r),
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result)
}

// SearchInBounds handles GET /v1/communities/{communityId}/places/within
// Query parameters: north, south, east, west, page, limit.
func (h *PlaceHandler) SearchInBounds(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())

	north, okN := parseFloat(r, "north")
	south, okS := parseFloat(r, "south")
	east, okE := parseFloat(r, "east")
	west, okW := parseFloat(r, "west")
	if !okN || !okS || !okE || !okW {
		WriteError(w, model.NewBadRequestError("north, south, east, and west query parameters are required"))
		return
	}

	page, limit := parsePage(r)
	result, err := h.svc.SearchInBounds(r.Context(), spatial.BoundsQuery{
		CommunityID:       communityID,
		North:             north,
		South:             south,
		East:              east,
		West:              west,
		Page:              page,
		Limit:             limit,
		IncludeRestricted: h.culturalAccess(r),
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result)
}

// culturalAccess reports whether the caller may see restricted content:
// either through the cultural override or by holding cultural:read.
func (h *PlaceHandler) culturalAccess(r *http.Request) bool {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		return false
	}
	if h.rules.HasCulturalOverride(identity.Role) {
		return true
	}
	return h.rules.CheckPermission(identity.Role, authz.PermCulturalRead)
}
