package handler

import (
	"net/http"

	"github.com/longhouse/storymap/api/internal/middleware"
	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/service"
)

// SpeakerHandler handles speaker HTTP requests
type SpeakerHandler struct {
	svc *service.SpeakerService
}

// NewSpeakerHandler creates a new speaker handler
func NewSpeakerHandler(svc *service.SpeakerService) *SpeakerHandler {
	return &SpeakerHandler{svc: svc}
}

// Create handles POST /v1/communities/{communityId}/speakers
func (h *SpeakerHandler) Create(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())

	var req model.CreateSpeakerRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	speaker, err := h.svc.Create(r.Context(), communityID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, speaker)
}

// Get handles GET /v1/communities/{communityId}/speakers/{speakerId}
func (h *SpeakerHandler) Get(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())

	speakerID, ok := parseID(r, "speakerId")
	if !ok {
		WriteError(w, model.NewBadRequestError("invalid speaker ID"))
		return
	}

	speaker, err := h.svc.Get(r.Context(), speakerID, communityID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, speaker)
}

// List handles GET /v1/communities/{communityId}/speakers
func (h *SpeakerHandler) List(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())
	page, limit := parsePage(r)

	result, err := h.svc.List(r.Context(), communityID, page, limit)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result)
}

// Update handles PATCH /v1/communities/{communityId}/speakers/{speakerId}
func (h *SpeakerHandler) Update(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())

	speakerID, ok := parseID(r, "speakerId")
	if !ok {
		WriteError(w, model.NewBadRequestError("invalid speaker ID"))
		return
	}

	var req model.UpdateSpeakerRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	speaker, err := h.svc.Update(r.Context(), speakerID, communityID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, speaker)
}

// Delete handles DELETE /v1/communities/{communityId}/speakers/{speakerId}
func (h *SpeakerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	communityID := middleware.GetCommunityID(r.Context())

	speakerID, ok := parseID(r, "speakerId")
	if !ok {
		WriteError(w, model.NewBadRequestError("invalid speaker ID"))
		return
	}

	if err := h.svc.Delete(r.Context(), speakerID, communityID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
