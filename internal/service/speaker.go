package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/repository"
)

// SpeakerService handles speaker business logic
type SpeakerService struct {
	speakers *repository.SpeakerRepository
	logger   *slog.Logger
}

// NewSpeakerService creates a new speaker service
func NewSpeakerService(speakers *repository.SpeakerRepository, logger *slog.Logger) *SpeakerService {
	return &SpeakerService{speakers: speakers, logger: logger}
}

// Create validates and stores a new speaker for the community.
func (s *SpeakerService) Create(ctx context.Context, communityID int64, req *model.CreateSpeakerRequest) (*model.Speaker, error) {
	if err := validateSpeakerName(req.Name); err != nil {
		return nil, err
	}

	speaker := &model.Speaker{
		Name:        strings.TrimSpace(req.Name),
		Bio:         req.Bio,
		PhotoURL:    req.PhotoURL,
		ElderStatus: req.ElderStatus,
		BirthYear:   req.BirthYear,
		CommunityID: communityID,
	}

	if err := s.speakers.Create(ctx, speaker); err != nil {
		return nil, err
	}

	s.logger.Info("speaker created",
		"speaker_id", speaker.ID,
		"community_id", communityID,
		"elder_status", speaker.ElderStatus)

	return speaker, nil
}

// Get retrieves a speaker within the community.
func (s *SpeakerService) Get(ctx context.Context, id, communityID int64) (*model.Speaker, error) {
	speaker, err := s.speakers.GetByIDForCommunity(ctx, id, communityID)
	if err != nil {
		return nil, err
	}
	if speaker == nil {
		return nil, ErrSpeakerNotFound
	}
	return speaker, nil
}

// Update applies a partial update to a speaker within the community.
func (s *SpeakerService) Update(ctx context.Context, id, communityID int64, req *model.UpdateSpeakerRequest) (*model.Speaker, error) {
	speaker, err := s.speakers.GetByIDForCommunity(ctx, id, communityID)
	if err != nil {
		return nil, err
	}
	if speaker == nil {
		return nil, ErrSpeakerNotFound
	}

	if req.Name != nil {
		if err := validateSpeakerName(*req.Name); err != nil {
			return nil, err
		}
		speaker.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		speaker.Bio = req.Bio
	}
	if req.PhotoURL != nil {
		speaker.PhotoURL = req.PhotoURL
	}
	if req.ElderStatus != nil {
		speaker.ElderStatus = *req.ElderStatus
	}
	if req.BirthYear != nil {
		speaker.BirthYear = req.BirthYear
	}

	ok, err := s.speakers.Update(ctx, speaker)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSpeakerNotFound
	}

	return speaker, nil
}

// Delete removes a speaker within the community.
func (s *SpeakerService) Delete(ctx context.Context, id, communityID int64) error {
	ok, err := s.speakers.Delete(ctx, id, communityID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSpeakerNotFound
	}

	s.logger.Info("speaker deleted", "speaker_id", id, "community_id", communityID)
	return nil
}

// List returns a page of the community's speakers.
func (s *SpeakerService) List(ctx context.Context, communityID int64, page, limit int) (*model.Paginated[model.Speaker], error) {
	return s.speakers.ListByCommunity(ctx, communityID, page, limit)
}

func validateSpeakerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrSpeakerNameRequired
	}
	if len(name) > model.MaxSpeakerNameLength {
		return ErrSpeakerNameTooLong
	}
	return nil
}
