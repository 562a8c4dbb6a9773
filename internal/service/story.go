package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/repository"
)

// StoryService handles story business logic
type StoryService struct {
	stories *repository.StoryRepository
	logger  *slog.Logger
}

// NewStoryService creates a new story service
func NewStoryService(stories *repository.StoryRepository, logger *slog.Logger) *StoryService {
	return &StoryService{stories: stories, logger: logger}
}

// Create validates and stores a new story for the community.
// An unset permission level defaults to members-only visibility.
func (s *StoryService) Create(ctx context.Context, communityID int64, req *model.CreateStoryRequest) (*model.Story, error) {
	if err := validateStoryTitle(req.Title); err != nil {
		return nil, err
	}
	if len(req.MediaURLs) > model.MaxMediaURLs {
		return nil, ErrTooManyMediaURLs
	}
	if req.PermissionLevel != "" && !req.PermissionLevel.IsValid() {
		return nil, ErrInvalidPermissionLevel
	}

	story := &model.Story{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Language:        req.Language,
		MediaURLs:       req.MediaURLs,
		IsRestricted:    req.IsRestricted,
		PermissionLevel: req.PermissionLevel,
		CommunityID:     communityID,
	}

	if err := s.stories.Create(ctx, story); err != nil {
		return nil, err
	}

	s.logger.Info("story created",
		"story_id", story.ID,
		"community_id", communityID,
		"permission_level", story.PermissionLevel)

	return story, nil
}

// Get retrieves a story within the community.
func (s *StoryService) Get(ctx context.Context, id, communityID int64) (*model.Story, error) {
	story, err := s.stories.GetByIDForCommunity(ctx, id, communityID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, ErrStoryNotFound
	}
	return story, nil
}

// Update applies a partial update to a story within the community.
func (s *StoryService) Update(ctx context.Context, id, communityID int64, req *model.UpdateStoryRequest) (*model.Story, error) {
	story, err := s.stories.GetByIDForCommunity(ctx, id, communityID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, ErrStoryNotFound
	}

	if req.Title != nil {
		if err := validateStoryTitle(*req.Title); err != nil {
			return nil, err
		}
		story.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		story.Description = req.Description
	}
	if req.Language != nil {
		story.Language = req.Language
	}
	if req.MediaURLs != nil {
		if len(req.MediaURLs) > model.MaxMediaURLs {
			return nil, ErrTooManyMediaURLs
		}
		story.MediaURLs = req.MediaURLs
	}
	if req.IsRestricted != nil {
		story.IsRestricted = *req.IsRestricted
	}
	if req.PermissionLevel != nil {
		if !req.PermissionLevel.IsValid() {
			return nil, ErrInvalidPermissionLevel
		}
		story.PermissionLevel = *req.PermissionLevel
	}

	ok, err := s.stories.Update(ctx, story)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStoryNotFound
	}

	return story, nil
}

// Delete removes a story within the community.
func (s *StoryService) Delete(ctx context.Context, id, communityID int64) error {
	ok, err := s.stories.Delete(ctx, id, communityID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrStoryNotFound
	}

	s.logger.Info("story deleted", "story_id", id, "community_id", communityID)
	return nil
}

// List returns a page of the community's stories.
func (s *StoryService) List(ctx context.Context, communityID int64, page, limit int, includeRestricted bool) (*model.Paginated[model.Story], error) {
	return s.stories.ListByCommunity(ctx, communityID, page, limit, includeRestricted)
}

func validateStoryTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrStoryTitleRequired
	}
	if len(title) > model.MaxStoryTitleLength {
		return ErrStoryTitleTooLong
	}
	return nil
}
