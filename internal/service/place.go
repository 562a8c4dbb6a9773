package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/longhouse/storymap/api/internal/geo"
	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/repository"
	"github.com/longhouse/storymap/api/internal/spatial"
)

// PlaceService handles place business logic
type PlaceService struct {
	places *repository.PlaceRepository
	logger *slog.Logger
}

// NewPlaceService creates a new place service
func NewPlaceService(places *repository.PlaceRepository, logger *slog.Logger) *PlaceService {
	return &PlaceService{places: places, logger: logger}
}

// Create validates and stores a new place for the community.
// Coordinates are checked before any storage access.
func (s *PlaceService) Create(ctx context.Context, communityID int64, req *model.CreatePlaceRequest) (*model.Place, error) {
	if err := validatePlaceName(req.Name); err != nil {
		return nil, err
	}
	if len(req.MediaURLs) > model.MaxMediaURLs {
		return nil, ErrTooManyMediaURLs
	}
	if !geo.ValidateCoordinates(req.Latitude, req.Longitude) {
		return nil, spatial.ErrInvalidCoordinates
	}

	place := &model.Place{
		Name:                 strings.TrimSpace(req.Name),
		Description:          req.Description,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		Region:               req.Region,
		MediaURLs:            req.MediaURLs,
		CulturalSignificance: req.CulturalSignificance,
		IsRestricted:         req.IsRestricted,
		CommunityID:          communityID,
	}

	if err := s.places.Create(ctx, place); err != nil {
		return nil, err
	}

	s.logger.Info("place created",
		"place_id", place.ID,
		"community_id", communityID,
		"restricted", place.IsRestricted)

	return place, nil
}

// Get retrieves a place within the community.
func (s *PlaceService) Get(ctx context.Context, id, communityID int64) (*model.Place, error) {
	place, err := s.places.GetByIDForCommunity(ctx, id, communityID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}
	return place, nil
}

// Update applies a partial update to a place within the community.
// A coordinate change is validated the same way creation is.
func (s *PlaceService) Update(ctx context.Context, id, communityID int64, req *model.UpdatePlaceRequest) (*model.Place, error) {
	place, err := s.places.GetByIDForCommunity(ctx, id, communityID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}

	if req.Name != nil {
		if err := validatePlaceName(*req.Name); err != nil {
			return nil, err
		}
		place.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		place.Description = req.Description
	}
	if req.Latitude != nil {
		place.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		place.Longitude = *req.Longitude
	}
	if req.Latitude != nil || req.Longitude != nil {
		if !geo.ValidateCoordinates(place.Latitude, place.Longitude) {
			return nil, spatial.ErrInvalidCoordinates
		}
	}
	if req.Region != nil {
		place.Region = req.Region
	}
	if req.MediaURLs != nil {
		if len(req.MediaURLs) > model.MaxMediaURLs {
			return nil, ErrTooManyMediaURLs
		}
		place.MediaURLs = req.MediaURLs
	}
	if req.CulturalSignificance != nil {
		place.CulturalSignificance = req.CulturalSignificance
	}
	if req.IsRestricted != nil {
		place.IsRestricted = *req.IsRestricted
	}

	ok, err := s.places.Update(ctx, place)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPlaceNotFound
	}

	return place, nil
}

// Delete removes a place within the community.
func (s *PlaceService) Delete(ctx context.Context, id, communityID int64) error {
	ok, err := s.places.Delete(ctx, id, communityID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPlaceNotFound
	}

	s.logger.Info("place deleted", "place_id", id, "community_id", communityID)
	return nil
}

// List returns a page of the community's places.
func (s *PlaceService) List(ctx context.Context, communityID int64, page, limit int, includeRestricted bool) (*model.Paginated[model.Place], error) {
	return s.places.ListByCommunity(ctx, communityID, page, limit, includeRestricted)
}

// SearchNear finds the community's places within radiusKm of a point.
// The engine rejects out-of-range coordinates; a non-positive radius is
// rejected here.
func (s *PlaceService) SearchNear(ctx context.Context, q spatial.NearQuery) (*model.Paginated[model.PlaceWithDistance], error) {
	if q.RadiusKm <= 0 {
		return nil, ErrInvalidRadius
	}
	return s.places.SearchNear(ctx, q)
}

// SearchInBounds finds the community's places inside a bounding box.
func (s *PlaceService) SearchInBounds(ctx context.Context, q spatial.BoundsQuery) (*model.Paginated[model.Place], error) {
	return s.places.SearchInBounds(ctx, q)
}

func validatePlaceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrPlaceNameRequired
	}
	if len(name) > model.MaxPlaceNameLength {
		return ErrPlaceNameTooLong
	}
	return nil
}
