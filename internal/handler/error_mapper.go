package handler

import (
	"errors"

	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/service"
	"github.com/longhouse/storymap/api/internal/spatial"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrPlaceNotFound):
		return model.NewNotFoundError("place")
	case errors.Is(err, service.ErrStoryNotFound):
		return model.NewNotFoundError("story")
	case errors.Is(err, service.ErrSpeakerNotFound):
		return model.NewNotFoundError("speaker")

	// ===== Geospatial Input Errors → 400 =====
	case errors.Is(err, spatial.ErrInvalidCoordinates):
		return model.NewInvalidCoordinatesError("")
	case errors.Is(err, spatial.ErrInvalidBounds):
		return model.NewInvalidBoundsError()
	case errors.Is(err, service.ErrInvalidRadius):
		return model.NewBadRequestError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrPlaceNameRequired),
		errors.Is(err, service.ErrPlaceNameTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})
	case errors.Is(err, service.ErrStoryTitleRequired),
		errors.Is(err, service.ErrStoryTitleTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "title", Message: err.Error()}})
	case errors.Is(err, service.ErrSpeakerNameRequired),
		errors.Is(err, service.ErrSpeakerNameTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})
	case errors.Is(err, service.ErrTooManyMediaURLs):
		return model.NewValidationError([]model.FieldError{{Field: "media_urls", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidPermissionLevel):
		return model.NewValidationError([]model.FieldError{{Field: "permission_level", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
