package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ===== Place Errors =====
var (
	ErrPlaceNotFound     = errors.New("place not found")
	ErrPlaceNameRequired = errors.New("place name is required")
	ErrPlaceNameTooLong  = errors.New("place name exceeds maximum length")
	ErrTooManyMediaURLs  = errors.New("too many media urls")
	ErrInvalidRadius     = errors.New("radius must be positive")
)

// ===== Story Errors =====
var (
	ErrStoryNotFound          = errors.New("story not found")
	ErrStoryTitleRequired     = errors.New("story title is required")
	ErrStoryTitleTooLong      = errors.New("story title exceeds maximum length")
	ErrInvalidPermissionLevel = errors.New("invalid story permission level")
)

// ===== Speaker Errors =====
var (
	ErrSpeakerNotFound     = errors.New("speaker not found")
	ErrSpeakerNameRequired = errors.New("speaker name is required")
	ErrSpeakerNameTooLong  = errors.New("speaker name exceeds maximum length")
)
