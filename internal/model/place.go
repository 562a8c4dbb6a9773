package model

import "time"

// Place represents a geolocated site owned by a community.
// Coordinates are validated on create and update, never assumed valid on read.
type Place struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Description          *string   `json:"description,omitempty"`
	Latitude             float64   `json:"latitude"`
	Longitude            float64   `json:"longitude"`
	Region               *string   `json:"region,omitempty"`
	MediaURLs            []string  `json:"media_urls"`
	CulturalSignificance *string   `json:"cultural_significance,omitempty"`
	IsRestricted         bool      `json:"is_restricted"`
	CommunityID          int64     `json:"community_id"`
	CreatedOn            time.Time `json:"created_on"`
	UpdatedOn            time.Time `json:"updated_on"`
}

// PlaceWithDistance pairs a place with its distance from a search origin,
// in kilometers. Returned by radius searches, ordered ascending.
type PlaceWithDistance struct {
	Place
	DistanceKm float64 `json:"distance_km"`
}

// Business constraints
const (
	MaxPlaceNameLength = 200
	MaxMediaURLs       = 20
)

// CreatePlaceRequest represents a request to create a place
type CreatePlaceRequest struct {
	Name                 string   `json:"name"`
	Description          *string  `json:"description,omitempty"`
	Latitude             float64  `json:"latitude"`
	Longitude            float64  `json:"longitude"`
	Region               *string  `json:"region,omitempty"`
	MediaURLs            []string `json:"media_urls,omitempty"`
	CulturalSignificance *string  `json:"cultural_significance,omitempty"`
	IsRestricted         bool     `json:"is_restricted"`
}

// UpdatePlaceRequest represents a partial update to a place.
// CommunityID is immutable after creation and deliberately absent here.
type UpdatePlaceRequest struct {
	Name                 *string  `json:"name,omitempty"`
	Description          *string  `json:"description,omitempty"`
	Latitude             *float64 `json:"latitude,omitempty"`
	Longitude            *float64 `json:"longitude,omitempty"`
	Region               *string  `json:"region,omitempty"`
	MediaURLs            []string `json:"media_urls,omitempty"`
	CulturalSignificance *string  `json:"cultural_significance,omitempty"`
	IsRestricted         *bool    `json:"is_restricted,omitempty"`
}
