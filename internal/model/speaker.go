package model

import "time"

// Speaker represents a storyteller belonging to a community.
type Speaker struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Bio         *string   `json:"bio,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	ElderStatus bool      `json:"elder_status"`
	BirthYear   *int      `json:"birth_year,omitempty"`
	CommunityID int64     `json:"community_id"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// CreateSpeakerRequest represents a request to create a speaker
type CreateSpeakerRequest struct {
	Name        string  `json:"name"`
	Bio         *string `json:"bio,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	ElderStatus bool    `json:"elder_status"`
	BirthYear   *int    `json:"birth_year,omitempty"`
}

// UpdateSpeakerRequest represents a partial update to a speaker
type UpdateSpeakerRequest struct {
	Name        *string `json:"name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	ElderStatus *bool   `json:"elder_status,omitempty"`
	BirthYear   *int    `json:"birth_year,omitempty"`
}

const MaxSpeakerNameLength = 200
