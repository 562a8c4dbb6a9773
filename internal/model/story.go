package model

import "time"

// StoryPermissionLevel controls who may view a story within its community.
type StoryPermissionLevel string

const (
	StoryPermissionAnonymous  StoryPermissionLevel = "anonymous"
	StoryPermissionMembers    StoryPermissionLevel = "members"
	StoryPermissionRestricted StoryPermissionLevel = "restricted"
)

// IsValid returns true if the permission level is recognized
func (p StoryPermissionLevel) IsValid() bool {
	switch p {
	case StoryPermissionAnonymous, StoryPermissionMembers, StoryPermissionRestricted:
		return true
	default:
		return false
	}
}

// Story represents an oral history or narrative owned by a community,
// optionally tied to places and speakers.
type Story struct {
	ID              int64                `json:"id"`
	Title           string               `json:"title"`
	Description     *string              `json:"description,omitempty"`
	Language        *string              `json:"language,omitempty"`
	MediaURLs       []string             `json:"media_urls"`
	IsRestricted    bool                 `json:"is_restricted"`
	PermissionLevel StoryPermissionLevel `json:"permission_level"`
	CommunityID     int64                `json:"community_id"`
	CreatedOn       time.Time            `json:"created_on"`
	UpdatedOn       time.Time            `json:"updated_on"`
}

// CreateStoryRequest represents a request to create a story
type CreateStoryRequest struct {
	Title           string               `json:"title"`
	Description     *string              `json:"description,omitempty"`
	Language        *string              `json:"language,omitempty"`
	MediaURLs       []string             `json:"media_urls,omitempty"`
	IsRestricted    bool                 `json:"is_restricted"`
	PermissionLevel StoryPermissionLevel `json:"permission_level,omitempty"`
}

// UpdateStoryRequest represents a partial update to a story
type UpdateStoryRequest struct {
	Title           *string               `json:"title,omitempty"`
	Description     *string               `json:"description,omitempty"`
	Language        *string               `json:"language,omitempty"`
	MediaURLs       []string              `json:"media_urls,omitempty"`
	IsRestricted    *bool                 `json:"is_restricted,omitempty"`
	PermissionLevel *StoryPermissionLevel `json:"permission_level,omitempty"`
}

const MaxStoryTitleLength = 200
