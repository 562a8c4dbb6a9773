package model

import "time"

// SessionIdentity is the authenticated caller for a single request.
// It is built from token claims by the auth middleware, carried in the
// request context, and never persisted across requests.
type SessionIdentity struct {
	UserID      int64  `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Role        Role   `json:"role"`
	CommunityID int64  `json:"community_id"`
}

// User represents a stored account. PasswordHash is a bcrypt hash and is
// never serialized.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CommunityID  int64     `json:"community_id"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token and the caller's identity
type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   int64           `json:"expires_in"`
	Identity    SessionIdentity `json:"identity"`
}
