package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/longhouse/storymap/api/internal/model"
)

// UserRepository handles account lookups for login.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, display_name, password_hash, role, community_id,
	created_on, updated_on`

// GetByEmail retrieves an account by email, case-insensitively.
// Returns (nil, nil) when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = $1`

	var u model.User
	err := r.db.QueryRowContext(ctx, query, strings.ToLower(email)).Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.Role,
		&u.CommunityID, &u.CreatedOn, &u.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
