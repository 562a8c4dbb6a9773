package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/longhouse/storymap/api/internal/model"
)

// StoryRepository handles story data access
type StoryRepository struct {
	db *sql.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *sql.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

const storyColumns = `id, title, description, language, media_urls, is_restricted,
	permission_level, community_id, created_on, updated_on`

// Create inserts a story into its owning community.
func (r *StoryRepository) Create(ctx context.Context, story *model.Story) error {
	media, err := marshalMedia(story.MediaURLs)
	if err != nil {
		return err
	}
	if story.PermissionLevel == "" {
		story.PermissionLevel = model.StoryPermissionMembers
	}

	query := `INSERT INTO stories
		(title, description, language, media_urls, is_restricted, permission_level,
		 community_id, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id, created_on, updated_on`

	return r.db.QueryRowContext(ctx, query,
		story.Title, story.Description, story.Language, media,
		story.IsRestricted, story.PermissionLevel, story.CommunityID,
	).Scan(&story.ID, &story.CreatedOn, &story.UpdatedOn)
}

// GetByIDForCommunity retrieves a story only if it belongs to the community.
func (r *StoryRepository) GetByIDForCommunity(ctx context.Context, id, communityID int64) (*model.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE id = $1 AND community_id = $2`

	s, err := scanStory(r.db.QueryRowContext(ctx, query, id, communityID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update writes a story's mutable fields within its community.
func (r *StoryRepository) Update(ctx context.Context, story *model.Story) (bool, error) {
	media, err := marshalMedia(story.MediaURLs)
	if err != nil {
		return false, err
	}

	query := `UPDATE stories SET
		title = $1, description = $2, language = $3, media_urls = $4,
		is_restricted = $5, permission_level = $6, updated_on = now()
		WHERE id = $7 AND community_id = $8`

	res, err := r.db.ExecContext(ctx, query,
		story.Title, story.Description, story.Language, media,
		story.IsRestricted, story.PermissionLevel, story.ID, story.CommunityID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes a story within its community.
func (r *StoryRepository) Delete(ctx context.Context, id, communityID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM stories WHERE id = $1 AND community_id = $2`, id, communityID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListByCommunity returns a page of the community's stories, excluding
// restricted ones unless includeRestricted is set.
func (r *StoryRepository) ListByCommunity(ctx context.Context, communityID int64, page, limit int, includeRestricted bool) (*model.Paginated[model.Story], error) {
	page, limit = model.NormalizePage(page, limit)

	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stories WHERE community_id = $1 AND ($2 OR NOT is_restricted)`,
		communityID, includeRestricted).Scan(&total)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + storyColumns + `
		FROM stories
		WHERE community_id = $1 AND ($2 OR NOT is_restricted)
		ORDER BY id
		LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, communityID, includeRestricted, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	data := []model.Story{}
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		data = append(data, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return model.NewPaginated(data, total, page, limit), nil
}

func scanStory(row interface{ Scan(...any) error }) (model.Story, error) {
	var (
		s     model.Story
		media []byte
	)
	err := row.Scan(
		&s.ID, &s.Title, &s.Description, &s.Language, &media,
		&s.IsRestricted, &s.PermissionLevel, &s.CommunityID,
		&s.CreatedOn, &s.UpdatedOn,
	)
	if err != nil {
		return model.Story{}, err
	}
	if len(media) > 0 {
		if err := json.Unmarshal(media, &s.MediaURLs); err != nil {
			return model.Story{}, fmt.Errorf("decode media_urls for story %d: %w", s.ID, err)
		}
	}
	return s, nil
}
