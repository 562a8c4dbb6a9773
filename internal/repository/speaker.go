package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/longhouse/storymap/api/internal/model"
)

// SpeakerRepository handles speaker data access
type SpeakerRepository struct {
	db *sql.DB
}

// NewSpeakerRepository creates a new speaker repository
func NewSpeakerRepository(db *sql.DB) *SpeakerRepository {
	return &SpeakerRepository{db: db}
}

const speakerColumns = `id, name, bio, photo_url, elder_status, birth_year,
	community_id, created_on, updated_on`

// Create inserts a speaker into its owning community.
func (r *SpeakerRepository) Create(ctx context.Context, speaker *model.Speaker) error {
	query := `INSERT INTO speakers
		(name, bio, photo_url, elder_status, birth_year, community_id, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING id, created_on, updated_on`

	return r.db.QueryRowContext(ctx, query,
		speaker.Name, speaker.Bio, speaker.PhotoURL, speaker.ElderStatus,
		speaker.BirthYear, speaker.CommunityID,
	).Scan(&speaker.ID, &speaker.CreatedOn, &speaker.UpdatedOn)
}

// GetByIDForCommunity retrieves a speaker only if it belongs to the community.
func (r *SpeakerRepository) GetByIDForCommunity(ctx context.Context, id, communityID int64) (*model.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers WHERE id = $1 AND community_id = $2`

	s, err := scanSpeaker(r.db.QueryRowContext(ctx, query, id, communityID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update writes a speaker's mutable fields within its community.
func (r *SpeakerRepository) Update(ctx context.Context, speaker *model.Speaker) (bool, error) {
	query := `UPDATE speakers SET
		name = $1, bio = $2, photo_url = $3, elder_status = $4, birth_year = $5,
		updated_on = now()
		WHERE id = $6 AND community_id = $7`

	res, err := r.db.ExecContext(ctx, query,
		speaker.Name, speaker.Bio, speaker.PhotoURL, speaker.ElderStatus,
		speaker.BirthYear, speaker.ID, speaker.CommunityID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes a speaker within its community.
func (r *SpeakerRepository) Delete(ctx context.Context, id, communityID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM speakers WHERE id = $1 AND community_id = $2`, id, communityID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListByCommunity returns a page of the community's speakers.
func (r *SpeakerRepository) ListByCommunity(ctx context.Context, communityID int64, page, limit int) (*model.Paginated[model.Speaker], error) {
	page, limit = model.NormalizePage(page, limit)

	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM speakers WHERE community_id = $1`, communityID).Scan(&total)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + speakerColumns + `
		FROM speakers
		WHERE community_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, communityID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	data := []model.Speaker{}
	for rows.Next() {
		s, err := scanSpeaker(rows)
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

func scanSpeaker(row interface{ Scan(...any) error }) (model.Speaker, error) {
	var s model.Speaker
	err := row.Scan(
		&s.ID, &s.Name, &s.Bio, &s.PhotoURL, &s.ElderStatus, &s.BirthYear,
		&s.CommunityID, &s.CreatedOn, &s.UpdatedOn,
	)
	if err != nil {
		return model.Speaker{}, err
	}
	return s, nil
}
