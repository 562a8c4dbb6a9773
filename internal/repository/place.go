package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/spatial"
)

// PlaceRepository handles place data access
type PlaceRepository struct {
	db     *sql.DB
	engine spatial.Engine
}

// NewPlaceRepository creates a new place repository over the shared pool and
// the spatial engine selected at startup.
func NewPlaceRepository(db *sql.DB, engine spatial.Engine) *PlaceRepository {
	return &PlaceRepository{db: db, engine: engine}
}

// Create inserts a place into its owning community.
func (r *PlaceRepository) Create(ctx context.Context, place *model.Place) error {
	media, err := marshalMedia(place.MediaURLs)
	if err != nil {
		return err
	}

	query := `INSERT INTO places
		(name, description, latitude, longitude, region, media_urls,
		 cultural_significance, is_restricted, community_id, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING id, created_on, updated_on`

	return r.db.QueryRowContext(ctx, query,
		place.Name, place.Description, place.Latitude, place.Longitude,
		place.Region, media, place.CulturalSignificance, place.IsRestricted,
		place.CommunityID,
	).Scan(&place.ID, &place.CreatedOn, &place.UpdatedOn)
}

// GetByID retrieves a place by id regardless of community. Returns (nil, nil)
// when absent.
func (r *PlaceRepository) GetByID(ctx context.Context, id int64) (*model.Place, error) {
	query := `SELECT ` + spatial.PlaceColumns + ` FROM places WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

// GetByIDForCommunity retrieves a place only if it belongs to the community.
// An absent place and a cross-community place produce the same (nil, nil).
func (r *PlaceRepository) GetByIDForCommunity(ctx context.Context, id, communityID int64) (*model.Place, error) {
	query := `SELECT ` + spatial.PlaceColumns + ` FROM places WHERE id = $1 AND community_id = $2`
	return r.queryOne(ctx, query, id, communityID)
}

// Update writes a place's mutable fields. CommunityID never changes.
func (r *PlaceRepository) Update(ctx context.Context, place *model.Place) (bool, error) {
	media, err := marshalMedia(place.MediaURLs)
	if err != nil {
		return false, err
	}

	query := `UPDATE places SET
		name = $1, description = $2, latitude = $3, longitude = $4, region = $5,
		media_urls = $6, cultural_significance = $7, is_restricted = $8,
		updated_on = now()
		WHERE id = $9 AND community_id = $10`

	res, err := r.db.ExecContext(ctx, query,
		place.Name, place.Description, place.Latitude, place.Longitude,
		place.Region, media, place.CulturalSignificance, place.IsRestricted,
		place.ID, place.CommunityID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes a place within its community. The false return covers both
// a missing id and a cross-community id.
func (r *PlaceRepository) Delete(ctx context.Context, id, communityID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM places WHERE id = $1 AND community_id = $2`, id, communityID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListByCommunity returns a page of the community's places.
func (r *PlaceRepository) ListByCommunity(ctx context.Context, communityID int64, page, limit int, includeRestricted bool) (*model.Paginated[model.Place], error) {
	page, limit = model.NormalizePage(page, limit)

	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM places WHERE community_id = $1 AND ($2 OR NOT is_restricted)`,
		communityID, includeRestricted).Scan(&total)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + spatial.PlaceColumns + `
		FROM places
		WHERE community_id = $1 AND ($2 OR NOT is_restricted)
		ORDER BY id
		LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, communityID, includeRestricted, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	data := []model.Place{}
	for rows.Next() {
		p, err := spatial.ScanPlace(rows)
		if err != nil {
			return nil, err
		}
		data = append(data, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return model.NewPaginated(data, total, page, limit), nil
}

// SearchNear finds the community's places within radiusKm of a point,
// ordered by ascending distance. Delegates to the configured backend.
func (r *PlaceRepository) SearchNear(ctx context.Context, q spatial.NearQuery) (*model.Paginated[model.PlaceWithDistance], error) {
	return r.engine.SearchNear(ctx, q)
}

// SearchInBounds finds the community's places inside a bounding box.
// Delegates to the configured backend.
func (r *PlaceRepository) SearchInBounds(ctx context.Context, q spatial.BoundsQuery) (*model.Paginated[model.Place], error) {
	return r.engine.SearchInBounds(ctx, q)
}

func (r *PlaceRepository) queryOne(ctx context.Context, query string, args ...any) (*model.Place, error) {
	p, err := spatial.ScanPlace(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func marshalMedia(urls []string) ([]byte, error) {
	if urls == nil {
		urls = []string{}
	}
	return json.Marshal(urls)
}
