package spatial

import (
	"context"
	"database/sql"
	"time"

	"github.com/longhouse/storymap/api/internal/geo"
	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/obs"
)

// nativeEngine delegates distance and containment to PostGIS. Radius results
// order by the extension's geography distance, which may differ from the
// fallback's haversine in floating-point precision only.
type nativeEngine struct {
	db *sql.DB
}

func (e *nativeEngine) SearchNear(ctx context.Context, q NearQuery) (result *model.Paginated[model.PlaceWithDistance], err error) {
	start := time.Now()
	defer func() { obs.SpatialQuery(BackendNative, "near", start, err) }()

	if !geo.ValidateCoordinates(q.Lat, q.Lng) {
		return nil, ErrInvalidCoordinates
	}
	page, limit := model.NormalizePage(q.Page, q.Limit)
	radiusM := q.RadiusKm * 1000

	countQuery := `SELECT COUNT(*)
		FROM places
		WHERE community_id = $1 AND ($2 OR NOT is_restricted)
		  AND ST_DWithin(
		        ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
		        ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography,
		        $5)`

	var total int
	err = e.db.QueryRowContext(ctx, countQuery,
		q.CommunityID, q.IncludeRestricted, q.Lng, q.Lat, radiusM).Scan(&total)
	if err != nil {
		return nil, err
	}

	pageQuery := `SELECT ` + PlaceColumns + `,
		ST_Distance(
			ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
			ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography) / 1000.0 AS distance_km
		FROM places
		WHERE community_id = $1 AND ($2 OR NOT is_restricted)
		  AND ST_DWithin(
		        ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
		        ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography,
		        $5)
		ORDER BY distance_km, id
		LIMIT $6 OFFSET $7`

	rows, err := e.db.QueryContext(ctx, pageQuery,
		q.CommunityID, q.IncludeRestricted, q.Lng, q.Lat, radiusM,
		limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	data := []model.PlaceWithDistance{}
	for rows.Next() {
		var (
			p     model.PlaceWithDistance
			media []byte
		)
		scanErr := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Latitude, &p.Longitude, &p.Region,
			&media, &p.CulturalSignificance, &p.IsRestricted, &p.CommunityID,
			&p.CreatedOn, &p.UpdatedOn, &p.DistanceKm,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		if len(media) > 0 {
			if err := unmarshalMedia(media, &p.Place); err != nil {
				return nil, err
			}
		}
		data = append(data, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return model.NewPaginated(data, total, page, limit), nil
}

func (e *nativeEngine) SearchInBounds(ctx context.Context, q BoundsQuery) (result *model.Paginated[model.Place], err error) {
	start := time.Now()
	defer func() { obs.SpatialQuery(BackendNative, "bounds", start, err) }()

	if !geo.ValidateBounds(q.North, q.South, q.East, q.West) {
		return nil, ErrInvalidBounds
	}
	page, limit := model.NormalizePage(q.Page, q.Limit)

	// Containment is pure range checks so native and fallback agree exactly.
	countQuery := `SELECT COUNT(*)
		FROM places
		WHERE community_id = $1 AND ($2 OR NOT is_restricted)
		  AND latitude BETWEEN $3 AND $4
		  AND longitude BETWEEN $5 AND $6`

	var total int
	err = e.db.QueryRowContext(ctx, countQuery,
		q.CommunityID, q.IncludeRestricted, q.South, q.North, q.West, q.East).Scan(&total)
	if err != nil {
		return nil, err
	}

	pageQuery := `SELECT ` + PlaceColumns + `
		FROM places
		WHERE community_id = $1 AND ($2 OR NOT is_restricted)
		  AND latitude BETWEEN $3 AND $4
		  AND longitude BETWEEN $5 AND $6
		ORDER BY id
		LIMIT $7 OFFSET $8`

	rows, err := e.db.QueryContext(ctx, pageQuery,
		q.CommunityID, q.IncludeRestricted, q.South, q.North, q.West, q.East,
		limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	data := []model.Place{}
	for rows.Next() {
		p, scanErr := ScanPlace(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		data = append(data, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return model.NewPaginated(data, total, page, limit), nil
}
