package spatial

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/longhouse/storymap/api/internal/geo"
	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/obs"
)

// fallbackEngine searches without a spatial extension: it loads the
// community's places into a request-local slice and does the math in Go.
// The slice is never shared or cached across requests.
type fallbackEngine struct {
	db *sql.DB
}

func (e *fallbackEngine) SearchNear(ctx context.Context, q NearQuery) (result *model.Paginated[model.PlaceWithDistance], err error) {
	start := time.Now()
	defer func() { obs.SpatialQuery(BackendFallback, "near", start, err) }()

	if !geo.ValidateCoordinates(q.Lat, q.Lng) {
		return nil, ErrInvalidCoordinates
	}
	page, limit := model.NormalizePage(q.Page, q.Limit)

	places, err := e.loadCommunity(ctx, q.CommunityID, q.IncludeRestricted)
	if err != nil {
		return nil, err
	}

	matched := make([]model.PlaceWithDistance, 0, len(places))
	for _, p := range places {
		d := geo.Haversine(q.Lat, q.Lng, p.Latitude, p.Longitude)
		if d <= q.RadiusKm {
			matched = append(matched, model.PlaceWithDistance{Place: p, DistanceKm: d})
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].DistanceKm != matched[j].DistanceKm {
			return matched[i].DistanceKm < matched[j].DistanceKm
		}
		return matched[i].ID < matched[j].ID
	})

	// Total reflects the post-filter count, not the raw table size.
	total := len(matched)
	return model.NewPaginated(slicePage(matched, page, limit), total, page, limit), nil
}

func (e *fallbackEngine) SearchInBounds(ctx context.Context, q BoundsQuery) (result *model.Paginated[model.Place], err error) {
	start := time.Now()
	defer func() { obs.SpatialQuery(BackendFallback, "bounds", start, err) }()

	if !geo.ValidateBounds(q.North, q.South, q.East, q.West) {
		return nil, ErrInvalidBounds
	}
	page, limit := model.NormalizePage(q.Page, q.Limit)

	places, err := e.loadCommunity(ctx, q.CommunityID, q.IncludeRestricted)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Place, 0, len(places))
	for _, p := range places {
		if geo.InBounds(p.Latitude, p.Longitude, q.North, q.South, q.East, q.West) {
			matched = append(matched, p)
		}
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	return model.NewPaginated(slicePage(matched, page, limit), total, page, limit), nil
}

// loadCommunity fetches the community's places, filtered by the restriction
// flag in SQL. Community scoping is the outermost filter.
func (e *fallbackEngine) loadCommunity(ctx context.Context, communityID int64, includeRestricted bool) ([]model.Place, error) {
	query := `SELECT ` + PlaceColumns + `
		FROM places
		WHERE community_id = $1 AND ($2 OR NOT is_restricted)
		ORDER BY id`

	rows, err := e.db.QueryContext(ctx, query, communityID, includeRestricted)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var places []model.Place
	for rows.Next() {
		p, err := ScanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

// slicePage slices one page out of the already-filtered, already-sorted list.
func slicePage[T any](all []T, page, limit int) []T {
	offset := (page - 1) * limit
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
