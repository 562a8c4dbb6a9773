// Package spatial implements place search by radius and bounding box.
//
// Two strategies implement the Engine interface:
//
//   - native: delegates distance and containment to PostGIS, ordering radius
//     results by native distance
//   - fallback: loads the community's places into a request-local slice and
//     computes great-circle distances with the haversine formula
//
// The strategy is selected exactly once at startup from configuration; call
// sites never branch on backend type. Radius results may differ between the
// strategies in floating-point precision only; bounding-box containment is a
// pair of independent range checks on both backends and must match exactly.
//
// Ties at equal distance are broken by ascending place id on both backends,
// so page boundaries are deterministic whichever strategy is configured.
package spatial

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/longhouse/storymap/api/internal/model"
)

// Backend names accepted by New.
const (
	BackendNative   = "native"
	BackendFallback = "fallback"
)

// Typed failures raised before any query executes.
var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidBounds      = errors.New("invalid bounding box")
)

// NearQuery is a radius search scoped to one community.
type NearQuery struct {
	CommunityID       int64
	Lat               float64
	Lng               float64
	RadiusKm          float64
	Page              int
	Limit             int
	IncludeRestricted bool
}

// BoundsQuery is a bounding-box search scoped to one community.
type BoundsQuery struct {
	CommunityID       int64
	North             float64
	South             float64
	East              float64
	West              float64
	Page              int
	Limit             int
	IncludeRestricted bool
}

// Engine searches places for a single community with pagination.
// Community scoping is always the outermost filter; the restriction flag is
// applied identically by every implementation.
type Engine interface {
	SearchNear(ctx context.Context, q NearQuery) (*model.Paginated[model.PlaceWithDistance], error)
	SearchInBounds(ctx context.Context, q BoundsQuery) (*model.Paginated[model.Place], error)
}

// New selects a strategy by backend name. Called once at startup.
func New(db *sql.DB, backend string) (Engine, error) {
	switch backend {
	case BackendNative:
		return &nativeEngine{db: db}, nil
	case BackendFallback:
		return &fallbackEngine{db: db}, nil
	default:
		return nil, fmt.Errorf("unknown spatial backend %q", backend)
	}
}

// PlaceColumns is the scan order shared by every place query, in this package
// and in the place repository. Keeping a single definition means the column
// list and ScanPlace cannot drift apart.
const PlaceColumns = `id, name, description, latitude, longitude, region, media_urls,
	cultural_significance, is_restricted, community_id, created_on, updated_on`

// ScanPlace scans one row selected with PlaceColumns.
func ScanPlace(row interface{ Scan(...any) error }) (model.Place, error) {
	var (
		p     model.Place
		media []byte
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Latitude, &p.Longitude, &p.Region,
		&media, &p.CulturalSignificance, &p.IsRestricted, &p.CommunityID,
		&p.CreatedOn, &p.UpdatedOn,
	)
	if err != nil {
		return model.Place{}, err
	}
	if len(media) > 0 {
		if err := unmarshalMedia(media, &p); err != nil {
			return model.Place{}, err
		}
	}
	return p, nil
}

func unmarshalMedia(b []byte, p *model.Place) error {
	if err := json.Unmarshal(b, &p.MediaURLs); err != nil {
		return fmt.Errorf("decode media_urls for place %d: %w", p.ID, err)
	}
	return nil
}
