package service

import (
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var placeTestColumns = []string{
	"id", "name", "description", "latitude", "longitude", "region", "media_urls",
	"cultural_significance", "is_restricted", "community_id", "created_on", "updated_on",
}

func testTime() time.Time {
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}

func placeTestRow(id int64, name string, lat, lng float64, communityID int64) *sqlmock.Rows {
	return sqlmock.NewRows(placeTestColumns).
		AddRow(id, name, nil, lat, lng, nil, []byte(`[]`), nil, false, communityID, testTime(), testTime())
}
