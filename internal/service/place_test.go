package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/repository"
	"github.com/longhouse/storymap/api/internal/spatial"
)

func newPlaceService(t *testing.T) (*PlaceService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	engine, err := spatial.New(db, spatial.BackendFallback)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPlaceService(repository.NewPlaceRepository(db, engine), logger), mock
}

// ============================================================================
// Create Validation Tests
// ============================================================================

func TestPlaceService_Create_RejectsEmptyName(t *testing.T) {
	t.Parallel()
	svc, mock := newPlaceService(t)

	_, err := svc.Create(context.Background(), 1, &model.CreatePlaceRequest{
		Name:     "   ",
		Latitude: 10, Longitude: 10,
	})
	assert.ErrorIs(t, err, ErrPlaceNameRequired)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query should run for invalid input")
}

func TestPlaceService_Create_RejectsLongName(t *testing.T) {
	t.Parallel()
	svc, mock := newPlaceService(t)

	_, err := svc.Create(context.Background(), 1, &model.CreatePlaceRequest{
		Name:     strings.Repeat("x", model.MaxPlaceNameLength+1),
		Latitude: 10, Longitude: 10,
	})
	assert.ErrorIs(t, err, ErrPlaceNameTooLong)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceService_Create_RejectsBadCoordinates(t *testing.T) {
	t.Parallel()
	svc, mock := newPlaceService(t)

	cases := []struct {
		name     string
		lat, lng float64
	}{
		{"latitude above range", 91, 0},
		{"latitude below range", -91, 0},
		{"longitude above range", 0, 181},
		{"longitude below range", 0, -181},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, &model.CreatePlaceRequest{
				Name: "Eagle Rock", Latitude: tc.lat, Longitude: tc.lng,
			})
			assert.ErrorIs(t, err, spatial.ErrInvalidCoordinates)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceService_Create_RejectsTooManyMediaURLs(t *testing.T) {
	t.Parallel()
	svc, mock := newPlaceService(t)

	urls := make([]string, model.MaxMediaURLs+1)
	for i := range urls {
		urls[i] = "https://media.example/clip.mp3"
	}
	_, err := svc.Create(context.Background(), 1, &model.CreatePlaceRequest{
		Name: "Eagle Rock", Latitude: 10, Longitude: 10, MediaURLs: urls,
	})
	assert.ErrorIs(t, err, ErrTooManyMediaURLs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceService_Create_TrimsNameAndStores(t *testing.T) {
	t.Parallel()
	svc, mock := newPlaceService(t)

	mock.ExpectQuery(`INSERT INTO places`).
		WithArgs("Eagle Rock", nil, 37.7749, -122.4194, nil, []byte(`[]`), nil, false, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on", "updated_on"}).
			AddRow(int64(7), testTime(), testTime()))

	place, err := svc.Create(context.Background(), 1, &model.CreatePlaceRequest{
		Name: "  Eagle Rock  ", Latitude: 37.7749, Longitude: -122.4194,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), place.ID)
	assert.Equal(t, "Eagle Rock", place.Name)
	assert.Equal(t, int64(1), place.CommunityID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ============================================================================
// Get / Update / Delete Tests
// ============================================================================

func TestPlaceService_Get_MapsAbsenceToNotFound(t *testing.T) {
	t.Parallel()
	svc, mock := newPlaceService(t)

	mock.ExpectQuery(`SELECT .+ FROM places WHERE id = \$1 AND community_id = \$2`).
		WithArgs(int64(99), int64(1)).
		WillReturnRows(sqlmock.NewRows(placeTestColumns))

	_, err := svc.Get(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrPlaceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceService_Update_ValidatesMergedCoordinates(t *testing.T) {
	t.Parallel()
	svc, mock := newPlaceService(t)

	mock.ExpectQuery(`SELECT .+ FROM places WHERE id = \$1 AND community_id = \$2`).
		WithArgs(int64(7), int64(1)).
		WillReturnRows(placeTestRow(7, "Eagle Rock", 37.7749, -122.4194, 1))

	lat := 120.0
	_, err := svc.Update(context.Background(), 7, 1, &model.UpdatePlaceRequest{Latitude: &lat})
	assert.ErrorIs(t, err, spatial.ErrInvalidCoordinates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceService_Delete_NotFound(t *testing.T) {
	t.Parallel()
	svc, mock := newPlaceService(t)

	mock.ExpectExec(`DELETE FROM places`).
		WithArgs(int64(99), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Delete(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrPlaceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ============================================================================
// Spatial Search Tests
// ============================================================================

func TestPlaceService_SearchNear_RejectsNonPositiveRadius(t *testing.T) {
	t.Parallel()
	svc, mock := newPlaceService(t)

	for _, radius := range []float64{0, -5} {
		_, err := svc.SearchNear(context.Background(), spatial.NearQuery{
			CommunityID: 1, Lat: 37.7749, Lng: -122.4194, RadiusKm: radius,
		})
		assert.ErrorIs(t, err, ErrInvalidRadius)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceService_SearchNear_PropagatesEngineValidation(t *testing.T) {
	t.Parallel()
	svc, mock := newPlaceService(t)

	_, err := svc.SearchNear(context.Background(), spatial.NearQuery{
		CommunityID: 1, Lat: 95, Lng: 0, RadiusKm: 10,
	})
	assert.True(t, errors.Is(err, spatial.ErrInvalidCoordinates))
	assert.NoError(t, mock.ExpectationsWereMet())
}
