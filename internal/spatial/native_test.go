package spatial

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func nativeRowColumns() []string {
	return append(append([]string{}, placeRowColumns...), "distance_km")
}

// ============================================================================
// SearchNear Tests
// ============================================================================

func TestNativeSearchNear_DelegatesDistanceToExtension(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(int64(1), false, -122.4194, 37.7749, 5000.0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("ST_Distance").
		WithArgs(int64(1), false, -122.4194, 37.7749, 5000.0, 10, 0).
		WillReturnRows(sqlmock.NewRows(nativeRowColumns()).
			AddRow(1, "Place A", nil, 37.7749, -122.4194, nil, []byte(`[]`), nil, false, 1, now, now, 0.0).
			AddRow(2, "Place B", nil, 37.7849, -122.4194, nil, []byte(`[]`), nil, false, 1, now, now, 1.11))

	engine := &nativeEngine{db: db}
	result, err := engine.SearchNear(context.Background(), NearQuery{
		CommunityID: 1,
		Lat:         37.7749,
		Lng:         -122.4194,
		RadiusKm:    5,
		Page:        1,
		Limit:       10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total != 2 {
		t.Errorf("expected total 2, got %d", result.Total)
	}
	if len(result.Data) != 2 {
		t.Fatalf("expected 2 places, got %d", len(result.Data))
	}
	if result.Data[0].Name != "Place A" {
		t.Errorf("expected Place A first, got %s", result.Data[0].Name)
	}
	if result.Data[1].DistanceKm != 1.11 {
		t.Errorf("expected native distance 1.11, got %f", result.Data[1].DistanceKm)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestNativeSearchNear_InvalidCoordinates_NoQueryExecutes(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	engine := &nativeEngine{db: db}
	_, err = engine.SearchNear(context.Background(), NearQuery{
		CommunityID: 1, Lat: 0, Lng: -200, RadiusKm: 5, Page: 1, Limit: 10,
	})
	if err != ErrInvalidCoordinates {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestNativeSearchNear_TotalFromCountNotPage(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(int64(1), false, 0.0, 0.0, 100000.0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery("ST_Distance").
		WithArgs(int64(1), false, 0.0, 0.0, 100000.0, 2, 2).
		WillReturnRows(sqlmock.NewRows(nativeRowColumns()).
			AddRow(3, "P3", nil, 0.02, 0.0, nil, []byte(`[]`), nil, false, 1, now, now, 2.2).
			AddRow(4, "P4", nil, 0.03, 0.0, nil, []byte(`[]`), nil, false, 1, now, now, 3.3))

	engine := &nativeEngine{db: db}
	result, err := engine.SearchNear(context.Background(), NearQuery{
		CommunityID: 1, Lat: 0, Lng: 0, RadiusKm: 100, Page: 2, Limit: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total != 7 {
		t.Errorf("expected total 7 from the count query, got %d", result.Total)
	}
	if result.Pages != 4 {
		t.Errorf("expected ceil(7/2) = 4 pages, got %d", result.Pages)
	}
}

// ============================================================================
// SearchInBounds Tests
// ============================================================================

func TestNativeSearchInBounds_RangeChecksOnly(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(int64(1), true, 37.70, 37.80, -122.50, -122.40).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("BETWEEN").
		WithArgs(int64(1), true, 37.70, 37.80, -122.50, -122.40, 10, 0).
		WillReturnRows(sqlmock.NewRows(placeRowColumns).
			AddRow(1, "Place A", nil, 37.7749, -122.4194, nil, []byte(`["https://media.example/a.jpg"]`), nil, true, 1, now, now))

	engine := &nativeEngine{db: db}
	result, err := engine.SearchInBounds(context.Background(), BoundsQuery{
		CommunityID: 1,
		North:       37.80, South: 37.70, East: -122.40, West: -122.50,
		Page: 1, Limit: 10,
		IncludeRestricted: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total != 1 {
		t.Errorf("expected total 1, got %d", result.Total)
	}
	if len(result.Data) != 1 {
		t.Fatalf("expected 1 place, got %d", len(result.Data))
	}
	if len(result.Data[0].MediaURLs) != 1 {
		t.Errorf("expected decoded media urls, got %v", result.Data[0].MediaURLs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestNativeSearchInBounds_InvalidBox_NoQueryExecutes(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	engine := &nativeEngine{db: db}
	_, err = engine.SearchInBounds(context.Background(), BoundsQuery{
		CommunityID: 1,
		North:       10, South: 5, East: -122.50, West: -122.40,
		Page: 1, Limit: 10,
	})
	if err != ErrInvalidBounds {
		t.Fatalf("expected ErrInvalidBounds, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// ============================================================================
// New Tests
// ============================================================================

func TestNew_SelectsBackendOnce(t *testing.T) {
	t.Parallel()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	if _, err := New(db, BackendNative); err != nil {
		t.Errorf("native backend: %v", err)
	}
	if _, err := New(db, BackendFallback); err != nil {
		t.Errorf("fallback backend: %v", err)
	}
	if _, err := New(db, "mystery"); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}
