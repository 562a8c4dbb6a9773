package model

import "testing"

// ============================================================================
// NormalizePage Tests
// ============================================================================

func TestNormalizePage_ClampsRanges(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{"defaults for zero values", 0, 0, 1, DefaultPageLimit},
		{"negative page clamps to one", -5, 10, 1, 10},
		{"limit above max clamps", 2, 500, 2, MaxPageLimit},
		{"valid values untouched", 3, 50, 3, 50},
		{"limit at max untouched", 1, MaxPageLimit, 1, MaxPageLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := NormalizePage(tc.page, tc.limit)
			if page != tc.wantPage || limit != tc.wantLimit {
				t.Errorf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)",
					tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

// ============================================================================
// NewPaginated Tests
// ============================================================================

func TestNewPaginated_PageCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		total, limit int
		wantPages    int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{7, 2, 4},
		{100, 100, 1},
	}
	for _, tc := range cases {
		p := NewPaginated([]int{}, tc.total, 1, tc.limit)
		if p.Pages != tc.wantPages {
			t.Errorf("total %d limit %d: expected %d pages, got %d",
				tc.total, tc.limit, tc.wantPages, p.Pages)
		}
	}
}

func TestNewPaginated_ZeroLimitNoDivide(t *testing.T) {
	t.Parallel()

	p := NewPaginated([]string{}, 10, 1, 0)
	if p.Pages != 0 {
		t.Errorf("expected 0 pages for zero limit, got %d", p.Pages)
	}
}
