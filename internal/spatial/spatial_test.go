package spatial

import (
	"strings"
	"testing"
)

// ============================================================================
// Shared Scan Helpers
// ============================================================================

func TestPlaceColumns_MatchScanOrder(t *testing.T) {
	t.Parallel()

	var got []string
	for _, c := range strings.Split(PlaceColumns, ",") {
		got = append(got, strings.TrimSpace(c))
	}

	if len(got) != len(placeRowColumns) {
		t.Fatalf("expected %d columns, got %d", len(placeRowColumns), len(got))
	}
	for i, want := range placeRowColumns {
		if got[i] != want {
			t.Errorf("column %d: expected %s, got %s", i, want, got[i])
		}
	}
}
