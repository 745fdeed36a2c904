package markup

import "testing"

func TestPositionMapDisplay(t *testing.T) {
	result := Scan("hello *world*", DisplayStripMarkers)
	pm := result.Positions

	if pm.Identity() {
		t.Fatal("Expected non-identity map when markers are stripped")
	}

	tests := []struct {
		original  int
		converted int
	}{
		{0, 0},
		{5, 5},
		{6, 6},   // opening marker maps to the next kept rune
		{7, 6},   // 'w'
		{11, 10}, // 'd'
		{12, 11}, // closing marker maps to the end
		{13, 11},
		{-3, 0},
	}
	for _, tt := range tests {
		if got := pm.OriginalToConverted(tt.original); got != tt.converted {
			t.Errorf("OriginalToConverted(%d) = %d, want %d", tt.original, got, tt.converted)
		}
	}

	back := []struct {
		converted int
		original  int
	}{
		{0, 0},
		{6, 7},
		{10, 11},
		{11, 13},
	}
	for _, tt := range back {
		if got := pm.ConvertedToOriginal(tt.converted); got != tt.original {
			t.Errorf("ConvertedToOriginal(%d) = %d, want %d", tt.converted, got, tt.original)
		}
	}
}

func TestPositionMapRoundTripOnKeptRunes(t *testing.T) {
	result := Scan("*a* b _c_ ~", DisplayStripMarkers)
	pm := result.Positions
	for conv := 0; conv < result.Len(); conv++ {
		orig := pm.ConvertedToOriginal(conv)
		if got := pm.OriginalToConverted(orig); got != conv {
			t.Errorf("Round trip of %d via %d gave %d", conv, orig, got)
		}
	}
}

func TestNilPositionMap(t *testing.T) {
	var pm *PositionMap
	if pm.OriginalToConverted(4) != 4 || pm.ConvertedToOriginal(4) != 4 {
		t.Error("Expected nil map to act as identity")
	}
	if !pm.Identity() {
		t.Error("Expected nil map to report identity")
	}
}
