package markup

import "sort"

// PositionMap provides bidirectional mapping between original and scanned
// text positions, in runes
type PositionMap struct {
	// origin[i] is the original position of scanned rune i
	origin      []int
	originalLen int
}

func newPositionMap(origin []int, originalLen int) *PositionMap {
	return &PositionMap{origin: origin, originalLen: originalLen}
}

// OriginalToConverted maps a position in the original text to the scanned
// text. A position on a dropped marker maps to the next kept rune.
func (pm *PositionMap) OriginalToConverted(pos int) int {
	if pm == nil {
		return pos
	}
	if pos <= 0 {
		return 0
	}
	if pos >= pm.originalLen {
		return len(pm.origin)
	}
	return sort.SearchInts(pm.origin, pos)
}

// ConvertedToOriginal maps a position in the scanned text back to the
// original text
func (pm *PositionMap) ConvertedToOriginal(pos int) int {
	if pm == nil {
		return pos
	}
	if pos < 0 {
		return 0
	}
	if pos >= len(pm.origin) {
		return pm.originalLen
	}
	return pm.origin[pos]
}

// Identity reports whether no rune was dropped
func (pm *PositionMap) Identity() bool {
	return pm == nil || len(pm.origin) == pm.originalLen
}
