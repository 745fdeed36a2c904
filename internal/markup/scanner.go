package markup

import "unicode/utf8"

// noIndex marks a kind with no pending opening marker
const noIndex = -1

// Scan converts raw text containing marker characters into the text a host
// shows plus the spans to style it with.
//
// The pass is single and left to right. A marker opens a range only when the
// same marker appears again later on the same line, and not directly after
// it; otherwise it is literal text. A marker closes whatever range of its kind
// is pending. In EditPreserveMarkers mode every input rune is kept. In
// DisplayStripMarkers mode markers that open or close a range are dropped.
//
// Scan never fails. Unbalanced markers degrade to literal text.
func Scan(input string, mode Mode) Result {
	src := []rune(input)
	out := make([]rune, 0, len(src))
	origin := make([]int, 0, len(src))

	var open [kindCount]int
	for k := range open {
		open[k] = noIndex
	}

	var spans []Span
	for i, c := range src {
		if kind, ok := KindOf(c); ok {
			j := len(out)
			if open[kind] == noIndex {
				if hasMarkerSameLine(src, c, i+1) {
					if mode == DisplayStripMarkers {
						open[kind] = j
						continue
					}
					open[kind] = j + 1
				}
			} else {
				// Crossing pairs can leave nothing between the markers once
				// the other kind's markers are dropped.
				if span := (Span{Kind: kind, Start: open[kind], End: j - 1}); span.Start <= span.End {
					spans = append(spans, span)
				}
				open[kind] = noIndex
				if mode == DisplayStripMarkers {
					continue
				}
			}
		}
		out = append(out, c)
		origin = append(origin, i)
	}

	return Result{
		Text:      string(out),
		Spans:     spans,
		Mode:      mode,
		Positions: newPositionMap(origin, len(src)),
	}
}

// hasMarkerSameLine reports whether marker occurs in text between from and the
// next newline, at a position other than from itself.
func hasMarkerSameLine(text []rune, marker rune, from int) bool {
	for i := from; i < len(text); i++ {
		c := text[i]
		if c == newline {
			return false
		}
		if c == marker {
			return i != from
		}
	}
	return false
}

// Len returns the length of the scanned text in runes
func (r Result) Len() int {
	return utf8.RuneCountInString(r.Text)
}

// Styles flattens the spans into the annotations a host applies. In edit mode
// each span is accompanied by two single-rune StyleMarker ranges covering the
// retained marker glyphs.
func (r Result) Styles() []StyleRange {
	if len(r.Spans) == 0 {
		return nil
	}

	styles := make([]StyleRange, 0, len(r.Spans)*3)
	for _, sp := range r.Spans {
		styles = append(styles, StyleRange{Start: sp.Start, End: sp.End + 1, Type: styleForKind(sp.Kind)})
		if r.Mode == EditPreserveMarkers {
			styles = append(styles,
				StyleRange{Start: sp.Start - 1, End: sp.Start, Type: StyleMarker},
				StyleRange{Start: sp.End + 1, End: sp.End + 2, Type: StyleMarker},
			)
		}
	}
	return styles
}

// Attributes returns the combined style bits of every rune in r.Text
func (r Result) Attributes() []Attr {
	n := r.Len()
	attrs := make([]Attr, n)
	for _, st := range r.Styles() {
		bit := attrForStyle(st.Type)
		start := max(st.Start, 0)
		end := min(st.End, n)
		for i := start; i < end; i++ {
			attrs[i] |= bit
		}
	}
	return attrs
}
