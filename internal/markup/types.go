package markup

import "fmt"

// Kind identifies one of the inline styles a marker character can toggle
type Kind int

const (
	Bold Kind = iota
	Strike
	Italic
)

// kindCount is the number of marker kinds tracked during a scan
const kindCount = 3

// Marker characters
const (
	BoldMarker   = '*'
	StrikeMarker = '~'
	ItalicMarker = '_'
)

const newline = '\n'

// Marker returns the trigger character bound to the kind
func (k Kind) Marker() rune {
	switch k {
	case Bold:
		return BoldMarker
	case Strike:
		return StrikeMarker
	case Italic:
		return ItalicMarker
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case Bold:
		return "bold"
	case Strike:
		return "strike"
	case Italic:
		return "italic"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Bold, Strike, Italic:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown markup kind %d", int(k))
}

// UnmarshalText decodes a kind name produced by MarshalText
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "bold":
		*k = Bold
	case "strike":
		*k = Strike
	case "italic":
		*k = Italic
	default:
		return fmt.Errorf("unknown markup kind %q", string(text))
	}
	return nil
}

// KindOf reports which kind, if any, r is the marker for
func KindOf(r rune) (Kind, bool) {
	switch r {
	case BoldMarker:
		return Bold, true
	case StrikeMarker:
		return Strike, true
	case ItalicMarker:
		return Italic, true
	}
	return 0, false
}

// Mode selects what happens to marker characters that take part in a pair
type Mode int

const (
	// EditPreserveMarkers keeps marker glyphs in the output so they can be
	// edited; the host dims them.
	EditPreserveMarkers Mode = iota
	// DisplayStripMarkers removes marker glyphs from the output.
	DisplayStripMarkers
)

func (m Mode) String() string {
	switch m {
	case EditPreserveMarkers:
		return "edit"
	case DisplayStripMarkers:
		return "display"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps "edit" or "display" to a Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "edit":
		return EditPreserveMarkers, nil
	case "display":
		return DisplayStripMarkers, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want edit or display)", s)
}

// Span is a styled range over the scanned text. Start and End are rune
// indices into Result.Text and both are inclusive.
type Span struct {
	Kind  Kind `json:"kind"`
	Start int  `json:"start"`
	End   int  `json:"end"`
}

// Result is the output of a single scan
type Result struct {
	Text      string       `json:"text"`
	Spans     []Span       `json:"spans"`
	Mode      Mode         `json:"-"`
	Positions *PositionMap `json:"-"`
}

// StyleType represents the styles a host applies to the scanned text
type StyleType int

const (
	StyleNormal StyleType = iota
	StyleBold
	StyleItalic
	StyleStrike
	StyleMarker
)

// StyleRange represents a range of text with a specific style
type StyleRange struct {
	Start int // Rune position in scanned text
	End   int // Rune position in scanned text, exclusive
	Type  StyleType
}

// Attr is a per-rune set of styles
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrItalic
	AttrStrike
	AttrMarker
)

// Has reports whether all bits of other are set
func (a Attr) Has(other Attr) bool {
	return a&other == other
}

func styleForKind(k Kind) StyleType {
	switch k {
	case Bold:
		return StyleBold
	case Italic:
		return StyleItalic
	case Strike:
		return StyleStrike
	default:
		return StyleNormal
	}
}

func attrForStyle(t StyleType) Attr {
	switch t {
	case StyleBold:
		return AttrBold
	case StyleItalic:
		return AttrItalic
	case StyleStrike:
		return AttrStrike
	case StyleMarker:
		return AttrMarker
	default:
		return 0
	}
}
