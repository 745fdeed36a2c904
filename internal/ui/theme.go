package ui

import "github.com/gdamore/tcell/v2"

// TokyoNight color palette
var (
	// Background colors
	ColorBg          = tcell.NewRGBColor(0x1a, 0x1b, 0x26) // #1a1b26 - Dark background
	ColorBgDark      = tcell.NewRGBColor(0x16, 0x16, 0x1e) // #16161e - Darker background
	ColorBgHighlight = tcell.NewRGBColor(0x29, 0x2e, 0x42) // #292e42 - Highlighted background

	// Foreground colors
	ColorFg       = tcell.NewRGBColor(0xc0, 0xca, 0xf5) // #c0caf5 - Default text
	ColorFgDark   = tcell.NewRGBColor(0x56, 0x5f, 0x89) // #565f89 - Dimmed text
	ColorFgGutter = tcell.NewRGBColor(0x3b, 0x42, 0x61) // #3b4261 - Gutter/border

	// Accent colors
	ColorBlue   = tcell.NewRGBColor(0x7a, 0xa2, 0xf7) // #7aa2f7 - Primary blue
	ColorYellow = tcell.NewRGBColor(0xe0, 0xaf, 0x68) // #e0af68 - Yellow
	ColorTeal   = tcell.NewRGBColor(0x1a, 0xbc, 0x9c) // #1abc9c - Teal

	// UI-specific color mappings
	ColorHeader    = ColorBlue        // Title bar
	ColorBorder    = ColorFgGutter    // Separators
	ColorHighlight = ColorYellow      // Search highlights
	ColorBubble    = ColorBgHighlight // Sent message background
	ColorBubbleTag = ColorTeal        // Timestamp under a bubble
	ColorMarker    = ColorFgDark      // Retained markup glyphs
)

// ParseColor reads a #rrggbb colour, falling back when it is malformed
func ParseColor(hex string, fallback tcell.Color) tcell.Color {
	c := tcell.GetColor(hex)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
