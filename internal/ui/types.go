package ui

import (
	"github.com/csams/chatmark/internal/markup"
	"github.com/gdamore/tcell/v2"
)

// applyStyleType layers a markup StyleType on top of base
func applyStyleType(base tcell.Style, styleType markup.StyleType, markerColor tcell.Color) tcell.Style {
	switch styleType {
	case markup.StyleBold:
		return base.Bold(true)
	case markup.StyleItalic:
		return base.Italic(true)
	case markup.StyleStrike:
		return base.StrikeThrough(true)
	case markup.StyleMarker:
		return base.Foreground(markerColor)
	default:
		return base
	}
}

// attrStyleTypes pairs each attribute bit with the style it stands for
var attrStyleTypes = []struct {
	attr      markup.Attr
	styleType markup.StyleType
}{
	{markup.AttrBold, markup.StyleBold},
	{markup.AttrItalic, markup.StyleItalic},
	{markup.AttrStrike, markup.StyleStrike},
	{markup.AttrMarker, markup.StyleMarker},
}

// styleForAttr applies every style set in attr on top of base
func styleForAttr(base tcell.Style, attr markup.Attr, markerColor tcell.Color) tcell.Style {
	style := base
	for _, as := range attrStyleTypes {
		if attr.Has(as.attr) {
			style = applyStyleType(style, as.styleType, markerColor)
		}
	}
	return style
}
