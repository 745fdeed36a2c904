// Package render turns scanned markup into text for non-interactive
// surfaces: terminals, HTML pages and machine-readable JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/csams/chatmark/internal/markup"
)

// Format selects an output representation
type Format string

const (
	FormatANSI  Format = "ansi"
	FormatHTML  Format = "html"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatANSI, FormatHTML, FormatJSON, FormatPlain:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want ansi, html, json or plain)", s)
}

// DefaultMarkerColor matches the dimmed foreground of the terminal theme
const DefaultMarkerColor = "#565f89"

// Options controls rendering
type Options struct {
	// MarkerColor is the foreground used for retained marker glyphs
	MarkerColor string
	// Renderer is the lipgloss renderer used for ANSI output. Nil means the
	// default renderer, which detects the terminal's colour profile.
	Renderer *lipgloss.Renderer
}

// run is a maximal stretch of runes sharing the same attributes
type run struct {
	text string
	attr markup.Attr
}

// runs splits the scanned text into attribute runs. Newlines always get a run
// of their own so renderers can emit them unstyled.
func runs(res markup.Result) []run {
	text := []rune(res.Text)
	if len(text) == 0 {
		return nil
	}
	attrs := res.Attributes()

	var out []run
	start := 0
	for i := 1; i <= len(text); i++ {
		if i < len(text) && attrs[i] == attrs[start] && text[i] != '\n' && text[start] != '\n' {
			continue
		}
		out = append(out, run{text: string(text[start:i]), attr: attrs[start]})
		start = i
	}
	return out
}

// ANSI renders the result with terminal escape sequences
func ANSI(res markup.Result, opts Options) string {
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	markerColor := opts.MarkerColor
	if markerColor == "" {
		markerColor = DefaultMarkerColor
	}

	var b strings.Builder
	for _, rn := range runs(res) {
		if rn.attr == 0 || rn.text == "\n" {
			b.WriteString(rn.text)
			continue
		}
		style := r.NewStyle().
			Bold(rn.attr.Has(markup.AttrBold)).
			Italic(rn.attr.Has(markup.AttrItalic)).
			Strikethrough(rn.attr.Has(markup.AttrStrike))
		if rn.attr.Has(markup.AttrMarker) {
			style = style.Foreground(lipgloss.Color(markerColor))
		}
		b.WriteString(style.Render(rn.text))
	}
	return b.String()
}

// Write renders res in the requested format to w
func Write(w io.Writer, format Format, res markup.Result, opts Options) error {
	var out string
	switch format {
	case FormatANSI:
		out = ANSI(res, opts)
	case FormatHTML:
		out = HTML(res)
	case FormatPlain:
		out = res.Text
	case FormatJSON:
		data, err := JSON(res)
		if err != nil {
			return err
		}
		out = string(data)
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// document is the JSON shape of a scan result
type document struct {
	Mode  string        `json:"mode"`
	Text  string        `json:"text"`
	Spans []markup.Span `json:"spans"`
}

// JSON encodes the result with its mode and spans
func JSON(res markup.Result) ([]byte, error) {
	spans := res.Spans
	if spans == nil {
		spans = []markup.Span{}
	}
	data, err := json.MarshalIndent(document{
		Mode:  res.Mode.String(),
		Text:  res.Text,
		Spans: spans,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return data, nil
}
