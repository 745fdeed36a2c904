package render

import (
	"html"
	"strings"

	"github.com/csams/chatmark/internal/markup"
)

// HTML renders the result as an HTML fragment. Styled runs are wrapped in
// <strong>, <em> and <s>; retained marker glyphs get a span with the
// "marker" class. Newlines become <br>.
func HTML(res markup.Result) string {
	var b strings.Builder
	for _, rn := range runs(res) {
		if rn.text == "\n" {
			b.WriteString("<br>\n")
			continue
		}

		var open, closing []string
		wrap := func(attr markup.Attr, start, end string) {
			if rn.attr.Has(attr) {
				open = append(open, start)
				closing = append([]string{end}, closing...)
			}
		}
		wrap(markup.AttrMarker, `<span class="marker">`, "</span>")
		wrap(markup.AttrBold, "<strong>", "</strong>")
		wrap(markup.AttrItalic, "<em>", "</em>")
		wrap(markup.AttrStrike, "<s>", "</s>")

		b.WriteString(strings.Join(open, ""))
		b.WriteString(html.EscapeString(rn.text))
		b.WriteString(strings.Join(closing, ""))
	}
	return b.String()
}
