package sanitize

import (
	"github.com/gomarkdown/markdown"
	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy removes every tag and attribute. Used for titles,
	// post bodies, search terms and chat text.
	strictPolicy = bluemonday.StrictPolicy()

	// renderPolicy keeps a fixed allow-list of basic formatting tags
	// with no attributes. Used only when transforming lightweight
	// markup for display.
	renderPolicy = bluemonday.NewPolicy().AllowElements(
		"p", "strong", "b", "i", "em", "li", "ol", "ul", "br",
		"h1", "h2", "h3", "h4", "h5", "h6",
	)
)

// Text strips all markup and returns plain text. Safe on arbitrary
// input; an empty string sanitizes to an empty string.
func Text(input string) string {
	return strictPolicy.Sanitize(input)
}

// HTML sanitizes already-rendered markup down to the display
// allow-list.
func HTML(input string) string {
	return renderPolicy.Sanitize(input)
}

// RenderMarkdown converts user markdown to HTML and sanitizes the
// result with the display allow-list. Anything outside the allow-list,
// including all attributes, is stripped.
func RenderMarkdown(input string) string {
	html := markdown.ToHTML([]byte(input), nil, nil)
	return renderPolicy.Sanitize(string(html))
}
