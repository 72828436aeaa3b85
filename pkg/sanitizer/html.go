package sanitizer

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// StripHTML removes every tag and returns plain text. Entities produced by
// the policy are left escaped, so the result is safe to render as-is and
// must not be escaped again.
func StripHTML(s string) string {
	return strict.Sanitize(s)
}

// PlainText is StripHTML with entities decoded again, for output paths that
// escape on their own such as templ components.
func PlainText(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

// Echo prepares user input that is shown back on the page, such as a search
// query in a notification.
var Echo = Chain(RemoveControlChars, NormalizeWhitespace, func(s string) string { return MaxLength(s, maxEcho) })

const maxEcho = 200
