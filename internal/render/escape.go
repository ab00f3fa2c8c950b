// ABOUTME: HTML escaping for user-supplied material fields.
// ABOUTME: Uses a fixed five-character replacement table.

package render

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape HTML-escapes v. Anything other than a string escapes to "".
func Escape(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return escaper.Replace(s)
}
