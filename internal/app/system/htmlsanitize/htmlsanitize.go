// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// strict strips all HTML. Donor comments and item descriptions are free
// text that ends up interpolated into receipt and email HTML, so nothing
// but plain text may pass through.
var strict = bluemonday.StrictPolicy()

// Strip removes all markup from user-entered text.
func Strip(s string) string {
	return strict.Sanitize(s)
}
