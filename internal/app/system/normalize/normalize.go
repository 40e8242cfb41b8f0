// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email canonicalizes an email address for lookup: trimmed and lowered.
// Diacritic folding is handled separately (text.Fold) where a folded
// index field exists.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role lowers and trims a role label so comparisons are stable regardless
// of how the client capitalized it.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status trims a material status label. Status values are compared
// case-insensitively by callers but stored verbatim, so only whitespace
// is stripped here.
func Status(s string) string {
	return strings.TrimSpace(s)
}
