package slug

import "strings"

// Normalize canonicalizes a raw slug or title into its URL-safe form:
// lower-cased, spaces replaced with underscores, apostrophes removed.
//
// Examples:
//   - "Red Shirt"      → "red_shirt"
//   - "Men's Hoodie"   → "mens_hoodie"
//   - "already_normal" → "already_normal"
//
// Normalize is idempotent: applying it to an already-normalized slug
// returns the slug unchanged.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "'", "")
	return s
}
