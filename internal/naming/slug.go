package naming

import (
	"regexp"
	"strings"
)

// FallbackSlug is used whenever slugification leaves nothing behind.
const FallbackSlug = "item"

var (
	reNonSlug     = regexp.MustCompile(`[^a-z0-9]+`)
	reSafeID      = regexp.MustCompile(`(?i)^[a-z0-9][a-z0-9._-]*$`)
	reIllegalFile = regexp.MustCompile(`[<>:"/\\|?*]`)
	reWhitespace  = regexp.MustCompile(`\s+`)
)

// Slugify lowercases s, collapses every run of characters outside [a-z0-9]
// into a single "-", and trims leading and trailing dashes. An empty result
// becomes FallbackSlug.
//
//	"Research & Data, Desk!!" -> "research-data-desk"
//	"이것은 한글"              -> "item"
func Slugify(s string) string {
	t := reNonSlug.ReplaceAllString(strings.ToLower(s), "-")
	t = strings.Trim(t, "-")
	if t == "" {
		return FallbackSlug
	}
	return t
}

// SanitizeID keeps an identifier that is already URL and filesystem safe
// (a leading letter or digit followed by letters, digits, ".", "_" or "-",
// case-insensitively) and slugifies anything else.
func SanitizeID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return FallbackSlug
	}
	if IsSafeID(s) {
		return s
	}
	return Slugify(s)
}

// IsSafeID reports whether s would pass through SanitizeID unchanged.
func IsSafeID(s string) bool { return reSafeID.MatchString(s) }

// SanitizeFilename makes name legal on every filesystem the site is built
// on (Windows included) while keeping it readable.
func SanitizeFilename(name string) string {
	s := strings.TrimSpace(name)
	s = reIllegalFile.ReplaceAllString(s, "_")
	s = reWhitespace.ReplaceAllString(s, "_")
	s = strings.Trim(s, "._ ")
	if s == "" {
		return FallbackSlug
	}
	return s
}
