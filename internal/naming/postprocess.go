package naming

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// reNameSeparators matches the separators folded into spaces before
// word-by-word translation.
var reNameSeparators = regexp.MustCompile(`[-_/]+`)

// NFC returns s in Unicode normalization form C. Catalogs synced through
// macOS carry NFD filenames and text, which would otherwise defeat Hangul
// detection and token matching.
func NFC(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// NormalizeSeparators turns runs of "-", "_" and "/" into spaces and
// collapses whitespace: "data-analyzer_pro" -> "data analyzer pro".
func NormalizeSeparators(s string) string {
	s = reNameSeparators.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
