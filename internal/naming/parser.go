package naming

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Language codes produced by the token parser.
const (
	CodeEN = "en"
	CodeKO = "ko"
)

// Tokens must be whole "_" / "-" delimited segments of the stem so that
// words like "green" or "token" never match.
var (
	reTokenEN = regexp.MustCompile(`(^|[_-])(en|eng|english)([_-]|$)`)
	reTokenKO = regexp.MustCompile(`(^|[_-])(ko|kr|kor|korean)([_-]|$)`)
)

// catalogExtensions are stripped before token matching.
var catalogExtensions = []string{".yaml", ".yml"}

// Stem returns the filename without directory and catalog extension.
func Stem(filename string) string {
	base := filepath.Base(filename)
	lower := strings.ToLower(base)
	for _, ext := range catalogExtensions {
		if strings.HasSuffix(lower, ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}

// ParseLanguageToken inspects a catalog filename for a standalone language
// segment. It returns CodeEN or CodeKO, or "" when the name carries no
// token. English tokens are tested first.
//
//	report_en_v2.yaml -> en
//	guide-kr-2024.yml -> ko
//	green.yaml        -> ""
func ParseLanguageToken(filename string) string {
	stem := strings.ToLower(NFC(Stem(filename)))
	if reTokenEN.MatchString(stem) {
		return CodeEN
	}
	if reTokenKO.MatchString(stem) {
		return CodeKO
	}
	return ""
}

// NormalizeLanguageCode maps a free-form language value (as written in a
// "language" or "lang" field) onto CodeEN or CodeKO. Unrecognized values
// return "".
func NormalizeLanguageCode(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "en", "eng", "english":
		return CodeEN
	case "ko", "kr", "kor", "korean":
		return CodeKO
	}
	return ""
}
