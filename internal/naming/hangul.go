package naming

import (
	"strings"
	"unicode"
)

// Precomposed Hangul syllables (가 .. 힣).
const (
	hangulFirst = '가'
	hangulLast  = '힣'
)

func isHangulSyllable(r rune) bool { return r >= hangulFirst && r <= hangulLast }

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// ContainsHangul reports whether s has at least one Hangul syllable.
func ContainsHangul(s string) bool {
	return strings.IndexFunc(s, isHangulSyllable) >= 0
}

// StartsWithHangul reports whether the first non-space rune of s is a Hangul
// syllable. The Korean index lists these names first.
func StartsWithHangul(s string) bool {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	for _, r := range s {
		return isHangulSyllable(r)
	}
	return false
}

// IsProbablyEnglishName is the canonical-English-name predicate: any Hangul
// disqualifies the name, otherwise it needs at least one ASCII letter.
//
//	"Research Desk" -> true
//	"QA"            -> true
//	"리서치 데스크"   -> false
//	"" / "!!"       -> false
func IsProbablyEnglishName(name string) bool {
	s := strings.TrimSpace(name)
	if s == "" || ContainsHangul(s) {
		return false
	}
	return strings.IndexFunc(s, isASCIILetter) >= 0
}
