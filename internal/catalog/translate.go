package catalog

import (
	"regexp"
	"strings"

	"github.com/cnucho/gptcatalog/internal/naming"
)

// Dictionary maps a lowercase English word to its Korean replacement.
// It is a plain value: callers build one, optionally extend it, and pass it
// to the reconciler.
type Dictionary map[string]string

// reAcronym matches tokens kept as-is (QA, GPT4, ...).
var reAcronym = regexp.MustCompile(`^[A-Z0-9]{2,}$`)

var defaultWords = map[string]string{
	"assistant":  "어시스턴트",
	"analyzer":   "분석기",
	"analysis":   "분석",
	"research":   "리서치",
	"desk":       "데스크",
	"data":       "데이터",
	"report":     "리포트",
	"writer":     "작성기",
	"builder":    "빌더",
	"catalog":    "카탈로그",
	"atlas":      "아틀라스",
	"survey":     "설문",
	"weighting":  "가중치",
	"pro":        "프로",
	"plus":       "플러스",
	"qa":         "QA",
	"qc":         "QC",
	"meta":       "메타",
	"guide":      "가이드",
	"coach":      "코치",
	"planner":    "플래너",
	"translator": "번역기",
	"summarizer": "요약기",
	"summarize":  "요약",
	"extractor":  "추출기",
	"validator":  "검증기",
	"checker":    "체커",
	"stats":      "통계",
	"statistics": "통계",
	"code":       "코드",
}

// DefaultDictionary returns a fresh copy of the built-in word table.
func DefaultDictionary() Dictionary {
	d := make(Dictionary, len(defaultWords))
	for k, v := range defaultWords {
		d[k] = v
	}
	return d
}

// Merge returns a copy of d extended with extra. Keys are lowercased and
// entries with an empty key or value are dropped.
func (d Dictionary) Merge(extra map[string]string) Dictionary {
	out := make(Dictionary, len(d)+len(extra))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range extra {
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// Translate converts an English name word by word. Separators are folded
// into spaces first; acronyms and unknown words pass through unchanged.
//
//	"Data Analyzer Pro" -> "데이터 분석기 프로"
//	"survey-QA_helper"  -> "설문 QA helper"
func (d Dictionary) Translate(nameEN string) string {
	s := naming.NormalizeSeparators(nameEN)
	if s == "" {
		return ""
	}
	tokens := strings.Split(s, " ")
	for i, tok := range tokens {
		if reAcronym.MatchString(tok) {
			continue
		}
		if ko, ok := d[strings.ToLower(tok)]; ok {
			tokens[i] = ko
		}
	}
	return strings.Join(tokens, " ")
}
