package catalog

import "github.com/cnucho/gptcatalog/internal/naming"

// Source of a language decision, kept for diagnostics.
type LanguageSource string

const (
	SourceFilename LanguageSource = "filename"
	SourceField    LanguageSource = "field"
	SourceDefault  LanguageSource = "default"
)

// ClassifyLanguage decides the partition for e. The order is fixed:
// a filename token, then the declared language field, then English.
// File content is never inspected.
func ClassifyLanguage(e *Entry, filename string) Language {
	lang, _ := Classify(e, filename)
	return lang
}

// Classify is ClassifyLanguage that also reports which rule decided.
func Classify(e *Entry, filename string) (Language, LanguageSource) {
	if code := naming.ParseLanguageToken(filename); code != "" {
		return Language(code), SourceFilename
	}
	if code := naming.NormalizeLanguageCode(e.DeclaredLanguage); code != "" {
		return Language(code), SourceField
	}
	return LangEN, SourceDefault
}
