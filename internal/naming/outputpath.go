package naming

// DetailFilename builds the filename of an entry's detail page.
//
//	("research-desk", "ko") -> "research-desk_ko.html"
func DetailFilename(id, lang string) string {
	return SanitizeFilename(id + "_" + lang + ".html")
}
