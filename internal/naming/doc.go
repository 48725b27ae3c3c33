// Package naming provides the string-level rules shared by the catalog
// pipeline: filename language tokens, slug and identifier sanitization,
// Hangul detection, per-partition identifier collision resolution, and
// output filenames for rendered pages.
//
// Nothing here knows about catalog entries; the catalog package composes
// these helpers into the load, classify and reconcile stages.
//
// Files:
//   - parser.go      language token detection in catalog filenames
//   - slug.go        Slugify, SanitizeID, SanitizeFilename
//   - hangul.go      Hangul / English-name predicates
//   - postprocess.go separator and Unicode normalization
//   - collision.go   IDResolver ("-2", "-3" suffixes)
//   - outputpath.go  detail page filenames
package naming
