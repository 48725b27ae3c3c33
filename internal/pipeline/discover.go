package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover walks catalogDir and collects the files whose slash-separated
// path relative to catalogDir matches an include glob and no exclude glob.
// Matching is also tried on the lower-cased path, so "*.yaml" picks up
// "ENTRY.YAML". Hidden directories and directories matching an exclude glob
// are pruned. Paths are returned sorted by relative path, which fixes the
// order ids are assigned in.
func Discover(catalogDir string, include, exclude []string) ([]string, error) {
	include = normalizePatterns(include)
	exclude = normalizePatterns(exclude)

	type found struct{ rel, path string }
	var files []found
	err := filepath.WalkDir(catalogDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(catalogDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") || matchesAny(exclude, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if matchesAny(include, rel) && !matchesAny(exclude, rel) {
			files = append(files, found{rel, path})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].rel < files[j].rel })
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.path
	}
	return out, nil
}

func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, filepath.ToSlash(p))
	}
	return out
}

func matchesAny(patterns []string, rel string) bool {
	lower := strings.ToLower(rel)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if lower != rel {
			if ok, err := doublestar.Match(pattern, lower); err == nil && ok {
				return true
			}
		}
	}
	return false
}
