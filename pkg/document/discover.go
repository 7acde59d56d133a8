package document

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Expand resolves document arguments to file paths. Arguments containing
// glob metacharacters are matched with doublestar semantics (`**` crosses
// directories); other arguments are used as given. The result is sorted
// and free of duplicates.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			add(pattern)
			continue
		}
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(out)
	return out, nil
}

// Match reports whether path matches any of patterns.
func Match(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			if pattern == path {
				return true
			}
			continue
		}
		if ok, _ := doublestar.PathMatch(pattern, path); ok {
			return true
		}
	}
	return false
}

// Exists reports whether path names a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func hasMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
