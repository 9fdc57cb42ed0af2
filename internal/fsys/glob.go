// Package fsys provides glob pattern expansion for file groups. Pattern
// matching is delegated to gobwas/glob; this package only decides which
// patterns to evaluate and how to interpret the matches.
package fsys

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Entry is a single path matched by a pattern, relative to the expansion
// root and slash-separated.
type Entry struct {
	Path string
	Dir  bool
}

// IsGlob returns true if the pattern contains glob metacharacters rather
// than being a literal path.
func IsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// Expand evaluates patterns against root, in order. Literal patterns resolve
// by stat (a missing path simply yields no entry); glob patterns resolve by
// walking root and matching each visited path. Within a pattern, matches
// follow the walk's lexical order. The root itself is never an entry.
func Expand(root string, patterns []string) ([]Entry, error) {
	var entries []Entry

	for _, pattern := range patterns {
		if !IsGlob(pattern) {
			path := filepath.Join(root, filepath.FromSlash(pattern))
			info, err := os.Stat(path)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return nil, err
			}
			entries = append(entries, Entry{Path: filepath.ToSlash(pattern), Dir: info.IsDir()})
			continue
		}

		var matchers []glob.Glob
		for _, variant := range globstarVariants(pattern) {
			matcher, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
			}
			matchers = append(matchers, matcher)
		}

		err := fs.WalkDir(os.DirFS(root), ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == "." {
				return nil
			}
			for _, matcher := range matchers {
				if matcher.Match(path) {
					entries = append(entries, Entry{Path: path, Dir: d.IsDir()})
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// globstarVariants expands a pattern into the set of gobwas patterns needed
// for conventional globstar semantics, where "**/" also matches zero path
// components. gobwas compiles "**/" to require at least one separator, so
// "**/*" alone would never match a top-level entry; each "**/" therefore
// yields one variant with the segment kept and one with it elided.
func globstarVariants(pattern string) []string {
	i := strings.Index(pattern, "**/")
	if i < 0 {
		return []string{pattern}
	}
	prefix, rest := pattern[:i], pattern[i+3:]

	var variants []string
	for _, v := range globstarVariants(rest) {
		variants = append(variants, prefix+"**/"+v, prefix+v)
	}
	return variants
}

// CommonDir returns the deepest directory shared by all of the given
// slash-separated relative paths, or "." when they share none. A path that is
// itself a directory counts as its own ancestor.
func CommonDir(paths []string) string {
	if len(paths) == 0 {
		return "."
	}

	common := strings.Split(paths[0], "/")
	for _, path := range paths[1:] {
		segments := strings.Split(path, "/")
		if len(segments) < len(common) {
			common = common[:len(segments)]
		}
		for i := range common {
			if common[i] != segments[i] {
				common = common[:i]
				break
			}
		}
	}

	if len(common) == 0 {
		return "."
	}
	return strings.Join(common, "/")
}
