package project

import (
	"github.com/lunarepo/lunar/internal/errors"
	"github.com/lunarepo/lunar/internal/fsys"
)

// FileGroup is a named, ordered set of glob patterns scoped to a project
// root. The derived views resolve lazily on every call; the root and
// patterns are immutable after construction so repeated calls against an
// unchanged filesystem return the same lists.
type FileGroup struct {
	// Name is the group's identifier, unique within its project.
	Name string

	patterns []string
	root     string
}

// NewFileGroup creates a FileGroup rooted at the given project root.
func NewFileGroup(name string, patterns []string, root string) *FileGroup {
	return &FileGroup{Name: name, patterns: patterns, root: root}
}

// Dirs resolves the group's patterns to matching directories, in pattern
// order then match order. Fails with a NoGlobs error when nothing matches.
func (fg *FileGroup) Dirs() ([]string, error) {
	return fg.expand(true)
}

// Files resolves the group's patterns to matching files, in pattern order
// then match order. Fails with a NoGlobs error when nothing matches.
func (fg *FileGroup) Files() ([]string, error) {
	return fg.expand(false)
}

// Globs returns the raw glob patterns without touching the filesystem.
// Unlike the other views it never fails.
func (fg *FileGroup) Globs() []string {
	return fg.patterns
}

// Root returns the deepest directory common to everything the group matches.
// Directories count as themselves, files as their parent directory; matches
// directly under the project root don't narrow the result. Fails with a
// NoGlobs error when the group matches nothing at all.
func (fg *FileGroup) Root() (string, error) {
	entries, err := fsys.Expand(fg.root, fg.patterns)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errors.NewNoGlobs(fg.Name)
	}

	var candidates []string
	for _, entry := range entries {
		dir := entry.Path
		if !entry.Dir {
			dir = parentDir(entry.Path)
		}
		if dir != "." {
			candidates = append(candidates, dir)
		}
	}
	if len(candidates) == 0 {
		return ".", nil
	}
	return fsys.CommonDir(candidates), nil
}

func (fg *FileGroup) expand(dirs bool) ([]string, error) {
	entries, err := fsys.Expand(fg.root, fg.patterns)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.Dir == dirs {
			paths = append(paths, entry.Path)
		}
	}
	if len(paths) == 0 {
		return nil, errors.NewNoGlobs(fg.Name)
	}
	return paths, nil
}

// parentDir returns the slash-separated parent of a relative path, or "."
// for a top-level entry.
func parentDir(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
