package fsys

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// createFixture builds the files-and-dirs tree used across expansion tests:
//
//	file.ts
//	dir/other.tsx
//	dir/subdir/another.ts
func createFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	if err := os.MkdirAll(filepath.Join(root, "dir", "subdir"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"file.ts", "dir/other.tsx", "dir/subdir/another.ts"} {
		if err := os.WriteFile(filepath.Join(root, filepath.FromSlash(name)), []byte("export {}\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestIsGlob(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"src/**/*", true},
		{"*.js", true},
		{"file.ts", false},
		{"dir/subdir", false},
		{"**/*.{ts,tsx}", true},
		{"file?.ts", true},
		{"[ab].ts", true},
	}

	for _, tt := range tests {
		if got := IsGlob(tt.pattern); got != tt.want {
			t.Errorf("IsGlob(%q) = %v, want %v", tt.pattern, got, tt.want)
		}
	}
}

func TestExpandLiteralsAndGlobs(t *testing.T) {
	root := createFixture(t)

	entries, err := Expand(root, []string{"file.ts", "dir/**"})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	want := []string{"file.ts", "dir/other.tsx", "dir/subdir", "dir/subdir/another.ts"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}

	if entries[0].Dir {
		t.Errorf("file.ts reported as directory")
	}
	if !entries[2].Dir {
		t.Errorf("dir/subdir reported as file")
	}
}

func TestExpandGlobstarMatchesTopLevel(t *testing.T) {
	root := createFixture(t)

	entries, err := Expand(root, []string{"**/*.{ts,tsx}"})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	// "**/" also matches zero components, so top-level file.ts is included.
	want := []string{"dir/other.tsx", "dir/subdir/another.ts", "file.ts"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestGlobstarVariants(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"*.js", []string{"*.js"}},
		{"**/*", []string{"**/*", "*"}},
		{"src/**/*.ts", []string{"src/**/*.ts", "src/*.ts"}},
	}

	for _, tt := range tests {
		if got := globstarVariants(tt.pattern); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("globstarVariants(%q) = %v, want %v", tt.pattern, got, tt.want)
		}
	}
}

func TestExpandPreservesPatternOrder(t *testing.T) {
	root := createFixture(t)

	entries, err := Expand(root, []string{"dir/subdir/another.ts", "file.ts"})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Path != "dir/subdir/another.ts" || entries[1].Path != "file.ts" {
		t.Errorf("pattern order not preserved: %v", entries)
	}
}

func TestExpandMissingLiteralSkipped(t *testing.T) {
	root := createFixture(t)

	entries, err := Expand(root, []string{"nope.ts"})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %v", entries)
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	root := createFixture(t)
	patterns := []string{"**/*.{ts,tsx}"}

	first, err := Expand(root, patterns)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	second, err := Expand(root, patterns)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expansion not idempotent: %v vs %v", first, second)
	}
}

func TestCommonDir(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{"nested dirs", []string{"dir", "dir/subdir"}, "dir"},
		{"siblings", []string{"a/b/c", "a/b/d"}, "a/b"},
		{"no shared ancestor", []string{"a", "b"}, "."},
		{"single path", []string{"dir"}, "dir"},
		{"empty", nil, "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommonDir(tt.paths); got != tt.want {
				t.Errorf("CommonDir(%v) = %q, want %q", tt.paths, got, tt.want)
			}
		})
	}
}
