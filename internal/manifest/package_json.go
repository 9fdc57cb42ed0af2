// Package manifest provides in-memory representations of the generated
// manifest documents that sync mutates: package.json and tsconfig.json.
// Mutations are surgical (gjson/sjson) so unrelated keys and values survive
// a round trip, and each document tracks a dirty flag so Save only writes
// when something actually changed.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// PackageJSON is a project's package.json document.
type PackageJSON struct {
	path  string
	raw   []byte
	dirty bool
}

// LoadPackageJSON reads a package.json from disk. Returns os.ErrNotExist
// (wrapped) when the file is absent; callers treat that as "project has no
// package manifest".
func LoadPackageJSON(path string) (*PackageJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON in %s", path)
	}
	return &PackageJSON{path: path, raw: data}, nil
}

// Name returns the package name, or an empty string when none is declared.
func (p *PackageJSON) Name() string {
	return gjson.GetBytes(p.raw, "name").String()
}

// HasDependency reports whether name is already declared in dependencies.
func (p *PackageJSON) HasDependency(name string) bool {
	deps := gjson.GetBytes(p.raw, "dependencies")
	if !deps.Exists() {
		return false
	}
	found := false
	deps.ForEach(func(key, _ gjson.Result) bool {
		if key.String() == name {
			found = true
			return false
		}
		return true
	})
	return found
}

// AddDependency declares name at the given version range. Returns true if the
// document changed, false if the dependency was already present.
func (p *PackageJSON) AddDependency(name, versionRange string) bool {
	if p.HasDependency(name) {
		return false
	}

	raw, err := sjson.SetBytes(p.raw, "dependencies."+escapeKey(name), versionRange)
	if err != nil {
		return false
	}
	p.raw = raw
	p.dirty = true
	return true
}

// Dirty reports whether the document has unsaved mutations.
func (p *PackageJSON) Dirty() bool {
	return p.dirty
}

// Save persists the document if it has unsaved mutations. Saving a clean
// document is a no-op.
func (p *PackageJSON) Save() error {
	if !p.dirty {
		return nil
	}
	if err := os.WriteFile(p.path, p.raw, 0644); err != nil {
		return fmt.Errorf("failed to save %s: %w", p.path, err)
	}
	p.dirty = false
	return nil
}

// escapeKey escapes sjson path metacharacters in a JSON object key, so
// package names like "@scope/pkg.js" address a single key rather than a
// nested path.
func escapeKey(key string) string {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`)
	return replacer.Replace(key)
}
