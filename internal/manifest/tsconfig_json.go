package manifest

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// TSConfigJSON is a tsconfig.json document holding an ordered list of
// project references.
type TSConfigJSON struct {
	path  string
	raw   []byte
	dirty bool
}

// LoadTSConfigJSON reads a tsconfig.json from disk. Returns os.ErrNotExist
// (wrapped) when the file is absent.
func LoadTSConfigJSON(path string) (*TSConfigJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON in %s", path)
	}
	return &TSConfigJSON{path: path, raw: data}, nil
}

// References returns the paths of all declared project references, in
// document order.
func (t *TSConfigJSON) References() []string {
	var refs []string
	for _, ref := range gjson.GetBytes(t.raw, "references.#.path").Array() {
		refs = append(refs, ref.String())
	}
	return refs
}

// HasProjectRef reports whether a reference with the given path exists.
func (t *TSConfigJSON) HasProjectRef(path string) bool {
	for _, ref := range t.References() {
		if ref == path {
			return true
		}
	}
	return false
}

// AddProjectRef appends a project reference. Returns true if the document
// changed, false if the reference was already present.
func (t *TSConfigJSON) AddProjectRef(path string) bool {
	if t.HasProjectRef(path) {
		return false
	}

	raw, err := sjson.SetBytes(t.raw, "references.-1", map[string]string{"path": path})
	if err != nil {
		return false
	}
	t.raw = raw
	t.dirty = true
	return true
}

// Dirty reports whether the document has unsaved mutations.
func (t *TSConfigJSON) Dirty() bool {
	return t.dirty
}

// Save persists the document if it has unsaved mutations. Saving a clean
// document is a no-op.
func (t *TSConfigJSON) Save() error {
	if !t.dirty {
		return nil
	}
	if err := os.WriteFile(t.path, t.raw, 0644); err != nil {
		return fmt.Errorf("failed to save %s: %w", t.path, err)
	}
	t.dirty = false
	return nil
}
