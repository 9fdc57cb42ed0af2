package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestPackageJSONName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	writeFile(t, path, `{"name": "@lunar/web", "version": "1.0.0"}`)

	pkg, err := LoadPackageJSON(path)
	if err != nil {
		t.Fatalf("LoadPackageJSON failed: %v", err)
	}
	if pkg.Name() != "@lunar/web" {
		t.Errorf("Name() = %q, want @lunar/web", pkg.Name())
	}
}

func TestPackageJSONAddDependency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	writeFile(t, path, `{"name": "web", "dependencies": {"react": "^18.0.0"}}`)

	pkg, err := LoadPackageJSON(path)
	if err != nil {
		t.Fatalf("LoadPackageJSON failed: %v", err)
	}

	if !pkg.AddDependency("@lunar/shared", "workspace:*") {
		t.Fatalf("AddDependency returned false for new dependency")
	}
	if !pkg.Dirty() {
		t.Errorf("document should be dirty after mutation")
	}

	// Second add of the same key is a no-op.
	if pkg.AddDependency("@lunar/shared", "workspace:*") {
		t.Errorf("AddDependency returned true for existing dependency")
	}

	if err := pkg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if pkg.Dirty() {
		t.Errorf("document should be clean after save")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	deps := gjson.GetBytes(data, "dependencies").Map()
	if deps["react"].String() != "^18.0.0" {
		t.Errorf("existing dependency lost: %v", deps)
	}
	if deps["@lunar/shared"].String() != "workspace:*" {
		t.Errorf("new dependency missing: %v", deps)
	}
}

func TestPackageJSONAddDependencyCreatesMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	writeFile(t, path, `{"name": "web"}`)

	pkg, err := LoadPackageJSON(path)
	if err != nil {
		t.Fatalf("LoadPackageJSON failed: %v", err)
	}
	if !pkg.AddDependency("shared", "*") {
		t.Fatalf("AddDependency returned false")
	}
	if !pkg.HasDependency("shared") {
		t.Errorf("dependency not visible after add")
	}
}

func TestPackageJSONEscapesDottedNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	writeFile(t, path, `{"name": "web", "dependencies": {}}`)

	pkg, err := LoadPackageJSON(path)
	if err != nil {
		t.Fatalf("LoadPackageJSON failed: %v", err)
	}
	if !pkg.AddDependency("lodash.merge", "*") {
		t.Fatalf("AddDependency returned false")
	}

	// The dotted name must be a single key, not a nested object.
	deps := gjson.GetBytes(pkg.raw, "dependencies").Map()
	if _, ok := deps["lodash.merge"]; !ok {
		t.Errorf("dotted dependency name mangled: %v", deps)
	}
}

func TestPackageJSONMissingFile(t *testing.T) {
	_, err := LoadPackageJSON(filepath.Join(t.TempDir(), "package.json"))
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestPackageJSONInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	writeFile(t, path, `{not json`)

	if _, err := LoadPackageJSON(path); err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("expected invalid JSON error, got %v", err)
	}
}

func TestTSConfigAddProjectRef(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsconfig.json")
	writeFile(t, path, `{"compilerOptions": {"composite": true}, "references": [{"path": "../shared"}]}`)

	tsconfig, err := LoadTSConfigJSON(path)
	if err != nil {
		t.Fatalf("LoadTSConfigJSON failed: %v", err)
	}

	if !tsconfig.AddProjectRef("../utils") {
		t.Fatalf("AddProjectRef returned false for new reference")
	}
	if tsconfig.AddProjectRef("../utils") {
		t.Errorf("AddProjectRef returned true for existing reference")
	}
	if tsconfig.AddProjectRef("../shared") {
		t.Errorf("AddProjectRef returned true for pre-existing reference")
	}

	want := []string{"../shared", "../utils"}
	if got := tsconfig.References(); !reflect.DeepEqual(got, want) {
		t.Errorf("References() = %v, want %v", got, want)
	}

	if err := tsconfig.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !gjson.GetBytes(data, "compilerOptions.composite").Bool() {
		t.Errorf("unrelated keys disturbed: %s", data)
	}
}

func TestTSConfigAddProjectRefCreatesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsconfig.json")
	writeFile(t, path, `{}`)

	tsconfig, err := LoadTSConfigJSON(path)
	if err != nil {
		t.Fatalf("LoadTSConfigJSON failed: %v", err)
	}
	if !tsconfig.AddProjectRef("apps/web") {
		t.Fatalf("AddProjectRef returned false")
	}
	want := []string{"apps/web"}
	if got := tsconfig.References(); !reflect.DeepEqual(got, want) {
		t.Errorf("References() = %v, want %v", got, want)
	}
}

func TestSaveCleanDocumentIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsconfig.json")
	writeFile(t, path, `{"references": []}`)

	tsconfig, err := LoadTSConfigJSON(path)
	if err != nil {
		t.Fatalf("LoadTSConfigJSON failed: %v", err)
	}

	// Removing the file proves Save never touches disk for a clean document.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := tsconfig.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("clean Save wrote to disk")
	}
}
