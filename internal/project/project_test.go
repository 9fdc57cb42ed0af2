package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lunarepo/lunar/internal/config"
	"github.com/lunarepo/lunar/internal/errors"
)

func TestNewProject(t *testing.T) {
	workspaceRoot := t.TempDir()
	source := "apps/web"
	root := filepath.Join(workspaceRoot, "apps", "web")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"name": "@lunar/web"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.ProjectConfig{
		DependsOn:  []string{"shared"},
		FileGroups: map[string][]string{"sources": {"src/**/*"}},
		Tasks: map[string]config.TaskConfig{
			"build": {Command: "tsc", Args: []string{"--build"}},
		},
	}

	p, err := New("web", source, workspaceRoot, cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if p.Source != "apps/web" {
		t.Errorf("Source = %q", p.Source)
	}
	if p.Root != root {
		t.Errorf("Root = %q, want %q", p.Root, root)
	}
	if p.PackageName() != "@lunar/web" {
		t.Errorf("PackageName = %q", p.PackageName())
	}
	if p.TSConfigJSON != nil {
		t.Errorf("TSConfigJSON should be nil when absent")
	}

	task, err := p.Task("build")
	if err != nil {
		t.Fatalf("Task failed: %v", err)
	}
	if task.Command != "tsc" {
		t.Errorf("task = %+v", task)
	}

	if _, err := p.Task("nope"); !errors.Is(err, errors.ErrUnknownTask) {
		t.Errorf("error = %v, want ErrUnknownTask", err)
	}
}

func TestNewProjectInvalidID(t *testing.T) {
	_, err := New("Bad ID", ".", t.TempDir(), &config.ProjectConfig{})
	if !errors.Is(err, errors.ErrInvalidProjectID) {
		t.Errorf("error = %v, want ErrInvalidProjectID", err)
	}
}

func TestNewProjectMissingRoot(t *testing.T) {
	_, err := New("web", "does/not/exist", t.TempDir(), &config.ProjectConfig{})
	if !errors.Is(err, errors.ErrMissingProjectRoot) {
		t.Errorf("error = %v, want ErrMissingProjectRoot", err)
	}
}

func TestProjectWithoutManifests(t *testing.T) {
	workspaceRoot := t.TempDir()
	if err := os.MkdirAll(filepath.Join(workspaceRoot, "tools"), 0755); err != nil {
		t.Fatal(err)
	}

	p, err := New("tools", "tools", workspaceRoot, &config.ProjectConfig{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if p.PackageJSON != nil {
		t.Errorf("PackageJSON should be nil when absent")
	}
	if p.PackageName() != "" {
		t.Errorf("PackageName = %q, want empty", p.PackageName())
	}
}
