// Package project models a single project in the workspace: its file groups,
// its tasks, the token resolver that expands task fields, and the project's
// manifest documents.
package project

import (
	"os"
	"path/filepath"

	"github.com/lunarepo/lunar/internal/config"
	"github.com/lunarepo/lunar/internal/errors"
	"github.com/lunarepo/lunar/internal/manifest"
)

// Project is one member of the workspace. Immutable after the graph is
// built, except for the manifest documents, which sync mutates in place and
// persists explicitly.
type Project struct {
	// ID is the project's unique, path-safe identifier.
	ID string
	// Root is the absolute path to the project directory.
	Root string
	// Source is the project directory relative to the workspace root.
	Source string
	// DependsOn lists the identifiers of projects this project depends on,
	// in declaration order.
	DependsOn []string
	// FileGroups maps group names to file groups.
	FileGroups map[string]*FileGroup
	// Tasks maps task names to tasks.
	Tasks map[string]*Task

	// PackageJSON is the project's package manifest, nil when absent.
	PackageJSON *manifest.PackageJSON
	// TSConfigJSON is the project's compiler-reference manifest, nil when
	// absent.
	TSConfigJSON *manifest.TSConfigJSON
}

// New creates a Project from its validated configuration. The identifier
// must match the identifier grammar and the source directory must exist.
func New(id, source, workspaceRoot string, cfg *config.ProjectConfig) (*Project, error) {
	if !config.IsValidID(id) {
		return nil, errors.NewProjectError(id, errors.ErrInvalidProjectID)
	}

	root := filepath.Join(workspaceRoot, filepath.FromSlash(source))
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, errors.NewProjectError(id, errors.ErrMissingProjectRoot)
	}

	fileGroups := make(map[string]*FileGroup, len(cfg.FileGroups))
	for name, patterns := range cfg.FileGroups {
		fileGroups[name] = NewFileGroup(name, patterns, root)
	}

	tasks := make(map[string]*Task, len(cfg.Tasks))
	for name, taskCfg := range cfg.Tasks {
		tasks[name] = newTask(name, taskCfg)
	}

	p := &Project{
		ID:         id,
		Root:       root,
		Source:     filepath.ToSlash(source),
		DependsOn:  cfg.DependsOn,
		FileGroups: fileGroups,
		Tasks:      tasks,
	}

	if pkg, err := manifest.LoadPackageJSON(filepath.Join(root, "package.json")); err == nil {
		p.PackageJSON = pkg
	} else if !os.IsNotExist(err) {
		return nil, errors.NewProjectError(id, err)
	}

	if tsconfig, err := manifest.LoadTSConfigJSON(filepath.Join(root, "tsconfig.json")); err == nil {
		p.TSConfigJSON = tsconfig
	} else if !os.IsNotExist(err) {
		return nil, errors.NewProjectError(id, err)
	}

	return p, nil
}

// Task returns the named task, or an unknown-task error.
func (p *Project) Task(name string) (*Task, error) {
	task, ok := p.Tasks[name]
	if !ok {
		return nil, errors.NewTargetError(p.ID, name, errors.ErrUnknownTask)
	}
	return task, nil
}

// PackageName returns the project's declared package name, or an empty
// string when the project has no package manifest or no name field.
func (p *Project) PackageName() string {
	if p.PackageJSON == nil {
		return ""
	}
	return p.PackageJSON.Name()
}
