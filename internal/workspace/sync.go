package workspace

import (
	"path/filepath"

	"github.com/lunarepo/lunar/internal/errors"
	"github.com/lunarepo/lunar/internal/project"
)

// SyncProject propagates a project's dependency edges into its generated
// manifests. Both mutations are additive and idempotent: entries are added
// only when absent, and a manifest is written back only when something
// actually changed. Returns whether any manifest changed.
func (w *Workspace) SyncProject(p *project.Project) (bool, error) {
	changed := false

	// The root compiler manifest references every synced project by source
	// path.
	if w.Config.Node.SyncTypescriptProjectReferences && w.RootTSConfig != nil {
		if w.RootTSConfig.AddProjectRef(p.Source) {
			changed = true
		}
	}

	for _, depID := range p.DependsOn {
		dep, ok := w.Projects[depID]
		if !ok {
			return changed, errors.NewProjectError(depID, errors.ErrUnknownProject)
		}

		// A dependency without a declared package name contributes nothing
		// to the package manifest.
		if w.Config.Node.SyncProjectWorkspaceDependencies && p.PackageJSON != nil {
			if name := dep.PackageName(); name != "" {
				if p.PackageJSON.AddDependency(name, w.Toolchain.PackageManager.WorkspaceDependencyRange()) {
					changed = true
				}
			}
		}

		if w.Config.Node.SyncTypescriptProjectReferences && p.TSConfigJSON != nil {
			if p.TSConfigJSON.AddProjectRef(w.referencePath(dep, p)) {
				changed = true
			}
		}
	}

	if p.PackageJSON != nil {
		if err := p.PackageJSON.Save(); err != nil {
			return changed, errors.NewProjectError(p.ID, err)
		}
	}
	if p.TSConfigJSON != nil {
		if err := p.TSConfigJSON.Save(); err != nil {
			return changed, errors.NewProjectError(p.ID, err)
		}
	}
	if w.RootTSConfig != nil {
		if err := w.RootTSConfig.Save(); err != nil {
			return changed, err
		}
	}

	if changed && w.logger != nil {
		w.logger.WithProject(p.ID).Info("synced project manifests")
	}

	return changed, nil
}

// SyncAll syncs every project in identifier order. Returns the number of
// projects whose manifests changed.
func (w *Workspace) SyncAll() (int, error) {
	synced := 0
	for _, id := range w.ProjectIDs() {
		changed, err := w.SyncProject(w.Projects[id])
		if err != nil {
			return synced, err
		}
		if changed {
			synced++
		}
	}
	return synced, nil
}

// referencePath computes a compiler reference path: the dependent project's
// root relative to the dependency's root, in slash form. Falls back to "."
// when no relative path exists.
func (w *Workspace) referencePath(dep, p *project.Project) string {
	rel, err := filepath.Rel(dep.Root, p.Root)
	if err != nil {
		return "."
	}
	return filepath.ToSlash(rel)
}
