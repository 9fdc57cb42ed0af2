// Package workspace loads the monorepo's configuration into a live Workspace:
// every declared project with its file groups, tasks and manifests, the
// configured toolchain, and the root-level compiler manifest. It also hosts
// the sync job that propagates graph edges back into generated manifests.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lunarepo/lunar/internal/config"
	"github.com/lunarepo/lunar/internal/errors"
	"github.com/lunarepo/lunar/internal/graph"
	"github.com/lunarepo/lunar/internal/logging"
	"github.com/lunarepo/lunar/internal/manifest"
	"github.com/lunarepo/lunar/internal/project"
	"github.com/lunarepo/lunar/internal/toolchain"
)

// Workspace is the loaded monorepo.
type Workspace struct {
	// Root is the absolute path of the workspace root.
	Root string
	// Config is the validated workspace configuration.
	Config *config.WorkspaceConfig
	// Toolchain wraps the configured package manager.
	Toolchain *toolchain.Toolchain
	// Projects maps project identifiers to loaded projects.
	Projects map[string]*project.Project
	// RootTSConfig is the workspace-level compiler-reference manifest, nil
	// when absent.
	RootTSConfig *manifest.TSConfigJSON

	logger *logging.Logger
}

// Load reads the workspace configuration under root and loads every declared
// project. Projects load in identifier order so failures are deterministic.
func Load(root string, logger *logging.Logger) (*Workspace, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadWorkspace(absRoot)
	if err != nil {
		return nil, err
	}

	tc, err := toolchain.New(absRoot, cfg.Node.PackageManager)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(cfg.Projects))
	for id := range cfg.Projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	projects := make(map[string]*project.Project, len(ids))
	for _, id := range ids {
		source := cfg.Projects[id]
		projectCfg, err := config.LoadProject(filepath.Join(absRoot, filepath.FromSlash(source), config.ProjectFile))
		if err != nil {
			return nil, errors.NewProjectError(id, err)
		}
		p, err := project.New(id, source, absRoot, projectCfg)
		if err != nil {
			return nil, err
		}
		projects[id] = p
	}

	ws := &Workspace{
		Root:      absRoot,
		Config:    cfg,
		Toolchain: tc,
		Projects:  projects,
		logger:    logger,
	}

	if tsconfig, err := manifest.LoadTSConfigJSON(filepath.Join(absRoot, "tsconfig.json")); err == nil {
		ws.RootTSConfig = tsconfig
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	return ws, nil
}

// ParseTarget splits a "project:task" string into its parts.
func ParseTarget(target string) (projectID, taskName string, err error) {
	projectID, taskName, ok := strings.Cut(target, ":")
	if !ok || projectID == "" || taskName == "" {
		return "", "", fmt.Errorf("invalid target %q: expected project:task", target)
	}
	return projectID, taskName, nil
}

// BuildGraph constructs the task graph seeded with the given "project:task"
// targets and everything they transitively depend on.
func (w *Workspace) BuildGraph(targets []string) (*graph.Graph, error) {
	g := graph.New(w.Projects)
	for _, target := range targets {
		projectID, taskName, err := ParseTarget(target)
		if err != nil {
			return nil, err
		}
		if _, err := g.AddTarget(projectID, taskName); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ProjectIDs returns the workspace's project identifiers in sorted order.
func (w *Workspace) ProjectIDs() []string {
	ids := make([]string, 0, len(w.Projects))
	for id := range w.Projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
