// Package config loads and validates workspace and project configuration.
// Validation happens here, once, at load time: the core packages trust that
// identifiers are well-formed and every task has a non-empty command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/spf13/viper"
)

// WorkspaceFile is the workspace configuration path, relative to the
// workspace root.
const WorkspaceFile = ".lunar/workspace.yml"

// WorkspaceConfig represents the workspace-level configuration loaded from
// .lunar/workspace.yml.
type WorkspaceConfig struct {
	// Projects maps project identifiers to their source directory, relative
	// to the workspace root.
	Projects map[string]string `mapstructure:"projects"`
	// Node configures the Node.js toolchain and manifest sync behavior.
	Node NodeConfig `mapstructure:"node"`
	// Runner configures task execution.
	Runner RunnerConfig `mapstructure:"runner"`
}

// NodeConfig controls the package manager and manifest sync behavior.
type NodeConfig struct {
	// PackageManager selects the workspace package manager: npm, pnpm or yarn.
	PackageManager string `mapstructure:"package_manager"`
	// SyncProjectWorkspaceDependencies adds dependency projects to each
	// project's package.json dependencies during sync.
	SyncProjectWorkspaceDependencies bool `mapstructure:"sync_project_workspace_dependencies"`
	// SyncTypescriptProjectReferences adds project references to tsconfig.json
	// files during sync.
	SyncTypescriptProjectReferences bool `mapstructure:"sync_typescript_project_references"`
}

// RunnerConfig controls task execution.
type RunnerConfig struct {
	// Concurrency is the maximum number of tasks running in parallel.
	// Defaults to the number of CPUs.
	Concurrency int `mapstructure:"concurrency"`
}

// SetWorkspaceDefaults registers default values on the given viper instance.
func SetWorkspaceDefaults(v *viper.Viper) {
	v.SetDefault("node.package_manager", "npm")
	v.SetDefault("node.sync_project_workspace_dependencies", true)
	v.SetDefault("node.sync_typescript_project_references", true)
	v.SetDefault("runner.concurrency", runtime.NumCPU())
}

// LoadWorkspace reads and validates the workspace configuration under root.
func LoadWorkspace(root string) (*WorkspaceConfig, error) {
	path := filepath.Join(root, filepath.FromSlash(WorkspaceFile))
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("workspace config not found at %s: %w", path, err)
	}

	v := viper.New()
	SetWorkspaceDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read workspace config: %w", err)
	}

	var cfg WorkspaceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse workspace config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Validate checks the WorkspaceConfig for invalid values and returns all
// validation errors found.
func (c *WorkspaceConfig) Validate() []ValidationError {
	var errors []ValidationError

	for id, source := range c.Projects {
		if !IsValidID(id) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("projects.%s", id),
				Value:   id,
				Message: "project identifiers must be lowercase alphanumeric with dash or underscore separators",
			})
		}
		if source == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("projects.%s", id),
				Value:   source,
				Message: "a project source path is required",
			})
		}
	}

	if !slices.Contains(ValidPackageManagers(), c.Node.PackageManager) {
		errors = append(errors, ValidationError{
			Field:   "node.package_manager",
			Value:   c.Node.PackageManager,
			Message: fmt.Sprintf("must be one of %v", ValidPackageManagers()),
		})
	}

	if c.Runner.Concurrency < 1 {
		errors = append(errors, ValidationError{
			Field:   "runner.concurrency",
			Value:   c.Runner.Concurrency,
			Message: "must be at least 1",
		})
	}

	return errors
}
