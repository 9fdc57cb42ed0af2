// Package toolchain abstracts over the workspace's JavaScript package
// manager. The workspace owns one Toolchain instance; tasks and sync jobs
// receive it as a handle rather than reaching for a global.
package toolchain

import (
	"context"

	"github.com/lunarepo/lunar/internal/errors"
)

// Output captures one finished command invocation.
type Output struct {
	// ExitCode is the command's exit code, -1 when the process could not be
	// spawned at all.
	ExitCode int
	// Stdout and Stderr hold the command's captured streams.
	Stdout string
	Stderr string
}

// Success reports whether the command exited zero.
func (o Output) Success() bool {
	return o.ExitCode == 0
}

// PackageManager is the behavior every supported package manager provides.
type PackageManager interface {
	// Name returns the manager's binary name.
	Name() string
	// LockfileName returns the manager's lockfile filename.
	LockfileName() string
	// WorkspaceDependencyRange returns the version range used when linking
	// one workspace project to another in a package manifest.
	WorkspaceDependencyRange() string
	// InstallDependencies installs workspace dependencies in dir.
	InstallDependencies(ctx context.Context, dir string) (Output, error)
	// DedupeDependencies deduplicates the installed dependency tree in dir.
	DedupeDependencies(ctx context.Context, dir string) (Output, error)
	// ExecPackage runs a package-provided binary with args in dir.
	ExecPackage(ctx context.Context, dir, pkg string, args []string) (Output, error)
}

// Toolchain binds a workspace root to its configured package manager.
type Toolchain struct {
	// WorkspaceRoot is the absolute path of the workspace.
	WorkspaceRoot string
	// PackageManager is the configured manager implementation.
	PackageManager PackageManager
}

// New creates a Toolchain for the named package manager. The name must be
// one of npm, pnpm or yarn.
func New(workspaceRoot, packageManager string) (*Toolchain, error) {
	var pm PackageManager
	switch packageManager {
	case "npm":
		pm = &NpmTool{}
	case "pnpm":
		pm = &PnpmTool{}
	case "yarn":
		pm = &YarnTool{}
	default:
		return nil, errors.ErrUnknownPackageManager
	}

	return &Toolchain{
		WorkspaceRoot: workspaceRoot,
		PackageManager: pm,
	}, nil
}

// ExecCommand runs an arbitrary command with args in dir, capturing output.
// Task commands run through here rather than through the package manager.
func (t *Toolchain) ExecCommand(ctx context.Context, dir, command string, args []string) (Output, error) {
	return runCommand(ctx, dir, command, args)
}
