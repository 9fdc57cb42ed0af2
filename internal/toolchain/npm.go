package toolchain

import "context"

// NpmTool drives the npm package manager.
type NpmTool struct{}

func (t *NpmTool) Name() string { return "npm" }

func (t *NpmTool) LockfileName() string { return "package-lock.json" }

// WorkspaceDependencyRange returns "*": npm resolves workspace siblings
// through its workspaces field, so the range stays unconstrained.
func (t *NpmTool) WorkspaceDependencyRange() string { return "*" }

func (t *NpmTool) InstallDependencies(ctx context.Context, dir string) (Output, error) {
	return runCommand(ctx, dir, "npm", []string{"install"})
}

func (t *NpmTool) DedupeDependencies(ctx context.Context, dir string) (Output, error) {
	return runCommand(ctx, dir, "npm", []string{"dedupe"})
}

func (t *NpmTool) ExecPackage(ctx context.Context, dir, pkg string, args []string) (Output, error) {
	return runCommand(ctx, dir, "npx", append([]string{"--no-install", pkg}, args...))
}
