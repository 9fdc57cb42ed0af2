package toolchain

import "context"

// YarnTool drives the yarn package manager.
type YarnTool struct{}

func (t *YarnTool) Name() string { return "yarn" }

func (t *YarnTool) LockfileName() string { return "yarn.lock" }

func (t *YarnTool) WorkspaceDependencyRange() string { return "workspace:*" }

func (t *YarnTool) InstallDependencies(ctx context.Context, dir string) (Output, error) {
	return runCommand(ctx, dir, "yarn", []string{"install"})
}

func (t *YarnTool) DedupeDependencies(ctx context.Context, dir string) (Output, error) {
	return runCommand(ctx, dir, "yarn", []string{"dedupe"})
}

func (t *YarnTool) ExecPackage(ctx context.Context, dir, pkg string, args []string) (Output, error) {
	return runCommand(ctx, dir, "yarn", append([]string{"run", pkg}, args...))
}
