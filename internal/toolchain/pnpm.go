package toolchain

import "context"

// PnpmTool drives the pnpm package manager.
type PnpmTool struct{}

func (t *PnpmTool) Name() string { return "pnpm" }

func (t *PnpmTool) LockfileName() string { return "pnpm-lock.yaml" }

func (t *PnpmTool) WorkspaceDependencyRange() string { return "workspace:*" }

func (t *PnpmTool) InstallDependencies(ctx context.Context, dir string) (Output, error) {
	return runCommand(ctx, dir, "pnpm", []string{"install"})
}

// DedupeDependencies reruns install: pnpm's store layout keeps the tree
// deduplicated, so there is no separate dedupe command to call.
func (t *PnpmTool) DedupeDependencies(ctx context.Context, dir string) (Output, error) {
	return runCommand(ctx, dir, "pnpm", []string{"install", "--prefer-offline"})
}

func (t *PnpmTool) ExecPackage(ctx context.Context, dir, pkg string, args []string) (Output, error) {
	return runCommand(ctx, dir, "pnpm", append([]string{"exec", pkg}, args...))
}
