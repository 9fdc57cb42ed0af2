// Package runner executes a task graph: it walks the topological batches,
// dispatches independent tasks onto a bounded worker pool, resolves token
// placeholders immediately before spawning, and records results back onto
// the graph so downstream tasks see upstream failure.
package runner

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/lunarepo/lunar/internal/graph"
	"github.com/lunarepo/lunar/internal/logging"
	"github.com/lunarepo/lunar/internal/project"
	"github.com/lunarepo/lunar/internal/workspace"
)

// Runner executes task graphs for one workspace.
type Runner struct {
	workspace *workspace.Workspace
	logger    *logging.Logger
}

// New creates a Runner.
func New(ws *workspace.Workspace, logger *logging.Logger) *Runner {
	return &Runner{workspace: ws, logger: logger}
}

// Run executes every node of the graph in dependency order and returns the
// final report. Tasks within a batch run concurrently, bounded by the
// configured concurrency. A failed, invalid or cancelled task cancels its
// transitive dependents; unrelated tasks keep running. The only error return
// is a cyclic graph, detected before anything executes.
func (r *Runner) Run(ctx context.Context, g *graph.Graph) (*Report, error) {
	batches, err := g.TopoOrder()
	if err != nil {
		return nil, err
	}

	for _, batch := range batches {
		p := pool.New().WithMaxGoroutines(r.workspace.Config.Runner.Concurrency)
		for _, node := range batch {
			p.Go(func() {
				r.runNode(ctx, g, node)
			})
		}
		p.Wait()
	}

	return NewReport(g), nil
}

// runNode executes a single task node, unless an upstream failure already
// cancelled it.
func (r *Runner) runNode(ctx context.Context, g *graph.Graph, node int) {
	if existing := g.Result(node); existing != nil {
		return
	}

	target := g.Target(node)
	logger := r.logger
	if logger != nil {
		logger = logger.WithProject(target.ProjectID).WithTask(target.TaskName)
	}

	result := graph.NewTaskResult(node)

	proj, err := g.Project(target.ProjectID)
	if err != nil {
		result.Invalidate(err)
		g.MarkResult(result)
		return
	}
	task, err := proj.Task(target.TaskName)
	if err != nil {
		result.Invalidate(err)
		g.MarkResult(result)
		return
	}

	args, err := r.resolveTask(proj, task)
	if err != nil {
		if logger != nil {
			logger.Error("task configuration is invalid", "error", err)
		}
		result.Invalidate(err)
		g.MarkResult(result)
		return
	}

	if logger != nil {
		logger.Info("running task", "command", task.Command, "args", args)
	}

	out, err := r.workspace.Toolchain.ExecCommand(ctx, proj.Root, task.Command, args)
	result.ExitCode = out.ExitCode
	result.Stdout = out.Stdout
	result.Stderr = out.Stderr

	switch {
	case err != nil && ctx.Err() != nil:
		result.Cancel()
	case err != nil:
		// Spawn failure: the command never ran.
		result.Err = err
		result.Fail()
	case out.Success():
		result.Pass()
	default:
		result.Fail()
	}

	if logger != nil {
		logger.Info("task finished", "status", result.Status.String(), "exit_code", result.ExitCode, "duration", result.Duration().String())
	}

	g.MarkResult(result)
}

// resolveTask expands the task's token placeholders. Args feed the spawned
// command; inputs and outputs are resolved for validation so a broken token
// invalidates the task before anything runs.
func (r *Runner) resolveTask(proj *project.Project, task *project.Task) ([]string, error) {
	argsResolver := project.ForArgs(proj.FileGroups, r.logger)
	args := make([]string, 0, len(task.Args))
	for _, value := range task.Args {
		resolved, err := argsResolver.Resolve(value)
		if err != nil {
			return nil, err
		}
		args = append(args, resolved...)
	}

	inputsResolver := project.ForInputs(proj.FileGroups, r.logger)
	for _, value := range task.Inputs {
		if _, err := inputsResolver.Resolve(value); err != nil {
			return nil, err
		}
	}

	outputsResolver := project.ForOutputs(r.logger)
	for _, value := range task.Outputs {
		if _, err := outputsResolver.Resolve(value); err != nil {
			return nil, err
		}
	}

	return args, nil
}
