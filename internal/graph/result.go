package graph

import "time"

// Status is the execution state of a task node's result.
type Status int

const (
	// StatusRunning indicates the task's command is executing (or about to).
	StatusRunning Status = iota
	// StatusPassed indicates the command exited zero.
	StatusPassed
	// StatusFailed indicates a non-zero exit or a spawn failure.
	StatusFailed
	// StatusInvalid indicates the task's configuration or token resolution
	// failed before any command could be spawned. Distinct from failed: no
	// process ever ran.
	StatusInvalid
	// StatusCancelled indicates an upstream dependency failed or the run was
	// aborted before this task completed.
	StatusCancelled
)

// String returns the status name used in logs and reports.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusInvalid:
		return "invalid"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// IsTerminal returns true if this status represents a final state.
func (s Status) IsTerminal() bool {
	return s != StatusRunning
}

// TaskResult is the execution record attached to one task node. It is
// created when the node begins executing, mutated only by the node's own
// goroutine, and retained read-only for reporting afterwards.
type TaskResult struct {
	// Node is the graph index of the task this result belongs to.
	Node int
	// Status is the current execution state.
	Status Status
	// StartTime is when execution began.
	StartTime time.Time
	// EndTime is set exactly once, on the transition to a terminal status.
	EndTime *time.Time
	// ExitCode is the command's exit code; -1 until the command terminates.
	ExitCode int
	// Stdout and Stderr hold the captured output, possibly partial for
	// cancelled tasks.
	Stdout string
	Stderr string

	// Err carries the configuration or resolution error behind an invalid
	// result, for reporting.
	Err error
}

// NewTaskResult creates a running result for the given node.
func NewTaskResult(node int) *TaskResult {
	return &TaskResult{
		Node:      node,
		Status:    StatusRunning,
		StartTime: time.Now(),
		ExitCode:  -1,
	}
}

// NewCancelledResult creates an already-terminal cancelled result for a node
// that never began executing.
func NewCancelledResult(node int) *TaskResult {
	r := NewTaskResult(node)
	r.Cancel()
	return r
}

// Pass transitions the result to passed.
func (r *TaskResult) Pass() {
	r.finish(StatusPassed)
}

// Fail transitions the result to failed.
func (r *TaskResult) Fail() {
	r.finish(StatusFailed)
}

// Invalidate transitions the result to invalid, recording the error that
// prevented execution.
func (r *TaskResult) Invalidate(err error) {
	r.Err = err
	r.finish(StatusInvalid)
}

// Cancel transitions the result to cancelled. Already-terminal results are
// left untouched.
func (r *TaskResult) Cancel() {
	r.finish(StatusCancelled)
}

// finish stamps the terminal status and end time once; later transitions on
// a terminal result are ignored.
func (r *TaskResult) finish(status Status) {
	if r.Status.IsTerminal() {
		return
	}
	r.Status = status
	now := time.Now()
	r.EndTime = &now
}

// Duration returns the elapsed execution time, or the time since start for a
// result that has not terminated.
func (r *TaskResult) Duration() time.Duration {
	if r.EndTime != nil {
		return r.EndTime.Sub(r.StartTime)
	}
	return time.Since(r.StartTime)
}
