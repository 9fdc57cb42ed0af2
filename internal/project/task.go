package project

import "github.com/lunarepo/lunar/internal/config"

// Task is a named command belonging to a project. Arg, input and output
// entries may be token strings that the resolver expands at execution time.
type Task struct {
	Name    string
	Command string
	Args    []string
	Inputs  []string
	Outputs []string
	// DependsOn lists same-project tasks that must complete first.
	DependsOn []string
}

// newTask builds a Task from its validated configuration.
func newTask(name string, cfg config.TaskConfig) *Task {
	return &Task{
		Name:      name,
		Command:   cfg.Command,
		Args:      cfg.Args,
		Inputs:    cfg.Inputs,
		Outputs:   cfg.Outputs,
		DependsOn: cfg.DependsOn,
	}
}
