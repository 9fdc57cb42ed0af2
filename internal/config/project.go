package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the per-project configuration filename, relative to the
// project root.
const ProjectFile = "lunar.yml"

// ProjectConfig represents a project's lunar.yml.
type ProjectConfig struct {
	// DependsOn lists the identifiers of projects this project depends on.
	DependsOn []string `yaml:"dependsOn"`
	// FileGroups maps group names to glob pattern lists.
	FileGroups map[string][]string `yaml:"fileGroups"`
	// Tasks maps task names to their definitions.
	Tasks map[string]TaskConfig `yaml:"tasks"`
}

// TaskConfig represents a single task definition.
type TaskConfig struct {
	// Command is the binary or package-manager script to execute. Required.
	Command string `yaml:"command"`
	// Args are the command arguments; entries may be token strings.
	Args []string `yaml:"args"`
	// Inputs are the task's input patterns; entries may be token strings.
	Inputs []string `yaml:"inputs"`
	// Outputs are the task's output patterns. Token functions are not
	// permitted here.
	Outputs []string `yaml:"outputs"`
	// DependsOn lists same-project tasks that must complete first.
	DependsOn []string `yaml:"dependsOn"`
}

// LoadProject reads and validates a project configuration file. A missing
// file yields an empty (valid) configuration, since a project may consist of
// nothing but its manifests.
func LoadProject(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ProjectConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse project config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Validate checks the ProjectConfig for invalid values and returns all
// validation errors found.
func (c *ProjectConfig) Validate() []ValidationError {
	var errors []ValidationError

	for name := range c.FileGroups {
		if !IsValidID(name) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("fileGroups.%s", name),
				Value:   name,
				Message: "file group names must be lowercase alphanumeric with dash or underscore separators",
			})
		}
	}

	for name, task := range c.Tasks {
		if !IsValidID(name) {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("tasks.%s", name),
				Value:   name,
				Message: "task names must be lowercase alphanumeric with dash or underscore separators",
			})
		}
		// Fail for both missing and empty commands
		if task.Command == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("tasks.%s.command", name),
				Value:   task.Command,
				Message: "a shell or package command is required",
			})
		}
	}

	return errors
}
