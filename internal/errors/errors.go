// Package errors provides centralized error definitions and error handling
// utilities for the Lunar codebase. It defines domain-specific error types for
// token resolution, project loading, graph construction and the toolchain,
// plus sentinel errors and re-exports of the standard library helpers.
//
// # Usage
//
// Creating errors:
//
//	// Token errors carry the offending token text and context
//	err := errors.NewInvalidTokenContext("@dirs", "outputs")
//
//	// Project errors wrap a cause with the project identifier
//	err := errors.NewProjectError("web-app", cause)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrInvalidTokenContext) { ... }
//
//	var tokenErr *errors.TokenError
//	if errors.As(err, &tokenErr) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Token-related sentinel errors. Matched via errors.Is against TokenError
// values produced by the resolver.
var (
	// ErrInvalidTokenContext indicates a token function used in a field
	// category that does not permit it (for example @dirs in outputs).
	ErrInvalidTokenContext = New("token function not allowed in this context")
	// ErrUnknownTokenFunc indicates a token whose function name is not one of
	// dirs, files, globs or root.
	ErrUnknownTokenFunc = New("unknown token function")
	// ErrUnknownFileGroup indicates a token referencing a file group that the
	// owning project does not define.
	ErrUnknownFileGroup = New("unknown file group")
	// ErrNoGlobs indicates a file group whose patterns matched nothing when
	// at least one match was required.
	ErrNoGlobs = New("file group resolved to no paths")
)

// Project- and graph-related sentinel errors.
var (
	// ErrUnknownProject indicates a reference to a project identifier that
	// the workspace does not contain.
	ErrUnknownProject = New("unknown project")
	// ErrUnknownTask indicates a reference to a task that the project does
	// not define.
	ErrUnknownTask = New("unknown task")
	// ErrInvalidProjectID indicates a project identifier that does not match
	// the identifier grammar.
	ErrInvalidProjectID = New("invalid project identifier")
	// ErrMissingProjectRoot indicates a project source path that does not
	// exist on disk.
	ErrMissingProjectRoot = New("project root does not exist")
	// ErrCyclicDependency indicates a cycle in the task graph. Nothing is
	// scheduled when this is returned.
	ErrCyclicDependency = New("cyclic dependency detected")
)

// Toolchain-related sentinel errors.
var (
	// ErrUnknownPackageManager indicates an unsupported package manager name
	// in the workspace configuration.
	ErrUnknownPackageManager = New("unknown package manager")
)

// TokenError describes a failure while resolving a task field token. It
// carries enough structured context to produce an actionable message without
// the resolver performing any presentation formatting.
type TokenError struct {
	// Token is the literal token text, e.g. "@dirs(static)", or the token
	// label "@dirs" for context violations.
	Token string
	// Group is the referenced file group name, when relevant.
	Group string
	// Context is the resolution context label (args, inputs, outputs), when
	// relevant.
	Context string

	kind error
}

// NewInvalidTokenContext creates a TokenError for a token function used in a
// context that forbids it.
func NewInvalidTokenContext(tokenLabel, contextLabel string) *TokenError {
	return &TokenError{Token: tokenLabel, Context: contextLabel, kind: ErrInvalidTokenContext}
}

// NewUnknownTokenFunc creates a TokenError for an unrecognized token function.
func NewUnknownTokenFunc(token string) *TokenError {
	return &TokenError{Token: token, kind: ErrUnknownTokenFunc}
}

// NewUnknownFileGroup creates a TokenError for a token referencing an
// undefined file group.
func NewUnknownFileGroup(token, group string) *TokenError {
	return &TokenError{Token: token, Group: group, kind: ErrUnknownFileGroup}
}

// NewNoGlobs creates a TokenError for a file group that matched no paths.
func NewNoGlobs(group string) *TokenError {
	return &TokenError{Group: group, kind: ErrNoGlobs}
}

// Error returns the error message.
func (e *TokenError) Error() string {
	switch e.kind {
	case ErrInvalidTokenContext:
		return fmt.Sprintf("token %s is not supported in %s", e.Token, e.Context)
	case ErrUnknownTokenFunc:
		return fmt.Sprintf("unknown token function %s", e.Token)
	case ErrUnknownFileGroup:
		return fmt.Sprintf("token %s references undefined file group %q", e.Token, e.Group)
	case ErrNoGlobs:
		return fmt.Sprintf("file group %q resolved to no paths", e.Group)
	}
	return e.kind.Error()
}

// Unwrap returns the sentinel this error was created from.
func (e *TokenError) Unwrap() error {
	return e.kind
}

// ProjectError wraps an error with the identifier of the project it occurred
// in.
type ProjectError struct {
	ProjectID string
	cause     error
}

// NewProjectError creates a ProjectError wrapping cause.
func NewProjectError(projectID string, cause error) *ProjectError {
	return &ProjectError{ProjectID: projectID, cause: cause}
}

// Error returns the error message.
func (e *ProjectError) Error() string {
	return fmt.Sprintf("project %s: %v", e.ProjectID, e.cause)
}

// Unwrap returns the underlying error.
func (e *ProjectError) Unwrap() error {
	return e.cause
}

// TargetError wraps an error with the target (project:task pair) it occurred
// in. Used by the graph and runner so reports can name the exact task.
type TargetError struct {
	ProjectID string
	TaskName  string
	cause     error
}

// NewTargetError creates a TargetError wrapping cause.
func NewTargetError(projectID, taskName string, cause error) *TargetError {
	return &TargetError{ProjectID: projectID, TaskName: taskName, cause: cause}
}

// Error returns the error message.
func (e *TargetError) Error() string {
	return fmt.Sprintf("target %s:%s: %v", e.ProjectID, e.TaskName, e.cause)
}

// Unwrap returns the underlying error.
func (e *TargetError) Unwrap() error {
	return e.cause
}
