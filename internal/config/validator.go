package config

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "tasks.build.command")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// idRegex is the identifier grammar shared by project IDs, file group names
// and task names: lowercase alphanumerics with dash/underscore separators.
var idRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// IsValidID reports whether name matches the identifier grammar.
func IsValidID(name string) bool {
	return idRegex.MatchString(name)
}

// ValidPackageManagers returns the list of supported package managers.
func ValidPackageManagers() []string {
	return []string{"npm", "pnpm", "yarn"}
}
