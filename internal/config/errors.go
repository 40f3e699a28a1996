package config

import (
	"bytes"
	"fmt"
)

// ValidationError is a single manifest validation failure with context.
type ValidationError struct {
	Field      string // Field path (e.g., "variables.project_name")
	Message    string // What is wrong
	Suggestion string // How to fix it (optional)
	Line       int    // Line number in the YAML source (if available)
}

func (e *ValidationError) Error() string {
	var msg string
	if e.Line > 0 {
		msg = fmt.Sprintf("validation error at %s (line %d): %s", e.Field, e.Line, e.Message)
	} else {
		msg = fmt.Sprintf("validation error at %s: %s", e.Field, e.Message)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Suggestion: %s", e.Suggestion)
	}
	return msg
}

// ValidationErrors is a collection of validation errors for one manifest.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "found %d validation errors:\n", len(e))
	for i := range e {
		fmt.Fprintf(&buf, "  %d. %s\n", i+1, e[i].Error())
	}
	return buf.String()
}

// VariableError reports a user-supplied value failing a declared variable's
// type or bounds check.
type VariableError struct {
	Variable string
	Reason   string
}

func (e *VariableError) Error() string {
	return fmt.Sprintf("variable %q: %s", e.Variable, e.Reason)
}

// FeatureDependencyError reports an enabled feature whose declared
// dependency feature is not enabled.
type FeatureDependencyError struct {
	Feature    string
	Dependency string
}

func (e *FeatureDependencyError) Error() string {
	return fmt.Sprintf("feature %q requires feature %q which is not enabled", e.Feature, e.Dependency)
}
