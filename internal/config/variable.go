package config

import "fmt"

// Variable kinds supported by template manifests.
const (
	VarString  = "string"
	VarBoolean = "boolean"
	VarChoice  = "choice"
	VarNumber  = "number"
)

// Variable is a user-facing input declared by a template.
type Variable struct {
	Name     string       `yaml:"name"`
	Type     VariableType `yaml:"type"`
	Prompt   string       `yaml:"prompt"`
	Default  any          `yaml:"default,omitempty"`
	Required bool         `yaml:"required,omitempty"`
}

// VariableType is the flattened union of the per-kind constraints. Kind
// selects which fields apply: string uses MinLength/MaxLength, choice uses
// Options, number uses Min/Max, boolean uses none.
type VariableType struct {
	Kind      string   `yaml:"type"`
	MinLength int      `yaml:"min_length,omitempty"`
	MaxLength *int     `yaml:"max_length,omitempty"`
	Options   []string `yaml:"options,omitempty"`
	Min       *int64   `yaml:"min,omitempty"`
	Max       *int64   `yaml:"max,omitempty"`
}

// validate checks the declaration itself (not a value) for internal
// consistency.
func (v *Variable) validate() []ValidationError {
	var errs []ValidationError

	if v.Name == "" {
		errs = append(errs, ValidationError{
			Field:   "variables",
			Message: "variable name is required",
		})
		return errs
	}

	if v.Prompt == "" {
		errs = append(errs, ValidationError{
			Field:   fmt.Sprintf("variables.%s", v.Name),
			Message: "variable must have a prompt",
		})
	}

	switch v.Type.Kind {
	case VarString:
		if v.Type.MaxLength != nil && v.Type.MinLength > *v.Type.MaxLength {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("variables.%s", v.Name),
				Message: "min_length cannot be greater than max_length",
			})
		}
	case VarChoice:
		if len(v.Type.Options) == 0 {
			errs = append(errs, ValidationError{
				Field:      fmt.Sprintf("variables.%s", v.Name),
				Message:    "choice type must have at least one option",
				Suggestion: "add an options list to the variable type",
			})
		}
	case VarNumber:
		if v.Type.Min != nil && v.Type.Max != nil && *v.Type.Min > *v.Type.Max {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("variables.%s", v.Name),
				Message: "min cannot be greater than max",
			})
		}
	case VarBoolean:
	default:
		errs = append(errs, ValidationError{
			Field:      fmt.Sprintf("variables.%s", v.Name),
			Message:    fmt.Sprintf("unknown variable type %q", v.Type.Kind),
			Suggestion: "use string, boolean, choice, or number",
		})
	}

	return errs
}

// ValidateValue checks a user-supplied value against the variable's
// declared type and bounds.
func (v *Variable) ValidateValue(value any) error {
	switch v.Type.Kind {
	case VarString:
		s, ok := value.(string)
		if !ok {
			return &VariableError{Variable: v.Name, Reason: fmt.Sprintf("expected a string, got %T", value)}
		}
		if len(s) < v.Type.MinLength {
			return &VariableError{
				Variable: v.Name,
				Reason:   fmt.Sprintf("string too short (minimum %d characters)", v.Type.MinLength),
			}
		}
		if v.Type.MaxLength != nil && len(s) > *v.Type.MaxLength {
			return &VariableError{
				Variable: v.Name,
				Reason:   fmt.Sprintf("string too long (maximum %d characters)", *v.Type.MaxLength),
			}
		}

	case VarBoolean:
		if _, ok := value.(bool); !ok {
			return &VariableError{Variable: v.Name, Reason: fmt.Sprintf("expected a boolean, got %T", value)}
		}

	case VarNumber:
		n, ok := asInt64(value)
		if !ok {
			return &VariableError{Variable: v.Name, Reason: fmt.Sprintf("expected a number, got %T", value)}
		}
		if v.Type.Min != nil && n < *v.Type.Min {
			return &VariableError{Variable: v.Name, Reason: fmt.Sprintf("number too small (minimum %d)", *v.Type.Min)}
		}
		if v.Type.Max != nil && n > *v.Type.Max {
			return &VariableError{Variable: v.Name, Reason: fmt.Sprintf("number too large (maximum %d)", *v.Type.Max)}
		}

	case VarChoice:
		s, ok := value.(string)
		if !ok {
			return &VariableError{Variable: v.Name, Reason: fmt.Sprintf("expected a string choice, got %T", value)}
		}
		for _, opt := range v.Type.Options {
			if opt == s {
				return nil
			}
		}
		return &VariableError{
			Variable: v.Name,
			Reason:   fmt.Sprintf("invalid choice %q, valid options: %v", s, v.Type.Options),
		}
	}

	return nil
}

func asInt64(value any) (int64, bool) {
	switch n := value.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// GetVariable returns the declared variable with the given name.
func (m *TemplateManifest) GetVariable(name string) *Variable {
	for i := range m.Variables {
		if m.Variables[i].Name == name {
			return &m.Variables[i]
		}
	}
	return nil
}
