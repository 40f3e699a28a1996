package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// validateTemplate runs semantic validation over a decoded template
// manifest. Structural validation has already happened against the JSON
// schema; this layer checks the constraints a schema cannot express.
func validateTemplate(m *TemplateManifest, lineMap map[string]int) ValidationErrors {
	var errs ValidationErrors

	if m.Name == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "template name cannot be empty",
			Line:    lineOf(lineMap, "name"),
		})
	}
	if m.Description == "" {
		errs = append(errs, ValidationError{
			Field:   "description",
			Message: "template description cannot be empty",
			Line:    lineOf(lineMap, "description"),
		})
	}

	if _, err := semver.NewVersion(m.Version); err != nil {
		errs = append(errs, ValidationError{
			Field:      "version",
			Message:    fmt.Sprintf("invalid version %q", m.Version),
			Suggestion: "use a semantic version like 1.0.0",
			Line:       lineOf(lineMap, "version"),
		})
	}
	if _, err := semver.NewVersion(m.MinAnvilVersion); err != nil {
		errs = append(errs, ValidationError{
			Field:      "min_anvil_version",
			Message:    fmt.Sprintf("invalid min_anvil_version %q", m.MinAnvilVersion),
			Suggestion: "use a semantic version like 0.1.0",
			Line:       lineOf(lineMap, "min_anvil_version"),
		})
	}

	for i := range m.Variables {
		verrs := m.Variables[i].validate()
		for j := range verrs {
			verrs[j].Line = lineOf(lineMap, fmt.Sprintf("variables.%d", i))
		}
		errs = append(errs, verrs...)
	}

	declared := make(map[string]bool, len(m.Features))
	for i, f := range m.Features {
		fieldPath := fmt.Sprintf("features.%d", i)
		if f.Name == "" {
			errs = append(errs, ValidationError{
				Field:   fieldPath + ".name",
				Message: "feature name is required",
				Line:    lineOf(lineMap, fieldPath),
			})
			continue
		}
		if f.Description == "" {
			errs = append(errs, ValidationError{
				Field:   fieldPath + ".description",
				Message: fmt.Sprintf("feature %q must have a description", f.Name),
				Line:    lineOf(lineMap, fieldPath),
			})
		}
		declared[f.Name] = true
	}
	for i, f := range m.Features {
		for _, dep := range f.Dependencies {
			if !declared[dep] {
				errs = append(errs, ValidationError{
					Field:      fmt.Sprintf("features.%d.dependencies", i),
					Message:    fmt.Sprintf("feature %q depends on undeclared feature %q", f.Name, dep),
					Suggestion: "declare the dependency in the features list",
					Line:       lineOf(lineMap, fmt.Sprintf("features.%d", i)),
				})
			}
		}
	}

	errs = append(errs, validateServiceDefinitions(m, lineMap)...)
	errs = append(errs, validateCombinations(m, lineMap)...)
	errs = append(errs, validateHooks(m, lineMap)...)

	if m.Composition != nil && m.Composition.FileMergingStrategy != "" &&
		!m.Composition.FileMergingStrategy.Valid() {
		errs = append(errs, ValidationError{
			Field:      "composition.file_merging_strategy",
			Message:    fmt.Sprintf("unknown merge strategy %q", m.Composition.FileMergingStrategy),
			Suggestion: "use append, merge, override, or skip",
			Line:       lineOf(lineMap, "composition.file_merging_strategy"),
		})
	}

	return errs
}

func validateServiceDefinitions(m *TemplateManifest, lineMap map[string]int) ValidationErrors {
	var errs ValidationErrors

	seen := make(map[ServiceCategory]bool)
	for i, def := range m.Services {
		fieldPath := fmt.Sprintf("services.%d", i)
		line := lineOf(lineMap, fieldPath)

		if def.Name == "" {
			errs = append(errs, ValidationError{
				Field:   fieldPath + ".name",
				Message: "service name is required",
				Line:    line,
			})
		}
		if len(def.Options) == 0 {
			errs = append(errs, ValidationError{
				Field:      fieldPath + ".options",
				Message:    fmt.Sprintf("service %q must list at least one provider option", def.Name),
				Suggestion: "add an options list, or remove the service",
				Line:       line,
			})
		}
		if def.Default != "" && !def.HasOption(def.Default) {
			errs = append(errs, ValidationError{
				Field:   fieldPath + ".default",
				Message: fmt.Sprintf("default %q is not among the declared options", def.Default),
				Line:    line,
			})
		}
		if seen[def.Category] {
			errs = append(errs, ValidationError{
				Field:   fieldPath + ".category",
				Message: fmt.Sprintf("duplicate service category %q", def.Category),
				Line:    line,
			})
		}
		seen[def.Category] = true
	}

	return errs
}

func validateHooks(m *TemplateManifest, lineMap map[string]int) ValidationErrors {
	if m.Hooks == nil {
		return nil
	}

	var errs ValidationErrors
	check := func(phase string, cmds []HookCommand) {
		for i, cmd := range cmds {
			if cmd.Command == "" {
				fieldPath := fmt.Sprintf("hooks.%s.%d.command", phase, i)
				errs = append(errs, ValidationError{
					Field:   fieldPath,
					Message: "hook command cannot be empty",
					Line:    lineOf(lineMap, fmt.Sprintf("hooks.%s.%d", phase, i)),
				})
			}
		}
	}
	check("pre_generate", m.Hooks.PreGenerate)
	check("post_generate", m.Hooks.PostGenerate)
	return errs
}

func validateCombinations(m *TemplateManifest, lineMap map[string]int) ValidationErrors {
	var errs ValidationErrors

	for i, combo := range m.ServiceCombinations {
		fieldPath := fmt.Sprintf("service_combinations.%d", i)
		line := lineOf(lineMap, fieldPath)

		if combo.Name == "" {
			errs = append(errs, ValidationError{
				Field:   fieldPath + ".name",
				Message: "combination name is required",
				Line:    line,
			})
			continue
		}
		for _, spec := range combo.Services {
			def := m.Service(spec.Category)
			if def == nil {
				errs = append(errs, ValidationError{
					Field:   fieldPath,
					Message: fmt.Sprintf("combination %q references undeclared service category %q", combo.Name, spec.Category),
					Line:    line,
				})
				continue
			}
			if !def.HasOption(spec.Provider) {
				errs = append(errs, ValidationError{
					Field:   fieldPath,
					Message: fmt.Sprintf("combination %q selects provider %q which is not an option of service %q", combo.Name, spec.Provider, def.Name),
					Line:    line,
				})
			}
		}
	}

	return errs
}

// validateService runs semantic validation over a decoded service manifest.
func validateService(m *ServiceManifest) ValidationErrors {
	var errs ValidationErrors

	if m.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "service name cannot be empty"})
	}
	if m.Description == "" {
		errs = append(errs, ValidationError{Field: "description", Message: "service description cannot be empty"})
	}
	if _, err := semver.NewVersion(m.Version); err != nil {
		errs = append(errs, ValidationError{
			Field:      "version",
			Message:    fmt.Sprintf("invalid version %q", m.Version),
			Suggestion: "use a semantic version like 1.0.0",
		})
	}
	if _, err := ParseCategory(m.Category); err != nil {
		errs = append(errs, ValidationError{
			Field:      "category",
			Message:    err.Error(),
			Suggestion: "use one of the known categories (auth, payments, database, ...)",
		})
	}

	for i, env := range m.EnvironmentVariables {
		if env.Name == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("environment_variables.%d.name", i),
				Message: "environment variable name is required",
			})
		}
	}

	for i, prompt := range m.ConfigurationPrompts {
		fieldPath := fmt.Sprintf("configuration_prompts.%d", i)
		if prompt.Name == "" {
			errs = append(errs, ValidationError{Field: fieldPath + ".name", Message: "prompt name is required"})
		}
		switch prompt.PromptType {
		case PromptText, PromptBoolean, PromptSelect, PromptMultiSelect, PromptSecret:
		default:
			errs = append(errs, ValidationError{
				Field:      fieldPath + ".prompt_type",
				Message:    fmt.Sprintf("unknown prompt type %q", prompt.PromptType),
				Suggestion: "use text, boolean, select, multi_select, or secret",
			})
		}
		if (prompt.PromptType == PromptSelect || prompt.PromptType == PromptMultiSelect) && len(prompt.Options) == 0 {
			errs = append(errs, ValidationError{
				Field:   fieldPath + ".options",
				Message: fmt.Sprintf("prompt %q needs an options list", prompt.Name),
			})
		}
	}

	return errs
}
