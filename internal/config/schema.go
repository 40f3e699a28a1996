package config

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

const (
	templateSchemaName = "template.schema.json"
	serviceSchemaName  = "service.schema.json"
)

var (
	schemaOnce sync.Once
	schemaErr  error
	schemas    map[string]*jsonschema.Schema

	printer = message.NewPrinter(language.English)
)

// compileSchemas compiles the embedded JSON schemas once.
func compileSchemas() (map[string]*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiled := make(map[string]*jsonschema.Schema, 2)
		c := jsonschema.NewCompiler()
		for _, name := range []string{templateSchemaName, serviceSchemaName} {
			raw, err := schemaFS.ReadFile("schema/" + name)
			if err != nil {
				schemaErr = fmt.Errorf("reading embedded schema %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				schemaErr = fmt.Errorf("unmarshaling schema %s: %w", name, err)
				return
			}
			if err := c.AddResource(name, doc); err != nil {
				schemaErr = fmt.Errorf("adding schema resource %s: %w", name, err)
				return
			}
		}
		for _, name := range []string{templateSchemaName, serviceSchemaName} {
			s, err := c.Compile(name)
			if err != nil {
				schemaErr = fmt.Errorf("compiling schema %s: %w", name, err)
				return
			}
			compiled[name] = s
		}
		schemas = compiled
	})
	return schemas, schemaErr
}

// validateAgainstSchema checks raw manifest YAML against one of the
// embedded JSON schemas before the typed decode runs, so structural
// problems surface with field paths instead of decode errors.
func validateAgainstSchema(schemaName string, data []byte) error {
	compiled, err := compileSchemas()
	if err != nil {
		return err
	}
	schema := compiled[schemaName]

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	raw = normalizeYAML(raw)

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("converting manifest to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("preparing manifest for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	return schemaIssues(ve)
}

// schemaIssues flattens a jsonschema error tree into ValidationErrors.
func schemaIssues(ve *jsonschema.ValidationError) ValidationErrors {
	var errs ValidationErrors
	collectSchemaIssues(ve, &errs)
	if len(errs) == 0 {
		errs = append(errs, ValidationError{Field: "manifest", Message: ve.Error()})
	}
	return errs
}

func collectSchemaIssues(ve *jsonschema.ValidationError, errs *ValidationErrors) {
	if len(ve.Causes) == 0 {
		field := strings.Join(ve.InstanceLocation, ".")
		if field == "" {
			field = "manifest"
		}
		msg := ve.Error()
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}
		*errs = append(*errs, ValidationError{Field: field, Message: msg})
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaIssues(cause, errs)
	}
}

// normalizeYAML converts YAML-decoded values into JSON-compatible types.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}
