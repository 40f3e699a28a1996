package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseTemplateManifest reads and validates a template manifest. Validation
// failures are fatal to the manifest but carry the path so the caller can
// render a one-line diagnostic.
func ParseTemplateManifest(path string) (*TemplateManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	m, err := ParseTemplateBytes(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// ParseTemplateBytes parses and validates a template manifest from raw YAML.
func ParseTemplateBytes(data []byte) (*TemplateManifest, error) {
	if err := validateAgainstSchema(templateSchemaName, data); err != nil {
		return nil, err
	}

	// First pass: node decode to capture line numbers for diagnostics.
	var rootNode yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&rootNode); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	lineMap := make(map[string]int)
	extractLineNumbers(&rootNode, "", lineMap)

	// Second pass: strict decode to catch unknown or misspelled fields.
	var m TemplateManifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing manifest (check for unknown/misspelled fields): %w", err)
	}

	// The only default injected on parse; everything else round-trips as
	// written.
	if m.MinAnvilVersion == "" {
		m.MinAnvilVersion = DefaultMinAnvilVersion
	}

	if errs := validateTemplate(&m, lineMap); len(errs) > 0 {
		return nil, errs
	}
	return &m, nil
}

// ParseServiceManifest reads and validates a service provider manifest.
func ParseServiceManifest(path string) (*ServiceManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	m, err := ParseServiceBytes(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// ParseServiceBytes parses and validates a service manifest from raw YAML.
func ParseServiceBytes(data []byte) (*ServiceManifest, error) {
	if err := validateAgainstSchema(serviceSchemaName, data); err != nil {
		return nil, err
	}

	var m ServiceManifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing manifest (check for unknown/misspelled fields): %w", err)
	}

	if errs := validateService(&m); len(errs) > 0 {
		return nil, errs
	}
	return &m, nil
}

// extractLineNumbers walks the YAML node tree and records the line of every
// field path (dotted keys, numeric indices for sequences).
func extractLineNumbers(node *yaml.Node, path string, lineMap map[string]int) {
	if node == nil {
		return
	}

	if path != "" {
		lineMap[path] = node.Line
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) > 0 {
			extractLineNumbers(node.Content[0], path, lineMap)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			childPath := key
			if path != "" {
				childPath = path + "." + key
			}
			extractLineNumbers(node.Content[i+1], childPath, lineMap)
		}
	case yaml.SequenceNode:
		for i, child := range node.Content {
			extractLineNumbers(child, fmt.Sprintf("%s.%d", path, i), lineMap)
		}
	}
}

func lineOf(lineMap map[string]int, path string) int {
	if lineMap == nil {
		return 0
	}
	return lineMap[path]
}
