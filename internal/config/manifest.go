// Package config defines the manifest model for templates and service
// providers, and validates parsed manifests before composition runs.
package config

// ManifestFilename is the manifest file name expected at the root of every
// template and service provider directory.
const ManifestFilename = "anvil.yaml"

// TemplateSuffix marks a file as renderable template source. The suffix is
// stripped from the final path segment when computing the output path
// (config.json.tmpl renders to config.json).
const TemplateSuffix = ".tmpl"

// DefaultMinAnvilVersion is injected when a manifest omits
// min_anvil_version.
const DefaultMinAnvilVersion = "0.1.0"

// TemplateManifest is the parsed anvil.yaml of a base template.
type TemplateManifest struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`

	Variables []Variable `yaml:"variables,omitempty"`
	Features  []Feature  `yaml:"features,omitempty"`
	Hooks     *Hooks     `yaml:"hooks,omitempty"`

	MinAnvilVersion string `yaml:"min_anvil_version,omitempty"`

	Services            []ServiceDefinition  `yaml:"services,omitempty"`
	Composition         *CompositionConfig   `yaml:"composition,omitempty"`
	ServiceCombinations []ServiceCombination `yaml:"service_combinations,omitempty"`
}

// Service returns the service definition for a category, if declared.
func (m *TemplateManifest) Service(category ServiceCategory) *ServiceDefinition {
	for i := range m.Services {
		if m.Services[i].Category == category {
			return &m.Services[i]
		}
	}
	return nil
}

// Combination returns the named service combination, if declared.
func (m *TemplateManifest) Combination(name string) *ServiceCombination {
	for i := range m.ServiceCombinations {
		if m.ServiceCombinations[i].Name == name {
			return &m.ServiceCombinations[i]
		}
	}
	return nil
}

// Feature is an optional capability toggle exposed to templates.
type Feature struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	EnabledWhen  string   `yaml:"enabled_when,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty"`
}

// GetFeature returns the declared feature with the given name.
func (m *TemplateManifest) GetFeature(name string) *Feature {
	for i := range m.Features {
		if m.Features[i].Name == name {
			return &m.Features[i]
		}
	}
	return nil
}

// Hooks lists commands to run around generation. Anvil parses and validates
// hooks but never executes them; execution belongs to the calling layer.
type Hooks struct {
	PreGenerate  []HookCommand `yaml:"pre_generate,omitempty"`
	PostGenerate []HookCommand `yaml:"post_generate,omitempty"`
}

// HookCommand is one command entry in a hook list.
type HookCommand struct {
	Command    string            `yaml:"command"`
	WorkingDir string            `yaml:"working_dir,omitempty"`
	Condition  string            `yaml:"condition,omitempty"`
	Env        map[string]string `yaml:"env,omitempty"`
}

// ServiceDefinition declares a service slot in a template: which category it
// fills, which providers are valid, and how it interacts with other slots.
type ServiceDefinition struct {
	Name     string          `yaml:"name"`
	Category ServiceCategory `yaml:"category"`
	Prompt   string          `yaml:"prompt"`
	Options  []string        `yaml:"options"`
	Required bool            `yaml:"required,omitempty"`
	Default  string          `yaml:"default,omitempty"`

	// Dependencies and Conflicts name other categories by their canonical
	// lowercase string.
	Dependencies []string `yaml:"dependencies,omitempty"`
	Conflicts    []string `yaml:"conflicts,omitempty"`

	LanguageRequirements []string            `yaml:"language_requirements,omitempty"`
	PlatformRequirements []string            `yaml:"platform_requirements,omitempty"`
	CompatibilityRules   []CompatibilityRule `yaml:"compatibility_rules,omitempty"`
}

// HasOption reports whether provider is a valid option for this service.
func (d *ServiceDefinition) HasOption(provider string) bool {
	for _, opt := range d.Options {
		if opt == provider {
			return true
		}
	}
	return false
}

// MergeStrategy controls how same-path files from different sources are
// combined during conflict resolution.
type MergeStrategy string

const (
	MergeStrategyAppend   MergeStrategy = "append"
	MergeStrategyMerge    MergeStrategy = "merge"
	MergeStrategyOverride MergeStrategy = "override"
	MergeStrategySkip     MergeStrategy = "skip"
)

// DefaultMergeStrategy is used when a template declares no composition
// config: structural merge for structured documents, append otherwise.
const DefaultMergeStrategy = MergeStrategyMerge

// Valid reports whether s is a known merge strategy.
func (s MergeStrategy) Valid() bool {
	switch s {
	case MergeStrategyAppend, MergeStrategyMerge, MergeStrategyOverride, MergeStrategySkip:
		return true
	}
	return false
}

// DependencyResolution is informational: it records how the template author
// expects downstream tooling to resolve merged dependency versions.
type DependencyResolution string

const (
	DependencyResolutionAuto   DependencyResolution = "auto"
	DependencyResolutionManual DependencyResolution = "manual"
	DependencyResolutionStrict DependencyResolution = "strict"
)

// CompositionConfig tunes conflict resolution and conditional inclusion.
type CompositionConfig struct {
	FileMergingStrategy  MergeStrategy        `yaml:"file_merging_strategy,omitempty"`
	DependencyResolution DependencyResolution `yaml:"dependency_resolution,omitempty"`
	ConditionalFiles     []ConditionalFile    `yaml:"conditional_files,omitempty"`
}

// Strategy returns the configured merge strategy, falling back to the
// default when unset.
func (c *CompositionConfig) Strategy() MergeStrategy {
	if c == nil || c.FileMergingStrategy == "" {
		return DefaultMergeStrategy
	}
	return c.FileMergingStrategy
}

// ConditionalFile maps an exact output path to an inclusion condition.
type ConditionalFile struct {
	Path          string `yaml:"path"`
	Condition     string `yaml:"condition"`
	SourceService string `yaml:"source_service,omitempty"`
}

// CompatibilityRuleType enumerates the kinds of declared compatibility
// rules a service definition or provider manifest may carry.
type CompatibilityRuleType string

const (
	RuleRequires          CompatibilityRuleType = "requires"
	RuleConflictsWith     CompatibilityRuleType = "conflicts_with"
	RuleRecommendsAgainst CompatibilityRuleType = "recommends_against"
	RuleRequiresLanguage  CompatibilityRuleType = "requires_language"
	RuleRequiresPlatform  CompatibilityRuleType = "requires_platform"
)

// CompatibilityRule declares a constraint between a service and another
// service (target by "category" or "category/provider") or the project
// language/platform (named in Condition).
type CompatibilityRule struct {
	RuleType      CompatibilityRuleType `yaml:"rule_type"`
	TargetService string                `yaml:"target_service,omitempty"`
	Condition     string                `yaml:"condition,omitempty"`
	Message       string                `yaml:"message,omitempty"`
}

// ServiceCombination is a named preset of service selections.
type ServiceCombination struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Services    []ServiceSpec `yaml:"services"`
	Recommended bool          `yaml:"recommended,omitempty"`
	Tags        []string      `yaml:"tags,omitempty"`
}

// ServiceSpec is one selection inside a combination.
type ServiceSpec struct {
	Category ServiceCategory `yaml:"category"`
	Provider string          `yaml:"provider"`
	Config   map[string]any  `yaml:"config,omitempty"`
}
