package config

// ServiceManifest is the parsed anvil.yaml of a service provider directory
// under <shared-root>/<category>/<provider>/.
type ServiceManifest struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
	Category    string `yaml:"category"`

	Dependencies *ServiceDependencies `yaml:"dependencies,omitempty"`

	EnvironmentVariables []EnvironmentVariable `yaml:"environment_variables,omitempty"`
	Files                []ServiceFile         `yaml:"files,omitempty"`
	ConfigurationPrompts []ServicePrompt       `yaml:"configuration_prompts,omitempty"`

	LanguageRequirements []string            `yaml:"language_requirements,omitempty"`
	CompatibilityRules   []CompatibilityRule `yaml:"compatibility_rules,omitempty"`
}

// ServiceDependencies lists declared package dependencies per ecosystem.
// npm, go, and python entries are bare names with an optional trailing
// @version; cargo entries map crate name to version requirement.
type ServiceDependencies struct {
	NPM    []string          `yaml:"npm,omitempty"`
	Cargo  map[string]string `yaml:"cargo,omitempty"`
	Go     []string          `yaml:"go,omitempty"`
	Python []string          `yaml:"python,omitempty"`
}

// EnvironmentVariable is a variable the generated project will need at
// runtime. Anvil aggregates these as data; it never reads them itself.
type EnvironmentVariable struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Required    bool    `yaml:"required,omitempty"`
	Default     *string `yaml:"default,omitempty"`
}

// ServiceFile documents a file the provider ships, for display purposes.
type ServiceFile struct {
	Path        string `yaml:"path"`
	Description string `yaml:"description"`
}

// ServicePromptType enumerates the input widgets a provider can request.
type ServicePromptType string

const (
	PromptText        ServicePromptType = "text"
	PromptBoolean     ServicePromptType = "boolean"
	PromptSelect      ServicePromptType = "select"
	PromptMultiSelect ServicePromptType = "multi_select"
	PromptSecret      ServicePromptType = "secret"
)

// ServicePrompt is a configuration question the provider wants answered.
// Prompting itself happens outside the engine; answers arrive as the
// free-form configuration map of a service selection.
type ServicePrompt struct {
	Name        string            `yaml:"name"`
	Prompt      string            `yaml:"prompt"`
	PromptType  ServicePromptType `yaml:"prompt_type"`
	Required    bool              `yaml:"required,omitempty"`
	Default     any               `yaml:"default,omitempty"`
	Options     []string          `yaml:"options,omitempty"`
	Description string            `yaml:"description,omitempty"`
}
