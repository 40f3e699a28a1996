package render

import (
	"github.com/amruth-sn/anvil/internal/config"
)

// Context carries the caller-supplied variables and enabled features for
// one rendering run.
type Context struct {
	variables map[string]any
	features  []string
}

// NewContext creates an empty rendering context.
func NewContext() *Context {
	return &Context{variables: make(map[string]any)}
}

// AddVariable sets a user variable.
func (c *Context) AddVariable(name string, value any) {
	c.variables[name] = value
}

// Variable returns a user variable and whether it was set.
func (c *Context) Variable(name string) (any, bool) {
	v, ok := c.variables[name]
	return v, ok
}

// AddFeature enables a feature. Enabling twice is a no-op.
func (c *Context) AddFeature(feature string) {
	if !c.HasFeature(feature) {
		c.features = append(c.features, feature)
	}
}

// HasFeature reports whether a feature is enabled.
func (c *Context) HasFeature(feature string) bool {
	for _, f := range c.features {
		if f == feature {
			return true
		}
	}
	return false
}

// Features returns the enabled features in the order they were added.
func (c *Context) Features() []string {
	return c.features
}

// Validate checks the context against a template manifest: required
// variables must be present, every provided value must satisfy its declared
// type and bounds, and every enabled feature's declared dependencies must
// also be enabled.
func (c *Context) Validate(manifest *config.TemplateManifest) error {
	for i := range manifest.Variables {
		variable := &manifest.Variables[i]
		value, provided := c.variables[variable.Name]
		if !provided {
			if variable.Required {
				return &config.VariableError{Variable: variable.Name, Reason: "required variable not provided"}
			}
			continue
		}
		if err := variable.ValidateValue(value); err != nil {
			return err
		}
	}

	for _, feature := range c.features {
		declared := manifest.GetFeature(feature)
		if declared == nil {
			continue
		}
		for _, dep := range declared.Dependencies {
			if !c.HasFeature(dep) {
				return &config.FeatureDependencyError{Feature: feature, Dependency: dep}
			}
		}
	}

	return nil
}

// data flattens the context into template-accessible values: every variable
// under its own name, the features list, and one feature_<name> boolean per
// enabled feature.
func (c *Context) data() map[string]any {
	out := make(map[string]any, len(c.variables)+len(c.features)+1)
	for name, value := range c.variables {
		out[name] = value
	}
	out["features"] = c.features
	for _, feature := range c.features {
		out["feature_"+feature] = true
	}
	return out
}
