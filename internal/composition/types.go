// Package composition merges a base template with selected service modules
// into one coherent file set: selection validation, file collection,
// conditional inclusion, conflict resolution, dependency aggregation, and
// cross-service context assembly.
package composition

import (
	"fmt"

	"github.com/amruth-sn/anvil/internal/config"
)

// ServiceSelection is one chosen (category, provider, configuration) triple
// supplied by the caller. Selections are ephemeral: constructed per compose
// call, never persisted.
type ServiceSelection struct {
	Category config.ServiceCategory
	Provider string
	Config   map[string]any
}

// String renders the selection as "category/provider" for diagnostics.
func (s ServiceSelection) String() string {
	return string(s.Category) + "/" + s.Provider
}

// SourceKind distinguishes where a composed file came from.
type SourceKind int

const (
	SourceBaseTemplate SourceKind = iota
	SourceService
	SourceMerged
)

// FileSource records the provenance of a composed file. Category and
// Provider are set only for SourceService.
type FileSource struct {
	Kind     SourceKind
	Category config.ServiceCategory
	Provider string
}

// BaseSource is the provenance of files collected from the base template.
func BaseSource() FileSource { return FileSource{Kind: SourceBaseTemplate} }

// ServiceSource is the provenance of files collected from a service
// provider directory.
func ServiceSource(category config.ServiceCategory, provider string) FileSource {
	return FileSource{Kind: SourceService, Category: category, Provider: provider}
}

// MergedSource is the provenance of files produced by conflict resolution.
func MergedSource() FileSource { return FileSource{Kind: SourceMerged} }

func (s FileSource) String() string {
	switch s.Kind {
	case SourceBaseTemplate:
		return "base template"
	case SourceService:
		return fmt.Sprintf("service %s/%s", s.Category, s.Provider)
	case SourceMerged:
		return "merged"
	}
	return "unknown"
}

// ComposedFile is one output file flowing through the pipeline. Created
// during collection, mutated only by conflict resolution, consumed once by
// rendering.
type ComposedFile struct {
	// Path is the output-relative path, slash-separated, with the template
	// marker suffix already stripped.
	Path string

	Content       string
	Source        FileSource
	MergeStrategy config.MergeStrategy

	// IsTemplate marks content that must pass through the renderer.
	IsTemplate bool
}

// NPMDependency is one parsed npm dependency declaration.
type NPMDependency struct {
	Name    string
	Version string
}

// Dependencies holds the merged per-ecosystem dependency declarations of
// all selected services. Lists preserve declaration order and duplicates;
// downstream package-manager tooling is expected to dedupe.
type Dependencies struct {
	NPM    []NPMDependency
	Cargo  map[string]string
	Go     []string
	Python []string
}

// Empty reports whether no ecosystem contributed any dependency.
func (d Dependencies) Empty() bool {
	return len(d.NPM) == 0 && len(d.Cargo) == 0 && len(d.Go) == 0 && len(d.Python) == 0
}

// Map flattens the merged dependencies into plain map/slice values for the
// rendering context. Empty ecosystems are omitted.
func (d Dependencies) Map() map[string]any {
	out := make(map[string]any)
	if len(d.NPM) > 0 {
		npm := make([]map[string]any, len(d.NPM))
		for i, dep := range d.NPM {
			npm[i] = map[string]any{"name": dep.Name, "version": dep.Version}
		}
		out["npm"] = npm
	}
	if len(d.Cargo) > 0 {
		cargo := make(map[string]any, len(d.Cargo))
		for name, version := range d.Cargo {
			cargo[name] = version
		}
		out["cargo"] = cargo
	}
	if len(d.Go) > 0 {
		out["go"] = append([]string(nil), d.Go...)
	}
	if len(d.Python) > 0 {
		out["python"] = append([]string(nil), d.Python...)
	}
	return out
}

// ServiceInfo is the per-selection entry of a ServiceContext.
type ServiceInfo struct {
	Provider string
	Config   map[string]any

	// Exports are the key/value facts this service publishes to rendering:
	// a fixed baseline plus category-specific conveniences, overlaid by the
	// caller's configuration under config_<key>.
	Exports map[string]any
}

// ServiceContext is the cross-service export map consumed by rendering.
// Built once per composition, immutable afterward.
type ServiceContext struct {
	// Services maps the canonical lowercase category string to the selected
	// provider's info.
	Services map[string]ServiceInfo

	// Shared holds aggregates computed across all selections.
	Shared map[string]any
}

// ComposedTemplate is the fully resolved result of one compose call.
type ComposedTemplate struct {
	Manifest             *config.TemplateManifest
	Files                []ComposedFile
	MergedDependencies   Dependencies
	EnvironmentVariables []config.EnvironmentVariable
	ServiceContext       ServiceContext
}
