package composition

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	anvil "github.com/amruth-sn/anvil"
	"github.com/amruth-sn/anvil/internal/config"
)

// WarnFunc receives diagnostics the engine chooses not to fail on, such as
// fail-open condition evaluation and advisory compatibility rules.
type WarnFunc func(format string, args ...any)

// Engine composes base templates with selected services. One Engine may
// serve concurrent compositions: every compose call owns its own file list,
// context, and aggregates, and the engine itself holds only the two roots.
type Engine struct {
	templatesRoot string
	sharedRoot    string
	warnf         WarnFunc
}

// New creates a composition engine over a templates root and a shared
// services root.
func New(templatesRoot, sharedRoot string) *Engine {
	return &Engine{
		templatesRoot: templatesRoot,
		sharedRoot:    sharedRoot,
		warnf:         func(string, ...any) {},
	}
}

// SharedRoot returns the shared services root this engine scans.
func (e *Engine) SharedRoot() string { return e.sharedRoot }

// SetWarnFunc installs a diagnostic hook for non-fatal conditions. A nil
// hook silences warnings.
func (e *Engine) SetWarnFunc(fn WarnFunc) {
	if fn == nil {
		fn = func(string, ...any) {}
	}
	e.warnf = fn
}

// ComposeTemplate merges the named base template with the given service
// selections and returns the fully resolved file set. Validation failures
// abort before any file is collected; no partial result is ever returned.
func (e *Engine) ComposeTemplate(templateName string, selections []ServiceSelection) (*ComposedTemplate, error) {
	templateDir := filepath.Join(e.templatesRoot, templateName)
	manifestPath := filepath.Join(templateDir, config.ManifestFilename)
	if _, err := os.Stat(manifestPath); err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateNotFoundError{Name: templateName, Root: e.templatesRoot}
		}
		return nil, &FileError{Path: manifestPath, Err: err}
	}

	manifest, err := config.ParseTemplateManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	if err := checkEngineVersion(manifest.MinAnvilVersion); err != nil {
		return nil, err
	}

	if err := e.validateSelections(manifest, selections); err != nil {
		return nil, err
	}

	serviceContext, err := e.buildServiceContext(selections)
	if err != nil {
		return nil, err
	}

	files, err := e.collectBaseFiles(templateDir)
	if err != nil {
		return nil, err
	}
	for _, sel := range selections {
		serviceFiles, err := e.collectServiceFiles(sel)
		if err != nil {
			return nil, err
		}
		files = append(files, serviceFiles...)
	}

	files = e.filterFiles(files, selections, manifest.Composition)

	resolved, err := resolveConflicts(files, manifest.Composition)
	if err != nil {
		return nil, err
	}

	deps, envVars, err := e.aggregateDependencies(selections)
	if err != nil {
		return nil, err
	}

	return &ComposedTemplate{
		Manifest:             manifest,
		Files:                resolved,
		MergedDependencies:   deps,
		EnvironmentVariables: envVars,
		ServiceContext:       serviceContext,
	}, nil
}

// SelectionsForCombination expands a named service-combination preset from
// the manifest into concrete selections.
func SelectionsForCombination(manifest *config.TemplateManifest, name string) ([]ServiceSelection, error) {
	combo := manifest.Combination(name)
	if combo == nil {
		return nil, compositionErrorf("template %q declares no service combination %q", manifest.Name, name)
	}
	selections := make([]ServiceSelection, 0, len(combo.Services))
	for _, spec := range combo.Services {
		selections = append(selections, ServiceSelection{
			Category: spec.Category,
			Provider: spec.Provider,
			Config:   spec.Config,
		})
	}
	return selections, nil
}

// checkEngineVersion rejects templates that declare a minimum engine
// version newer than this build.
func checkEngineVersion(minVersion string) error {
	min, err := semver.NewVersion(minVersion)
	if err != nil {
		return fmt.Errorf("invalid min_anvil_version %q: %w", minVersion, err)
	}
	current, err := semver.NewVersion(anvil.Version)
	if err != nil {
		return fmt.Errorf("invalid engine version %q: %w", anvil.Version, err)
	}
	if current.LessThan(min) {
		return compositionErrorf("template requires anvil >= %s, this is %s", minVersion, anvil.Version)
	}
	return nil
}

// providerDir returns the on-disk directory of a provider within the
// shared services tree.
func (e *Engine) providerDir(category config.ServiceCategory, provider string) string {
	return filepath.Join(e.sharedRoot, category.String(), provider)
}

func (e *Engine) providerManifestPath(category config.ServiceCategory, provider string) string {
	return filepath.Join(e.providerDir(category, provider), config.ManifestFilename)
}

// loadProviderManifest parses a provider's manifest if one exists. A missing
// manifest returns (nil, nil): providers without manifests contribute no
// dependencies or exports but are not an error at this layer.
func (e *Engine) loadProviderManifest(category config.ServiceCategory, provider string) (*config.ServiceManifest, error) {
	path := e.providerManifestPath(category, provider)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &FileError{Path: path, Err: err}
	}
	return config.ParseServiceManifest(path)
}
