package composition

import (
	"os"
	"strings"

	"github.com/amruth-sn/anvil/internal/config"
)

// validateSelections checks a proposed selection set against the template's
// service rules. Each check produces a distinct failure; the first failure
// aborts composition before any file is collected.
func (e *Engine) validateSelections(manifest *config.TemplateManifest, selections []ServiceSelection) error {
	// Required services must have a matching selection.
	for _, def := range manifest.Services {
		if !def.Required {
			continue
		}
		if selectionFor(selections, def.Category) == nil {
			return compositionErrorf("required service %q (category %s) not selected", def.Name, def.Category)
		}
	}

	for _, sel := range selections {
		def := manifest.Service(sel.Category)
		if def == nil {
			return compositionErrorf("service category %q not supported by template %q", sel.Category, manifest.Name)
		}
		if !def.HasOption(sel.Provider) {
			return compositionErrorf("invalid provider %q for service %q; valid options: %s",
				sel.Provider, sel.Category, strings.Join(def.Options, ", "))
		}
		dir := e.providerDir(sel.Category, sel.Provider)
		if _, err := os.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				return compositionErrorf("service files not found for %s", sel)
			}
			return &FileError{Path: dir, Err: err}
		}
	}

	// Declared conflicts between selected categories.
	for _, sel := range selections {
		def := manifest.Service(sel.Category)
		for _, conflict := range def.Conflicts {
			if selectionFor(selections, config.ServiceCategory(conflict)) != nil {
				return compositionErrorf("service conflict: %q conflicts with selected category %q", def.Name, conflict)
			}
		}
	}

	// Declared category dependencies must also be selected.
	for _, sel := range selections {
		def := manifest.Service(sel.Category)
		for _, dep := range def.Dependencies {
			if selectionFor(selections, config.ServiceCategory(dep)) == nil {
				return compositionErrorf("service %q requires category %q which is not selected", def.Name, dep)
			}
		}
	}

	if err := e.validateCompatibility(manifest, selections); err != nil {
		return err
	}

	return validateCrossService(selections)
}

// validateCompatibility checks language requirements and declared
// compatibility rules against the detected project languages and the other
// selections.
func (e *Engine) validateCompatibility(manifest *config.TemplateManifest, selections []ServiceSelection) error {
	languages := detectTemplateLanguages(manifest.Name)

	for _, sel := range selections {
		def := manifest.Service(sel.Category)
		if def != nil {
			if err := e.checkLanguages(sel, def.LanguageRequirements, languages); err != nil {
				return err
			}
			if err := e.checkRules(sel, def.CompatibilityRules, selections, languages); err != nil {
				return err
			}
		}

		providerManifest, err := e.loadProviderManifest(sel.Category, sel.Provider)
		if err != nil {
			return err
		}
		if providerManifest == nil {
			continue
		}

		reqs := providerManifest.LanguageRequirements
		if len(reqs) == 0 {
			reqs = builtinLanguageRequirements(providerManifest.Name)
		}
		if err := e.checkLanguages(sel, reqs, languages); err != nil {
			return err
		}
		if err := e.checkRules(sel, providerManifest.CompatibilityRules, selections, languages); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) checkLanguages(sel ServiceSelection, required, languages []string) error {
	for _, lang := range required {
		if !containsString(languages, lang) {
			return compositionErrorf("service %s requires %s but project languages are %s",
				sel, lang, strings.Join(languages, ", "))
		}
	}
	return nil
}

// checkRules enforces declared compatibility rules. Target services are
// named as "category" or "category/provider". Advisory rules warn instead
// of failing.
func (e *Engine) checkRules(sel ServiceSelection, rules []config.CompatibilityRule, selections []ServiceSelection, languages []string) error {
	for _, rule := range rules {
		switch rule.RuleType {
		case config.RuleRequires:
			if !targetSelected(selections, rule.TargetService) {
				return compositionErrorf("service %s requires %q which is not selected%s",
					sel, rule.TargetService, ruleMessage(rule))
			}
		case config.RuleConflictsWith:
			if targetSelected(selections, rule.TargetService) {
				return compositionErrorf("service %s conflicts with selected %q%s",
					sel, rule.TargetService, ruleMessage(rule))
			}
		case config.RuleRecommendsAgainst:
			if targetSelected(selections, rule.TargetService) {
				e.warnf("service %s recommends against %q%s", sel, rule.TargetService, ruleMessage(rule))
			}
		case config.RuleRequiresLanguage:
			if rule.Condition != "" && !containsString(languages, rule.Condition) {
				return compositionErrorf("service %s requires language %q but project languages are %s%s",
					sel, rule.Condition, strings.Join(languages, ", "), ruleMessage(rule))
			}
		case config.RuleRequiresPlatform:
			// Platform is unknown at composition time; surface as advisory.
			e.warnf("service %s declares platform requirement %q (not checked)", sel, rule.Condition)
		}
	}
	return nil
}

// validateCrossService enforces the mutually-exclusive category classes:
// at most one auth provider and at most one API pattern.
func validateCrossService(selections []ServiceSelection) error {
	if providers := providersFor(selections, config.CategoryAuth); len(providers) > 1 {
		return compositionErrorf("multiple auth providers selected: %s; only one auth provider is allowed",
			strings.Join(providers, ", "))
	}
	if providers := providersFor(selections, config.CategoryAPI); len(providers) > 1 {
		return compositionErrorf("multiple API patterns selected: %s; only one API pattern is allowed",
			strings.Join(providers, ", "))
	}
	return nil
}

// detectTemplateLanguages infers the project languages from the template
// name. Fullstack templates without a language hint default to the
// TypeScript/JavaScript pair.
func detectTemplateLanguages(templateName string) []string {
	switch {
	case strings.Contains(templateName, "rust"):
		return []string{"rust"}
	case strings.Contains(templateName, "go"):
		return []string{"go"}
	case strings.Contains(templateName, "python"):
		return []string{"python"}
	}
	return []string{"typescript", "javascript"}
}

// builtinLanguageRequirements covers providers whose manifests predate the
// language_requirements field.
func builtinLanguageRequirements(providerName string) []string {
	if providerName == "trpc-api" {
		return []string{"typescript"}
	}
	return nil
}

func ruleMessage(rule config.CompatibilityRule) string {
	if rule.Message == "" {
		return ""
	}
	return ": " + rule.Message
}

func selectionFor(selections []ServiceSelection, category config.ServiceCategory) *ServiceSelection {
	for i := range selections {
		if selections[i].Category == category {
			return &selections[i]
		}
	}
	return nil
}

// targetSelected matches a rule target of the form "category" or
// "category/provider" against the active selections.
func targetSelected(selections []ServiceSelection, target string) bool {
	category, provider, hasProvider := strings.Cut(target, "/")
	sel := selectionFor(selections, config.ServiceCategory(category))
	if sel == nil {
		return false
	}
	return !hasProvider || sel.Provider == provider
}

func providersFor(selections []ServiceSelection, category config.ServiceCategory) []string {
	var providers []string
	for _, sel := range selections {
		if sel.Category == category {
			providers = append(providers, sel.Provider)
		}
	}
	return providers
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
