package composition

import (
	"strings"

	"github.com/amruth-sn/anvil/internal/config"
)

// buildServiceContext assembles the cross-service export map. Every
// selection gets a baseline export set plus category-specific conveniences;
// the caller's per-selection configuration overlays under config_<key> and
// wins on collision. A shared pass then computes aggregates across all
// selections.
func (e *Engine) buildServiceContext(selections []ServiceSelection) (ServiceContext, error) {
	ctx := ServiceContext{
		Services: make(map[string]ServiceInfo, len(selections)),
		Shared:   make(map[string]any),
	}

	for _, sel := range selections {
		manifest, err := e.loadProviderManifest(sel.Category, sel.Provider)
		if err != nil {
			return ServiceContext{}, err
		}

		exports := map[string]any{
			"provider": sel.Provider,
			"category": sel.Category.String(),
		}
		addCategoryExports(exports, sel, manifest)

		for key, value := range sel.Config {
			exports["config_"+key] = value
		}

		ctx.Services[sel.Category.String()] = ServiceInfo{
			Provider: sel.Provider,
			Config:   sel.Config,
			Exports:  exports,
		}
	}

	_, hasAuth := ctx.Services[config.CategoryAuth.String()]
	_, hasDatabase := ctx.Services[config.CategoryDatabase.String()]
	ctx.Shared["has_any_auth"] = hasAuth
	ctx.Shared["has_any_database"] = hasDatabase
	ctx.Shared["service_count"] = len(selections)

	return ctx, nil
}

// addCategoryExports fills in the per-category convenience exports.
func addCategoryExports(exports map[string]any, sel ServiceSelection, manifest *config.ServiceManifest) {
	switch sel.Category {
	case config.CategoryAuth:
		exports["auth_provider"] = sel.Provider
		exports["has_auth"] = true
		if manifest != nil {
			// Surface the publishable key name so templates can wire
			// client-side auth config without knowing the provider.
			for _, envVar := range manifest.EnvironmentVariables {
				if strings.Contains(envVar.Name, "PUBLISHABLE") || strings.Contains(envVar.Name, "PUBLIC") {
					exports["public_auth_key_name"] = envVar.Name
				}
			}
		}
	case config.CategoryDatabase:
		exports["database_provider"] = sel.Provider
		exports["has_database"] = true
	case config.CategoryPayments:
		exports["payments_provider"] = sel.Provider
		exports["has_payments"] = true
	case config.CategoryAI:
		exports["ai_provider"] = sel.Provider
		exports["has_ai"] = true
	case config.CategoryAPI:
		exports["api_pattern"] = sel.Provider
		exports["api_type"] = sel.Provider
		exports["has_api"] = true
	default:
		exports["has_"+sel.Category.String()] = true
	}
}
