package composition

import (
	"strings"

	"github.com/amruth-sn/anvil/internal/config"
)

// defaultNPMVersion is assumed for npm dependencies declared without a
// version suffix.
const defaultNPMVersion = "^1.0.0"

// aggregateDependencies loads each selected provider's manifest and merges
// declared package dependencies and environment variables. List ecosystems
// concatenate in selection order without deduplication; downstream package
// managers dedupe. Environment variables keep their encounter order, name
// collisions included.
func (e *Engine) aggregateDependencies(selections []ServiceSelection) (Dependencies, []config.EnvironmentVariable, error) {
	var deps Dependencies
	var envVars []config.EnvironmentVariable

	for _, sel := range selections {
		manifest, err := e.loadProviderManifest(sel.Category, sel.Provider)
		if err != nil {
			return Dependencies{}, nil, err
		}
		if manifest == nil {
			continue
		}

		if d := manifest.Dependencies; d != nil {
			for _, entry := range d.NPM {
				deps.NPM = append(deps.NPM, splitNPMDependency(entry))
			}
			if len(d.Cargo) > 0 && deps.Cargo == nil {
				deps.Cargo = make(map[string]string)
			}
			for crate, version := range d.Cargo {
				// Later selections win on crate collisions.
				deps.Cargo[crate] = version
			}
			deps.Go = append(deps.Go, d.Go...)
			deps.Python = append(deps.Python, d.Python...)
		}

		envVars = append(envVars, manifest.EnvironmentVariables...)
	}

	return deps, envVars, nil
}

// splitNPMDependency splits an optional trailing @version from an npm
// dependency string. Scoped packages keep their leading @: only an internal
// @ marks a version ("@scope/pkg@^5.0.0" -> "@scope/pkg", "^5.0.0").
// Unversioned entries default to a caret range.
func splitNPMDependency(entry string) NPMDependency {
	if strings.HasPrefix(entry, "@") {
		if at := strings.LastIndex(entry[1:], "@"); at >= 0 {
			return NPMDependency{Name: entry[:at+1], Version: entry[at+2:]}
		}
	} else if at := strings.Index(entry, "@"); at >= 0 {
		return NPMDependency{Name: entry[:at], Version: entry[at+1:]}
	}
	return NPMDependency{Name: entry, Version: defaultNPMVersion}
}
