package composition

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/amruth-sn/anvil/internal/config"
)

// NoneProvider is the sentinel option meaning "no provider for this
// category". It always heads every discovery result.
const NoneProvider = "none"

// DiscoverProviders scans <shared-root>/<category>/ for provider
// directories carrying a manifest. A missing category directory means only
// the sentinel "none" option is available; any other read failure is
// reported.
func (e *Engine) DiscoverProviders(category config.ServiceCategory) ([]string, error) {
	categoryDir := filepath.Join(e.sharedRoot, category.String())

	entries, err := os.ReadDir(categoryDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{NoneProvider}, nil
		}
		return nil, &FileError{Path: categoryDir, Err: err}
	}

	providers := []string{NoneProvider}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifestPath := filepath.Join(categoryDir, entry.Name(), config.ManifestFilename)
		if _, err := os.Stat(manifestPath); err == nil {
			providers = append(providers, entry.Name())
		}
	}

	// Keep the sentinel first; sort the real providers after it.
	sort.Strings(providers[1:])
	return providers, nil
}

// DiscoverAll maps every known category to its available providers.
func (e *Engine) DiscoverAll() (map[config.ServiceCategory][]string, error) {
	all := make(map[config.ServiceCategory][]string, len(config.Categories()))
	for _, category := range config.Categories() {
		providers, err := e.DiscoverProviders(category)
		if err != nil {
			return nil, err
		}
		all[category] = providers
	}
	return all, nil
}
