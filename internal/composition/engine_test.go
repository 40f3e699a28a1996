package composition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amruth-sn/anvil/internal/config"
)

const fixtureTemplateYAML = `name: saas-starter
description: Fullstack SaaS starter
version: 1.0.0
variables:
  - name: project_name
    type:
      type: string
      min_length: 1
    prompt: What is your project named?
    required: true
services:
  - name: Authentication
    category: auth
    prompt: Which auth provider?
    options: [clerk, auth0, none]
    required: true
  - name: Payments
    category: payments
    prompt: Which payments provider?
    options: [stripe, none]
composition:
  file_merging_strategy: merge
  conditional_files:
    - path: middleware.ts
      condition: services.auth == 'clerk'
service_combinations:
  - name: indie-stack
    description: Solo developer stack
    services:
      - category: auth
        provider: clerk
`

const fixtureClerkYAML = `name: clerk
description: Clerk authentication
version: 1.0.0
category: auth
dependencies:
  npm:
    - "@clerk/nextjs@^5.0.0"
    - lodash
environment_variables:
  - name: CLERK_SECRET_KEY
    description: Secret key
    required: true
  - name: NEXT_PUBLIC_CLERK_PUBLISHABLE_KEY
    description: Publishable key
    required: true
`

const fixtureAuth0YAML = `name: auth0
description: Auth0 authentication
version: 1.0.0
category: auth
environment_variables:
  - name: AUTH0_SECRET
    description: Secret
    required: true
`

// newFixtureEngine lays out a templates root and shared services root in a
// temp directory and returns an engine over them.
func newFixtureEngine(t *testing.T) *Engine {
	t.Helper()
	root := t.TempDir()
	templatesRoot := filepath.Join(root, "templates")
	sharedRoot := filepath.Join(templatesRoot, "shared")

	write := func(rel, content string) {
		t.Helper()
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	write("templates/saas-starter/anvil.yaml", fixtureTemplateYAML)
	write("templates/saas-starter/README.md", "# SaaS Starter\n")
	write("templates/saas-starter/config.json.tmpl", `{"name": "{{ .project_name }}"}`)
	write("templates/saas-starter/package.json", `{"name": "saas-starter", "dependencies": {"react": "^18.0.0"}}`)
	write("templates/saas-starter/middleware.ts", "export const middleware = true\n")

	write("templates/shared/auth/clerk/anvil.yaml", fixtureClerkYAML)
	write("templates/shared/auth/clerk/src/auth.ts", "export const provider = 'clerk'\n")
	write("templates/shared/auth/clerk/package.json", `{"dependencies": {"@clerk/nextjs": "^5.0.0"}}`)

	write("templates/shared/auth/auth0/anvil.yaml", fixtureAuth0YAML)
	write("templates/shared/auth/auth0/src/auth.ts", "export const provider = 'auth0'\n")

	return New(templatesRoot, sharedRoot)
}

func clerkSelection() ServiceSelection {
	return ServiceSelection{Category: config.CategoryAuth, Provider: "clerk"}
}

func fileByPath(t *testing.T, composed *ComposedTemplate, path string) ComposedFile {
	t.Helper()
	for _, f := range composed.Files {
		if f.Path == path {
			return f
		}
	}
	t.Fatalf("no composed file at %s", path)
	return ComposedFile{}
}

func TestComposeTemplate(t *testing.T) {
	engine := newFixtureEngine(t)

	composed, err := engine.ComposeTemplate("saas-starter", []ServiceSelection{clerkSelection()})
	require.NoError(t, err)

	// Output is sorted by path.
	for i := 1; i < len(composed.Files); i++ {
		assert.Less(t, composed.Files[i-1].Path, composed.Files[i].Path)
	}

	// Files without the marker suffix round-trip byte for byte.
	readme := fileByPath(t, composed, "README.md")
	assert.Equal(t, "# SaaS Starter\n", readme.Content)
	assert.False(t, readme.IsTemplate)

	// The marker suffix is stripped; content is rendered later.
	cfg := fileByPath(t, composed, "config.json")
	assert.True(t, cfg.IsTemplate)
	assert.Contains(t, cfg.Content, "{{ .project_name }}")

	// Conflicting package.json files merged structurally.
	pkg := fileByPath(t, composed, "package.json")
	assert.Equal(t, SourceMerged, pkg.Source.Kind)
	assert.Contains(t, pkg.Content, "react")
	assert.Contains(t, pkg.Content, "@clerk/nextjs")

	// Conditional file kept because auth == clerk.
	fileByPath(t, composed, "middleware.ts")
	// Service file carried over with service provenance.
	auth := fileByPath(t, composed, "src/auth.ts")
	assert.Equal(t, SourceService, auth.Source.Kind)

	// Dependencies aggregated and parsed.
	require.Len(t, composed.MergedDependencies.NPM, 2)
	assert.Equal(t, NPMDependency{Name: "@clerk/nextjs", Version: "^5.0.0"}, composed.MergedDependencies.NPM[0])
	assert.Equal(t, NPMDependency{Name: "lodash", Version: "^1.0.0"}, composed.MergedDependencies.NPM[1])

	// Environment variables keep declaration order.
	require.Len(t, composed.EnvironmentVariables, 2)
	assert.Equal(t, "CLERK_SECRET_KEY", composed.EnvironmentVariables[0].Name)

	// Service context exports.
	info, ok := composed.ServiceContext.Services["auth"]
	require.True(t, ok)
	assert.Equal(t, "clerk", info.Provider)
	assert.Equal(t, true, info.Exports["has_auth"])
	assert.Equal(t, "clerk", info.Exports["auth_provider"])
	assert.Equal(t, "NEXT_PUBLIC_CLERK_PUBLISHABLE_KEY", info.Exports["public_auth_key_name"])
	assert.Equal(t, true, composed.ServiceContext.Shared["has_any_auth"])
	assert.Equal(t, false, composed.ServiceContext.Shared["has_any_database"])
	assert.Equal(t, 1, composed.ServiceContext.Shared["service_count"])
}

func TestComposeTemplateDeterministic(t *testing.T) {
	engine := newFixtureEngine(t)

	first, err := engine.ComposeTemplate("saas-starter", []ServiceSelection{clerkSelection()})
	require.NoError(t, err)
	second, err := engine.ComposeTemplate("saas-starter", []ServiceSelection{clerkSelection()})
	require.NoError(t, err)

	assert.Equal(t, first.Files, second.Files)
	assert.Equal(t, first.MergedDependencies, second.MergedDependencies)
	assert.Equal(t, first.ServiceContext, second.ServiceContext)
}

func TestComposeTemplateNotFound(t *testing.T) {
	engine := newFixtureEngine(t)

	_, err := engine.ComposeTemplate("no-such-template", nil)
	var notFound *TemplateNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "no-such-template", notFound.Name)
}

func TestComposeMissingRequiredService(t *testing.T) {
	engine := newFixtureEngine(t)

	_, err := engine.ComposeTemplate("saas-starter", nil)
	var compErr *CompositionError
	require.ErrorAs(t, err, &compErr)
	assert.Contains(t, compErr.Reason, "auth")
}

func TestComposeRejectsMultipleAuthProviders(t *testing.T) {
	engine := newFixtureEngine(t)

	_, err := engine.ComposeTemplate("saas-starter", []ServiceSelection{
		{Category: config.CategoryAuth, Provider: "clerk"},
		{Category: config.CategoryAuth, Provider: "auth0"},
	})
	var compErr *CompositionError
	require.ErrorAs(t, err, &compErr)
	assert.Contains(t, compErr.Reason, "clerk")
	assert.Contains(t, compErr.Reason, "auth0")
}

func TestComposeRejectsUnknownProvider(t *testing.T) {
	engine := newFixtureEngine(t)

	_, err := engine.ComposeTemplate("saas-starter", []ServiceSelection{
		{Category: config.CategoryAuth, Provider: "github"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "github")
}

func TestComposeRejectsUndeclaredCategory(t *testing.T) {
	engine := newFixtureEngine(t)

	_, err := engine.ComposeTemplate("saas-starter", []ServiceSelection{
		clerkSelection(),
		{Category: config.CategoryDatabase, Provider: "neon"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database")
}

func TestComposeDropsConditionalFile(t *testing.T) {
	engine := newFixtureEngine(t)

	composed, err := engine.ComposeTemplate("saas-starter", []ServiceSelection{
		{Category: config.CategoryAuth, Provider: "auth0"},
	})
	require.NoError(t, err)

	for _, f := range composed.Files {
		assert.NotEqual(t, "middleware.ts", f.Path, "conditional file dropped when auth != clerk")
	}
}

func TestComposeMinVersionGate(t *testing.T) {
	engine := newFixtureEngine(t)

	manifest := `name: future
description: Needs a newer engine
version: 1.0.0
min_anvil_version: 99.0.0
`
	dir := filepath.Join(engine.templatesRoot, "future")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ManifestFilename), []byte(manifest), 0644))

	_, err := engine.ComposeTemplate("future", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "99.0.0")
}

func TestSelectionsForCombination(t *testing.T) {
	m, err := config.ParseTemplateBytes([]byte(fixtureTemplateYAML))
	require.NoError(t, err)

	selections, err := SelectionsForCombination(m, "indie-stack")
	require.NoError(t, err)
	require.Len(t, selections, 1)
	assert.Equal(t, config.CategoryAuth, selections[0].Category)
	assert.Equal(t, "clerk", selections[0].Provider)

	_, err = SelectionsForCombination(m, "enterprise")
	require.Error(t, err)
}
