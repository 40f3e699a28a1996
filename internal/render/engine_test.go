package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amruth-sn/anvil/internal/composition"
	"github.com/amruth-sn/anvil/internal/config"
)

func testComposed(t *testing.T) *composition.ComposedTemplate {
	t.Helper()
	m, err := config.ParseTemplateBytes([]byte(`name: starter
description: SaaS starter
version: 1.0.0
variables:
  - name: project_name
    type:
      type: string
    prompt: Name?
    required: true
`))
	require.NoError(t, err)

	return &composition.ComposedTemplate{
		Manifest: m,
		Files: []composition.ComposedFile{
			{Path: "README.md", Content: "# {{ not rendered }}\n", Source: composition.BaseSource()},
			{Path: "config.json", Content: `{"name": "{{ .project_name }}", "auth": "{{ .auth_provider }}"}`,
				Source: composition.BaseSource(), IsTemplate: true},
			{Path: "scripts/setup.sh", Content: "#!/bin/sh\n", Source: composition.BaseSource()},
		},
		MergedDependencies: composition.Dependencies{
			NPM: []composition.NPMDependency{{Name: "@clerk/nextjs", Version: "^5.0.0"}},
		},
		EnvironmentVariables: []config.EnvironmentVariable{
			{Name: "CLERK_SECRET_KEY", Description: "Secret", Required: true},
		},
		ServiceContext: composition.ServiceContext{
			Services: map[string]composition.ServiceInfo{
				"auth": {
					Provider: "clerk",
					Exports: map[string]any{
						"provider":      "clerk",
						"category":      "auth",
						"auth_provider": "clerk",
						"has_auth":      true,
					},
				},
			},
			Shared: map[string]any{
				"has_any_auth":     true,
				"has_any_database": false,
				"service_count":    1,
			},
		},
	}
}

func TestProcessComposedTemplate(t *testing.T) {
	engine := NewEngine()
	ctx := NewContext()
	ctx.AddVariable("project_name", "myapp")

	processed, err := engine.ProcessComposedTemplate(testComposed(t), ctx)
	require.NoError(t, err)
	require.Len(t, processed.Files, 3)

	byPath := make(map[string]ProcessedFile)
	for _, f := range processed.Files {
		byPath[f.OutputPath] = f
	}

	assert.Equal(t, "# {{ not rendered }}\n", byPath["README.md"].Content,
		"non-template files pass through byte for byte")
	assert.Equal(t, `{"name": "myapp", "auth": "clerk"}`, byPath["config.json"].Content,
		"templates see user variables and flattened service exports")
	assert.True(t, byPath["scripts/setup.sh"].Executable)
	assert.False(t, byPath["config.json"].Executable)
}

func TestProcessComposedTemplateSharedContext(t *testing.T) {
	engine := NewEngine()
	ctx := NewContext()
	ctx.AddVariable("project_name", "myapp")

	composed := testComposed(t)
	composed.Files = []composition.ComposedFile{
		{Path: "facts.txt", IsTemplate: true, Source: composition.MergedSource(),
			Content: "{{ .template.name }}|{{ .build.generator }}|{{ .service_auth }}|" +
				"{{ .has_services }}|{{ .has_dependencies }}|{{ .has_environment_variables }}|" +
				"{{ .service_count }}|{{ .has_any_auth }}"},
	}

	processed, err := engine.ProcessComposedTemplate(composed, ctx)
	require.NoError(t, err)
	assert.Equal(t, "starter|Anvil Template Engine|clerk|true|true|true|1|true",
		processed.Files[0].Content)
}

func TestProcessComposedTemplateRenderFailure(t *testing.T) {
	engine := NewEngine()
	ctx := NewContext()
	ctx.AddVariable("project_name", "myapp")

	composed := testComposed(t)
	composed.Files = []composition.ComposedFile{
		{Path: "bad.txt", Content: "{{ .does_not_exist }}", IsTemplate: true, Source: composition.BaseSource()},
	}

	_, err := engine.ProcessComposedTemplate(composed, ctx)
	var procErr *ProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "bad.txt", procErr.Path)
}

func TestProcessTemplateDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "anvil.yaml"), []byte("name: x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go.tmpl"),
		[]byte("package {{ module_name .project_name }}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "static.txt"), []byte("static\n"), 0644))

	engine := NewEngine()
	ctx := NewContext()
	ctx.AddVariable("project_name", "MyApp")

	processed, err := engine.ProcessTemplate(dir, ctx)
	require.NoError(t, err)
	require.Len(t, processed.Files, 2, "the manifest itself is never emitted")

	byPath := make(map[string]ProcessedFile)
	for _, f := range processed.Files {
		byPath[f.OutputPath] = f
	}
	assert.Equal(t, "package my_app\n", byPath["main.go"].Content)
	assert.Equal(t, "static\n", byPath["static.txt"].Content)
}

func TestShouldBeExecutable(t *testing.T) {
	assert.True(t, shouldBeExecutable("scripts/deploy.sh"))
	assert.True(t, shouldBeExecutable("tools/run.py"))
	assert.True(t, shouldBeExecutable("gradlew"))
	assert.True(t, shouldBeExecutable("nested/configure"))
	assert.False(t, shouldBeExecutable("main.go"))
	assert.False(t, shouldBeExecutable("README"))
}
