package composition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amruth-sn/anvil/internal/config"
)

func TestBuildServiceContextConfigOverlay(t *testing.T) {
	engine := newFixtureEngine(t)

	sel := clerkSelection()
	sel.Config = map[string]any{"theme": "dark", "sign_in_url": "/login"}

	ctx, err := engine.buildServiceContext([]ServiceSelection{sel})
	require.NoError(t, err)

	info := ctx.Services["auth"]
	assert.Equal(t, "clerk", info.Exports["provider"])
	assert.Equal(t, "auth", info.Exports["category"])
	assert.Equal(t, "dark", info.Exports["config_theme"])
	assert.Equal(t, "/login", info.Exports["config_sign_in_url"])
}

func TestBuildServiceContextWithoutManifest(t *testing.T) {
	engine := newFixtureEngine(t)

	// No provider directory exists for this category; the baseline export
	// set is still emitted.
	ctx, err := engine.buildServiceContext([]ServiceSelection{
		{Category: config.CategoryEmail, Provider: "resend"},
	})
	require.NoError(t, err)

	info, ok := ctx.Services["email"]
	require.True(t, ok)
	assert.Equal(t, "resend", info.Exports["provider"])
	assert.Equal(t, true, info.Exports["has_email"])
	assert.Equal(t, 1, ctx.Shared["service_count"])
	assert.Equal(t, false, ctx.Shared["has_any_auth"])
}

func TestBuildServiceContextCategoryExports(t *testing.T) {
	engine := newFixtureEngine(t)

	ctx, err := engine.buildServiceContext([]ServiceSelection{
		{Category: config.CategoryDatabase, Provider: "neon"},
		{Category: config.CategoryAPI, Provider: "trpc"},
	})
	require.NoError(t, err)

	db := ctx.Services["database"]
	assert.Equal(t, "neon", db.Exports["database_provider"])
	assert.Equal(t, true, db.Exports["has_database"])

	api := ctx.Services["api"]
	assert.Equal(t, "trpc", api.Exports["api_pattern"])
	assert.Equal(t, "trpc", api.Exports["api_type"])
	assert.Equal(t, true, api.Exports["has_api"])

	assert.Equal(t, true, ctx.Shared["has_any_database"])
	assert.Equal(t, 2, ctx.Shared["service_count"])
}
