package composition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitNPMDependency(t *testing.T) {
	tests := []struct {
		entry   string
		name    string
		version string
	}{
		{"@scope/pkg@^5.0.0", "@scope/pkg", "^5.0.0"},
		{"@clerk/nextjs@^5.0.0", "@clerk/nextjs", "^5.0.0"},
		{"lodash@4.17.21", "lodash", "4.17.21"},
		{"lodash", "lodash", "^1.0.0"},
		{"@scope/pkg", "@scope/pkg", "^1.0.0"},
	}

	for _, tt := range tests {
		dep := splitNPMDependency(tt.entry)
		assert.Equal(t, tt.name, dep.Name, "entry: %s", tt.entry)
		assert.Equal(t, tt.version, dep.Version, "entry: %s", tt.entry)
	}
}

func TestDependenciesMap(t *testing.T) {
	deps := Dependencies{
		NPM:   []NPMDependency{{Name: "lodash", Version: "^1.0.0"}},
		Cargo: map[string]string{"serde": "1.0"},
	}

	m := deps.Map()
	assert.Contains(t, m, "npm")
	assert.Contains(t, m, "cargo")
	assert.NotContains(t, m, "go", "empty ecosystems are omitted")
	assert.NotContains(t, m, "python")

	assert.False(t, deps.Empty())
	assert.True(t, Dependencies{}.Empty())
}
