package composition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amruth-sn/anvil/internal/config"
)

func testSelections() []ServiceSelection {
	return []ServiceSelection{
		{Category: config.CategoryAuth, Provider: "clerk"},
		{Category: config.CategoryPayments, Provider: "stripe"},
	}
}

func TestEvaluateCondition(t *testing.T) {
	e := New("", "")
	ctx := conditionContext(testSelections())

	tests := []struct {
		condition string
		want      bool
	}{
		{"services.auth == 'clerk'", true},
		{"services.auth == 'auth0'", false},
		{"services.auth == \"clerk\"", true},
		{"services.database == 'neon'", false},
		{"services.payments in ['stripe']", true},
		{"services.payments in ['paddle', 'stripe']", true},
		{"services.payments in ['paddle']", false},
		{"services.database in ['neon']", false},
		{"has_auth", true},
		{"has_database", false},
		{"has_auth && has_payments", true},
		{"has_auth && has_database", false},
		{"has_database || has_payments", true},
		{"has_database || has_ai", false},
		{"services.auth == 'clerk' && services.payments in ['stripe']", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, e.evaluateCondition(tt.condition, ctx), "condition: %s", tt.condition)
	}
}

func TestEvaluateConditionFailOpen(t *testing.T) {
	var warned bool
	e := New("", "")
	e.SetWarnFunc(func(string, ...any) { warned = true })

	ctx := conditionContext(testSelections())

	assert.True(t, e.evaluateCondition("variables.use_docker == true", ctx),
		"unrecognized conditions include the file")
	assert.True(t, warned, "fail-open inclusion is surfaced via the warn hook")
}

func TestFilterFilesImplicitRule(t *testing.T) {
	e := New("", "")
	files := []ComposedFile{
		{Path: "README.md", Source: BaseSource()},
		{Path: "auth/clerk.ts", Source: ServiceSource(config.CategoryAuth, "clerk")},
		{Path: "auth/auth0.ts", Source: ServiceSource(config.CategoryAuth, "auth0")},
		{Path: "merged.json", Source: MergedSource()},
	}

	kept := e.filterFiles(files, testSelections(), nil)

	var paths []string
	for _, f := range kept {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"README.md", "auth/clerk.ts", "merged.json"}, paths,
		"files shipped for unselected providers are dropped")
}

func TestFilterFilesExplicitAndImplicit(t *testing.T) {
	e := New("", "")
	cc := &config.CompositionConfig{
		ConditionalFiles: []config.ConditionalFile{
			{Path: "middleware.ts", Condition: "services.auth == 'auth0'"},
			{Path: "stripe.ts", Condition: "has_payments"},
		},
	}
	files := []ComposedFile{
		{Path: "middleware.ts", Source: BaseSource()},
		{Path: "stripe.ts", Source: ServiceSource(config.CategoryPayments, "stripe")},
	}

	kept := e.filterFiles(files, testSelections(), cc)

	assert.Len(t, kept, 1)
	assert.Equal(t, "stripe.ts", kept[0].Path,
		"a failing explicit rule drops even base-template files")
}
