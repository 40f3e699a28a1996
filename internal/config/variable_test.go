package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }

func TestValidateValueString(t *testing.T) {
	v := Variable{
		Name: "project_name",
		Type: VariableType{Kind: VarString, MinLength: 3, MaxLength: intPtr(10)},
	}

	assert.NoError(t, v.ValidateValue("myapp"))
	assert.Error(t, v.ValidateValue("ab"))
	assert.Error(t, v.ValidateValue("this-name-is-far-too-long"))
	assert.Error(t, v.ValidateValue(42))
}

func TestValidateValueBoolean(t *testing.T) {
	v := Variable{Name: "use_docker", Type: VariableType{Kind: VarBoolean}}

	assert.NoError(t, v.ValidateValue(true))
	assert.Error(t, v.ValidateValue("true"))
}

func TestValidateValueNumber(t *testing.T) {
	v := Variable{
		Name: "port",
		Type: VariableType{Kind: VarNumber, Min: int64Ptr(1024), Max: int64Ptr(65535)},
	}

	assert.NoError(t, v.ValidateValue(8080))
	assert.NoError(t, v.ValidateValue(int64(3000)))
	assert.NoError(t, v.ValidateValue(float64(4000)))
	assert.Error(t, v.ValidateValue(80))
	assert.Error(t, v.ValidateValue(70000))
	assert.Error(t, v.ValidateValue("8080"))
}

func TestValidateValueChoice(t *testing.T) {
	v := Variable{
		Name: "region",
		Type: VariableType{Kind: VarChoice, Options: []string{"us-east", "eu-west"}},
	}

	assert.NoError(t, v.ValidateValue("us-east"))

	err := v.ValidateValue("mars")
	require.Error(t, err)
	var varErr *VariableError
	require.ErrorAs(t, err, &varErr)
	assert.Equal(t, "region", varErr.Variable)
}

func TestVariableDeclarationValidation(t *testing.T) {
	bad := Variable{
		Name:   "count",
		Prompt: "p",
		Type:   VariableType{Kind: VarNumber, Min: int64Ptr(10), Max: int64Ptr(1)},
	}
	assert.NotEmpty(t, bad.validate())

	noOptions := Variable{Name: "pick", Prompt: "p", Type: VariableType{Kind: VarChoice}}
	assert.NotEmpty(t, noOptions.validate())

	unknown := Variable{Name: "x", Prompt: "p", Type: VariableType{Kind: "tuple"}}
	assert.NotEmpty(t, unknown.validate())
}
