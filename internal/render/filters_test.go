package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"MyAwesomeProject", "my_awesome_project"},
		{"my-awesome-project", "my_awesome_project"},
		{"already_snake", "already_snake"},
		{"userName", "user_name"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SnakeCase(tt.in), "input: %q", tt.in)
	}
}

func TestPascalCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"my-awesome_project", "MyAwesomeProject"},
		{"my awesome project", "MyAwesomeProject"},
		{"alreadyPascal", "AlreadyPascal"},
		{"MyProject", "MyProject"},
		{"single", "Single"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PascalCase(tt.in), "input: %q", tt.in)
	}
}

func TestKebabCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"MyAwesomeProject", "my-awesome-project"},
		{"my_awesome_project", "my-awesome-project"},
		{"already-kebab", "already-kebab"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KebabCase(tt.in), "input: %q", tt.in)
	}
}

func TestModuleName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"MyProject", "my_project"},
		{"my-app", "my_app"},
		{"My App!", "my__app_"},
		{"3dviewer", "_3dviewer"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ModuleName(tt.in), "input: %q", tt.in)
	}
}
