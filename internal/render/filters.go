package render

import (
	"strings"
	"unicode"
)

// SnakeCase converts a name to snake_case.
// Examples: MyAwesomeProject → my_awesome_project, my-app → my_app
func SnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	out := result.String()
	out = strings.ReplaceAll(out, " ", "_")
	return strings.ReplaceAll(out, "-", "_")
}

// PascalCase converts a name to PascalCase. Words are split on spaces,
// underscores, and hyphens, and on existing camel/Pascal case boundaries.
// Examples: my-awesome_project → MyAwesomeProject, userName → UserName
func PascalCase(s string) string {
	var words []string
	for _, segment := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}) {
		var current strings.Builder
		for _, r := range segment {
			if unicode.IsUpper(r) && current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
			current.WriteRune(r)
		}
		if current.Len() > 0 {
			words = append(words, current.String())
		}
	}

	var result strings.Builder
	for _, word := range words {
		runes := []rune(word)
		result.WriteRune(unicode.ToUpper(runes[0]))
		result.WriteString(strings.ToLower(string(runes[1:])))
	}
	return result.String()
}

// KebabCase converts a name to kebab-case.
// Examples: MyAwesomeProject → my-awesome-project, my_app → my-app
func KebabCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			result.WriteRune('-')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	out := result.String()
	out = strings.ReplaceAll(out, " ", "-")
	return strings.ReplaceAll(out, "_", "-")
}

// ModuleName converts a name to a language-identifier-safe snake_case:
// non-alphanumeric characters coerce to underscore and a leading digit gets
// an underscore prefix.
// Examples: My App! → my_app_, 3dViewer → _3d_viewer
func ModuleName(s string) string {
	var result strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsUpper(r) && i > 0:
			result.WriteRune('_')
			result.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			result.WriteRune(unicode.ToLower(r))
		default:
			result.WriteRune('_')
		}
	}
	out := result.String()
	if out != "" && unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}
