// Package render turns composed file sets into final project files: it
// builds the unified rendering context, evaluates template-marked content,
// and applies naming-convention filters.
package render

import (
	"bytes"
	"strings"
	"sync"
	"text/template"
)

// Renderer parses and executes templates with caching. Safe for concurrent
// use.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex
}

// NewRenderer creates a renderer with the naming-convention filters
// installed.
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderString renders template source against data. The name keys the
// cache and appears in error messages. Unresolved variables are errors,
// not silent blanks.
func (r *Renderer) RenderString(name, templateStr string, data any) (string, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[name]
	r.mu.RUnlock()

	if !ok {
		var err error
		tmpl, err = template.New(name).
			Funcs(r.funcMap).
			Option("missingkey=error").
			Parse(templateStr)
		if err != nil {
			return "", &ProcessingError{Path: name, Err: err}
		}

		r.mu.Lock()
		r.cache[name] = tmpl
		r.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", &ProcessingError{Path: name, Err: err}
	}
	return buf.String(), nil
}

// ClearCache drops all cached templates.
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Naming conventions
		"snake_case":  SnakeCase,
		"pascal_case": PascalCase,
		"kebab_case":  KebabCase,
		"module_name": ModuleName,

		// String helpers
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"trim":     strings.TrimSpace,
		"contains": strings.Contains,
		"replace":  strings.ReplaceAll,
		"join":     strings.Join,
	}
}
