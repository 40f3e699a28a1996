package render

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	anvil "github.com/amruth-sn/anvil"
	"github.com/amruth-sn/anvil/internal/composition"
	"github.com/amruth-sn/anvil/internal/config"
	"github.com/amruth-sn/anvil/internal/filesystem"
)

// ProcessedFile is one fully rendered output file, ready for the writer.
type ProcessedFile struct {
	OutputPath string
	Content    string
	Executable bool
}

// ProcessedTemplate is the final result of rendering: everything the file
// writer needs and nothing it has to compute.
type ProcessedTemplate struct {
	Files []ProcessedFile
}

// TemplateEngine renders composed templates and plain template directories.
type TemplateEngine struct {
	renderer *Renderer
}

// NewEngine creates a template engine with a fresh renderer.
func NewEngine() *TemplateEngine {
	return &TemplateEngine{renderer: NewRenderer()}
}

// RenderString renders one template string against the context's variables
// and features.
func (e *TemplateEngine) RenderString(name, templateStr string, ctx *Context) (string, error) {
	return e.renderer.RenderString(name, templateStr, ctx.data())
}

// ProcessComposedTemplate renders a composed file set against the unified
// context. Only files flagged as templates pass through the evaluator;
// everything else is copied byte for byte.
func (e *TemplateEngine) ProcessComposedTemplate(composed *composition.ComposedTemplate, ctx *Context) (*ProcessedTemplate, error) {
	data := e.buildSharedContext(ctx, composed)

	files := make([]ProcessedFile, 0, len(composed.Files))
	for _, file := range composed.Files {
		content := file.Content
		if file.IsTemplate {
			rendered, err := e.renderer.RenderString(file.Path, content, data)
			if err != nil {
				return nil, err
			}
			content = rendered
		}
		files = append(files, ProcessedFile{
			OutputPath: file.Path,
			Content:    content,
			Executable: shouldBeExecutable(file.Path),
		})
	}

	return &ProcessedTemplate{Files: files}, nil
}

// ProcessTemplate renders a plain template directory without composition,
// for the no-services path. Files carrying the template marker suffix are
// rendered against the context; all others pass through unchanged.
func (e *TemplateEngine) ProcessTemplate(templateDir string, ctx *Context) (*ProcessedTemplate, error) {
	data := ctx.data()

	var files []ProcessedFile
	opts := filesystem.WalkOptions{
		IgnoreDirs:    []string{".git"},
		IncludeHidden: true,
	}
	err := filesystem.Walk(templateDir, opts, func(p string, info os.FileInfo) error {
		if info.Name() == config.ManifestFilename {
			return nil
		}

		rel, err := filepath.Rel(templateDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		raw, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		content := string(raw)

		outputPath := rel
		if strings.HasSuffix(rel, config.TemplateSuffix) {
			outputPath = strings.TrimSuffix(rel, config.TemplateSuffix)
			content, err = e.renderer.RenderString(rel, content, data)
			if err != nil {
				return err
			}
		}

		files = append(files, ProcessedFile{
			OutputPath: outputPath,
			Content:    content,
			Executable: shouldBeExecutable(outputPath),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ProcessedTemplate{Files: files}, nil
}

// buildSharedContext assembles the unified rendering context: user
// variables and features, template and build metadata, merged dependencies,
// environment variables, the flattened per-service exports, and utility
// booleans.
func (e *TemplateEngine) buildSharedContext(ctx *Context, composed *composition.ComposedTemplate) map[string]any {
	data := ctx.data()

	manifest := composed.Manifest
	data["template"] = map[string]any{
		"name":              manifest.Name,
		"description":       manifest.Description,
		"version":           manifest.Version,
		"min_anvil_version": manifest.MinAnvilVersion,
	}

	now := time.Now().UTC()
	data["build"] = map[string]any{
		"timestamp":         now.Format("2006-01-02 15:04:05") + " UTC",
		"timestamp_iso":     now.Format(time.RFC3339),
		"year":              strconv.Itoa(now.Year()),
		"generator":         anvil.Generator,
		"generator_version": anvil.Version,
	}

	data["merged_dependencies"] = composed.MergedDependencies.Map()
	data["environment_variables"] = envVarMaps(composed.EnvironmentVariables)

	// Flatten per-service exports so templates reach them without nested
	// lookups: service_<category> names the provider, <category>_<export>
	// carries each exported fact.
	categories := make([]string, 0, len(composed.ServiceContext.Services))
	for category := range composed.ServiceContext.Services {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	activeServices := make([]map[string]any, 0, len(categories))
	for _, category := range categories {
		info := composed.ServiceContext.Services[category]
		data["service_"+category] = info.Provider
		for key, value := range info.Exports {
			data[category+"_"+key] = value
		}
		activeServices = append(activeServices, map[string]any{
			"category":   category,
			"provider":   info.Provider,
			"has_config": len(info.Config) > 0,
		})
	}
	data["active_services"] = activeServices

	for key, value := range composed.ServiceContext.Shared {
		data[key] = value
	}

	data["has_services"] = len(composed.ServiceContext.Services) > 0
	data["has_dependencies"] = !composed.MergedDependencies.Empty()
	data["has_environment_variables"] = len(composed.EnvironmentVariables) > 0

	return data
}

func envVarMaps(envVars []config.EnvironmentVariable) []map[string]any {
	out := make([]map[string]any, len(envVars))
	for i, envVar := range envVars {
		entry := map[string]any{
			"name":        envVar.Name,
			"description": envVar.Description,
			"required":    envVar.Required,
		}
		if envVar.Default != nil {
			entry["default"] = *envVar.Default
		}
		out[i] = entry
	}
	return out
}

// executableExtensions and executableNames are the fixed allow-lists for
// marking output files executable.
var executableExtensions = map[string]bool{
	".sh": true, ".py": true, ".rb": true, ".pl": true,
}

var executableNames = map[string]bool{
	"gradlew": true, "mvnw": true, "install": true, "configure": true, "bootstrap": true,
}

func shouldBeExecutable(outputPath string) bool {
	if ext := path.Ext(outputPath); ext != "" {
		return executableExtensions[ext]
	}
	return executableNames[path.Base(outputPath)]
}
