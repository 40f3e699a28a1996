package composition

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/amruth-sn/anvil/internal/config"
	"github.com/amruth-sn/anvil/internal/filesystem"
)

// collectBaseFiles gathers every file under the base template directory.
func (e *Engine) collectBaseFiles(templateDir string) ([]ComposedFile, error) {
	return collectFiles(templateDir, BaseSource())
}

// collectServiceFiles gathers every file under a selected provider's
// directory. The directory must exist; selection validation checks that
// before collection begins.
func (e *Engine) collectServiceFiles(sel ServiceSelection) ([]ComposedFile, error) {
	dir := e.providerDir(sel.Category, sel.Provider)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, compositionErrorf("service files not found: %s", sel)
		}
		return nil, &FileError{Path: dir, Err: err}
	}
	return collectFiles(dir, ServiceSource(sel.Category, sel.Provider))
}

// collectFiles walks a source tree depth-first in sorted order and tags
// every file with its provenance. Manifest files never reach the output;
// files carrying the template marker suffix get the suffix stripped from
// the final path segment and are flagged for rendering.
func collectFiles(root string, source FileSource) ([]ComposedFile, error) {
	var files []ComposedFile

	opts := filesystem.WalkOptions{
		IgnoreDirs:    []string{".git"},
		IncludeHidden: true,
	}
	err := filesystem.Walk(root, opts, func(path string, info os.FileInfo) error {
		if info.Name() == config.ManifestFilename {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return &FileError{Path: path, Err: err}
		}
		rel = filepath.ToSlash(rel)

		content, err := os.ReadFile(path)
		if err != nil {
			return &FileError{Path: path, Err: err}
		}

		isTemplate := strings.HasSuffix(rel, config.TemplateSuffix)
		outputPath := rel
		if isTemplate {
			outputPath = strings.TrimSuffix(rel, config.TemplateSuffix)
		}

		files = append(files, ComposedFile{
			Path:          outputPath,
			Content:       string(content),
			Source:        source,
			MergeStrategy: config.DefaultMergeStrategy,
			IsTemplate:    isTemplate,
		})
		return nil
	})
	if err != nil {
		if _, ok := err.(*FileError); ok {
			return nil, err
		}
		return nil, &FileError{Path: root, Err: err}
	}

	return files, nil
}
