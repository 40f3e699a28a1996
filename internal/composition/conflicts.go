package composition

import (
	"encoding/json"
	"path"
	"sort"
	"strings"

	"github.com/amruth-sn/anvil/internal/config"
)

// resolveConflicts reduces the collected files to one file per output path.
// Single-occupant paths pass through unchanged; conflicts are resolved with
// the configured merge strategy. The result is sorted by path so identical
// inputs always produce an identical file list.
func resolveConflicts(files []ComposedFile, cc *config.CompositionConfig) ([]ComposedFile, error) {
	groups := make(map[string][]ComposedFile)
	var order []string
	for _, file := range files {
		if _, seen := groups[file.Path]; !seen {
			order = append(order, file.Path)
		}
		groups[file.Path] = append(groups[file.Path], file)
	}

	strategy := cc.Strategy()

	resolved := make([]ComposedFile, 0, len(order))
	for _, p := range order {
		group := groups[p]
		if len(group) == 1 {
			resolved = append(resolved, group[0])
			continue
		}
		merged, err := resolveGroup(p, group, strategy)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, merged)
	}

	sort.Slice(resolved, func(i, j int) bool { return resolved[i].Path < resolved[j].Path })
	return resolved, nil
}

func resolveGroup(outputPath string, group []ComposedFile, strategy config.MergeStrategy) (ComposedFile, error) {
	switch strategy {
	case config.MergeStrategyOverride:
		return resolveOverride(group), nil
	case config.MergeStrategyAppend:
		return appendContents(outputPath, group), nil
	case config.MergeStrategyMerge:
		if path.Ext(outputPath) == ".json" {
			return mergeJSON(outputPath, group)
		}
		// Non-structured formats fall back to append.
		return appendContents(outputPath, group), nil
	case config.MergeStrategySkip:
		return group[0], nil
	}
	return ComposedFile{}, compositionErrorf("unknown merge strategy %q for %s", strategy, outputPath)
}

// resolveOverride sorts base-template files before service files and takes
// the last. The sort is stable, so ties among services resolve to the
// last-collected file, deterministically.
func resolveOverride(group []ComposedFile) ComposedFile {
	sorted := append([]ComposedFile(nil), group...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Source.Kind == SourceBaseTemplate && sorted[j].Source.Kind != SourceBaseTemplate
	})
	return sorted[len(sorted)-1]
}

// appendContents concatenates all contributions in collection order, one
// newline after each. The result is Merged provenance and is not
// re-rendered: flattening already-mixed content avoids re-render ambiguity,
// at the cost of losing template evaluation for renderable contributors.
func appendContents(outputPath string, group []ComposedFile) ComposedFile {
	var sb strings.Builder
	for _, file := range group {
		sb.WriteString(file.Content)
		sb.WriteByte('\n')
	}
	return ComposedFile{
		Path:          outputPath,
		Content:       sb.String(),
		Source:        MergedSource(),
		MergeStrategy: config.MergeStrategyAppend,
		IsTemplate:    false,
	}
}

// dependencyKeys are the two conventionally-named dependency collections in
// package manifests whose sub-objects merge key-by-key instead of being
// overwritten wholesale.
var dependencyKeys = map[string]bool{
	"dependencies":    true,
	"devDependencies": true,
}

// mergeJSON parses every contributor as a JSON object and merges top-level
// keys left to right. For the dependency-collection keys the sub-objects
// union, later keys winning on exact collision; every other key is
// overwritten by later contributors. Any parse failure is fatal and names
// the output path and all contributing sources.
func mergeJSON(outputPath string, group []ComposedFile) (ComposedFile, error) {
	merged := make(map[string]any)

	for _, file := range group {
		var obj map[string]any
		if err := json.Unmarshal([]byte(file.Content), &obj); err != nil {
			return ComposedFile{}, &MergeError{
				Path:    outputPath,
				Sources: groupSources(group),
				Err:     err,
			}
		}
		for key, value := range obj {
			existing, present := merged[key]
			if present && dependencyKeys[key] {
				existingMap, okE := existing.(map[string]any)
				valueMap, okV := value.(map[string]any)
				if okE && okV {
					for depName, depVersion := range valueMap {
						existingMap[depName] = depVersion
					}
					continue
				}
			}
			merged[key] = value
		}
	}

	content, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return ComposedFile{}, &MergeError{Path: outputPath, Sources: groupSources(group), Err: err}
	}

	return ComposedFile{
		Path:          outputPath,
		Content:       string(content),
		Source:        MergedSource(),
		MergeStrategy: config.MergeStrategyMerge,
		IsTemplate:    false,
	}, nil
}

func groupSources(group []ComposedFile) []string {
	sources := make([]string, len(group))
	for i, file := range group {
		sources[i] = file.Source.String()
	}
	return sources
}
