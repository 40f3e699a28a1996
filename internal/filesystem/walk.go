// Package filesystem provides deterministic directory traversal for
// template and service trees.
package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultIgnoreDirs are common directories to skip during traversal.
var DefaultIgnoreDirs = []string{
	"node_modules", "vendor", ".git", ".svn", ".hg",
	"dist", "build", "tmp", "temp",
	".idea", ".vscode", ".vs",
}

// WalkOptions configures directory traversal behavior.
type WalkOptions struct {
	IgnoreDirs     []string // Directories to skip (default: DefaultIgnoreDirs)
	IgnorePatterns []string // File patterns to skip (e.g., "*.tmp")
	IncludeHidden  bool     // Include hidden files/dirs (default: false)
}

// Walk traverses a directory tree and calls visitor for every regular file.
// Traversal is depth-first over an explicit work stack with directory
// entries sorted by name, so visit order is stable across runs: the files
// of a directory are visited before the contents of its subdirectories.
func Walk(root string, opts WalkOptions, visitor func(path string, info os.FileInfo) error) error {
	ignoreDirs := opts.IgnoreDirs
	if len(ignoreDirs) == 0 {
		ignoreDirs = DefaultIgnoreDirs
	}

	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		var subdirs []string
		for _, entry := range entries {
			name := entry.Name()

			if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
				continue
			}

			path := filepath.Join(dir, name)
			if entry.IsDir() {
				if ignored(name, ignoreDirs) {
					continue
				}
				subdirs = append(subdirs, path)
				continue
			}

			if matchesAny(name, opts.IgnorePatterns) {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				return err
			}
			if err := visitor(path, info); err != nil {
				return err
			}
		}

		// Push in reverse so subdirectories pop in sorted order.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	return nil
}

// WalkWithDefaults walks a directory tree with default ignore patterns.
func WalkWithDefaults(root string, visitor func(path string, info os.FileInfo) error) error {
	return Walk(root, WalkOptions{}, visitor)
}

func ignored(name string, ignoreDirs []string) bool {
	for _, ignore := range ignoreDirs {
		if name == ignore {
			return true
		}
	}
	return false
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
