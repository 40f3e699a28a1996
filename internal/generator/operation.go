// Package generator writes processed templates to disk as a validated,
// two-phase batch of file operations.
package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/amruth-sn/anvil/internal/render"
)

// Operation is a file system operation that can be validated and executed.
//
// Validate checks whether the operation would succeed. Creating parent
// directories is an allowed side effect; it is idempotent. force=true
// skips conflict checks.
//
// Execute performs the operation and should only run after Validate
// succeeds.
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp creates one file with content.
type WriteFileOp struct {
	Path    string
	Content []byte
	Mode    fs.FileMode
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	if !force {
		if _, err := os.Stat(op.Path); err == nil {
			return fmt.Errorf("file already exists: %s", op.Path)
		}
	}

	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}
	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}

// Plan converts a processed template into write operations rooted at
// outputDir. Executable files get mode 0755, everything else 0644.
func Plan(t *render.ProcessedTemplate, outputDir string) []Operation {
	ops := make([]Operation, 0, len(t.Files))
	for _, file := range t.Files {
		mode := fs.FileMode(0644)
		if file.Executable {
			mode = 0755
		}
		ops = append(ops, &WriteFileOp{
			Path:    filepath.Join(outputDir, filepath.FromSlash(file.OutputPath)),
			Content: []byte(file.Content),
			Mode:    mode,
		})
	}
	return ops
}
