package composition

import (
	"fmt"
	"strings"
)

// TemplateNotFoundError reports a template name with no manifest under the
// templates root.
type TemplateNotFoundError struct {
	Name string
	Root string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found under %s", e.Name, e.Root)
}

// FileError wraps an I/O failure with the offending path. Collection aborts
// on the first file error; file trees are expected to be trustworthy local
// state.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error at %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// CompositionError reports a selection-validation or conflict-resolution
// failure with a human-readable reason naming the offending services or
// paths.
type CompositionError struct {
	Reason string
}

func (e *CompositionError) Error() string {
	return "composition error: " + e.Reason
}

func compositionErrorf(format string, args ...any) *CompositionError {
	return &CompositionError{Reason: fmt.Sprintf(format, args...)}
}

// MergeError reports a parse or serialize failure during structural merge.
// It names the output path and every contributing source.
type MergeError struct {
	Path    string
	Sources []string
	Err     error
}

func (e *MergeError) Error() string {
	if len(e.Sources) > 0 {
		return fmt.Sprintf("structural merge of %s (from %s): %v", e.Path, strings.Join(e.Sources, ", "), e.Err)
	}
	return fmt.Sprintf("structural merge of %s: %v", e.Path, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }
