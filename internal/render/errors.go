package render

import "fmt"

// ProcessingError reports a rendering failure: a template syntax error or
// an unresolved variable in template source. It always names the file so
// the caller can render a one-line diagnostic.
type ProcessingError struct {
	Path string
	Err  error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing %s: %v", e.Path, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }
