package driven

import "context"

// Parser extracts plain text from raw file bytes.
// The extraction engine is opaque to the core; failures wrap
// domain.ErrParse.
type Parser interface {
	// Parse returns the text content of the file.
	Parse(ctx context.Context, content []byte) (string, error)
}
