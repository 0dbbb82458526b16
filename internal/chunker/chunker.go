// Package chunker provides a fixed-size sliding-window text chunker.
package chunker

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/docbase/internal/core/domain"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// DefaultSize is the default number of characters per chunk.
const DefaultSize = 1000

// DefaultOverlap is the default number of characters shared by
// consecutive chunks.
const DefaultOverlap = 200

// Chunker splits text into fixed-size chunks with overlap.
// It implements the driven.Chunker interface.
type Chunker struct {
	size    int
	overlap int
	strip   bool
}

// Option configures the chunker.
type Option func(*Chunker)

// WithSize sets the chunk size in characters.
func WithSize(size int) Option {
	return func(c *Chunker) {
		c.size = size
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// WithStrip controls whether leading and trailing whitespace of the text
// is removed before chunking. Enabled by default.
func WithStrip(strip bool) Option {
	return func(c *Chunker) {
		c.strip = strip
	}
}

// New creates a chunker with the given options.
//
// The configuration is rejected up front rather than clamped: a size of
// zero or less, a negative overlap, or an overlap that is not smaller than
// the size (the window would never advance) all return
// domain.ErrChunkConfig.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		size:    DefaultSize,
		overlap: DefaultOverlap,
		strip:   true,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.size <= 0 {
		return nil, fmt.Errorf("%w: size must be greater than 0, got %d", domain.ErrChunkConfig, c.size)
	}
	if c.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap cannot be negative, got %d", domain.ErrChunkConfig, c.overlap)
	}
	if c.overlap >= c.size {
		return nil, fmt.Errorf("%w: overlap %d must be less than size %d", domain.ErrChunkConfig, c.overlap, c.size)
	}

	return c, nil
}

// Chunk splits text into ordered chunks for a document.
//
// Size, overlap and the chunk offsets all count characters (Unicode code
// points), not bytes, so a window boundary never lands inside a multi-byte
// rune. Offsets are relative to the text actually chunked, i.e. after
// stripping when strip is enabled. Consecutive chunks share exactly the
// configured overlap, every chunk is at most size characters, and the chunk
// ranges cover the whole text with no gaps. Empty text yields no chunks and
// no error.
func (c *Chunker) Chunk(documentID uuid.UUID, text string) ([]domain.Chunk, error) {
	if c.strip {
		text = strings.TrimSpace(text)
	}
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	n := len(runes)
	chunks := make([]domain.Chunk, 0, n/(c.size-c.overlap)+1)

	x := 0
	for x < n {
		y := x + c.size
		if y > n {
			y = n
		}

		chunk, err := domain.NewChunk(documentID, len(chunks), string(runes[x:y]), x, y)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)

		// The final chunk ends exactly at the end of the text; stepping
		// back by the overlap would emit a redundant tail window.
		if y == n {
			break
		}
		x = y - c.overlap
	}

	return chunks, nil
}
