package chunk

import (
	"fmt"
	"iter"
	"strings"

	"github.com/poiesic/versebase/core"
)

const (
	// DefaultChunkSize is the default chunk window width in runes.
	DefaultChunkSize = 500

	// DefaultOverlap is the default number of runes shared between
	// consecutive chunks. Overlap exists so a verse marker near a window
	// boundary is not cut in half and lost from both chunks.
	DefaultOverlap = 50
)

// Chunker splits source text into fixed-size overlapping passage chunks.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk window width in runes.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in runes.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a Chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave room for the window to advance.
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// ChunkSize returns the configured window width in runes.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap in runes.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Chunks returns a lazy, restartable sequence of passage chunks over text,
// in source order. Ranging over the sequence again re-chunks from the start
// and yields identical chunks. Empty or whitespace-only input yields an
// empty sequence. The final chunk may be shorter than the window width;
// zero-length chunks are never produced.
//
// Spans are rune offsets into text. Consecutive chunks share the configured
// overlap region; concatenating the first chunk with each later chunk minus
// its leading overlap reconstructs the input exactly.
func (c *Chunker) Chunks(text string) iter.Seq[core.PassageChunk] {
	return func(yield func(core.PassageChunk) bool) {
		if strings.TrimSpace(text) == "" {
			return
		}

		runes := []rune(text)
		step := c.chunkSize - c.overlap
		seq := 0

		for start := 0; start < len(runes); start += step {
			end := start + c.chunkSize
			if end > len(runes) {
				end = len(runes)
			}

			body := string(runes[start:end])
			chunk := core.PassageChunk{
				Id:    chunkID(start, end, body),
				Text:  body,
				Start: start,
				End:   end,
				Seq:   seq,
				Ref:   FindVerseRef(body),
			}
			if !yield(chunk) {
				return
			}
			seq++

			if end == len(runes) {
				return
			}
		}
	}
}

// ChunkAll collects the full chunk sequence into a slice.
func (c *Chunker) ChunkAll(text string) []core.PassageChunk {
	var chunks []core.PassageChunk
	for chunk := range c.Chunks(text) {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// chunkID derives a deterministic chunk ID from the span and text, so
// re-chunking identical input yields identical IDs.
func chunkID(start, end int, text string) core.ID {
	return core.IDFromContent(fmt.Sprintf("%d-%d:%s", start, end, text))
}
