package chunk

import (
	"strings"
	"testing"

	"github.com/poiesic/versebase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := New()
		assert.Equal(t, DefaultChunkSize, c.ChunkSize())
		assert.Equal(t, DefaultOverlap, c.Overlap())
	})

	t.Run("custom size and overlap", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(10))
		assert.Equal(t, 100, c.ChunkSize())
		assert.Equal(t, 10, c.Overlap())
	})

	t.Run("overlap clamped below chunk size", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(100))
		assert.Equal(t, 25, c.Overlap())
	})

	t.Run("non-positive size ignored", func(t *testing.T) {
		c := New(WithChunkSize(0))
		assert.Equal(t, DefaultChunkSize, c.ChunkSize())
	})
}

func TestChunks_EmptyInput(t *testing.T) {
	c := New()

	for _, input := range []string{"", "   ", "\n\t\n"} {
		chunks := c.ChunkAll(input)
		assert.Empty(t, chunks, "input %q should yield no chunks", input)
	}
}

func TestChunks_SingleShortChunk(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(10))
	chunks := c.ChunkAll("a short passage")

	require.Len(t, chunks, 1)
	assert.Equal(t, "a short passage", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, len([]rune("a short passage")), chunks[0].End)
	assert.Equal(t, 0, chunks[0].Seq)
}

func TestChunks_OverlapDuplication(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10) // 100 runes
	c := New(WithChunkSize(40), WithOverlap(10))

	chunks := c.ChunkAll(text)
	require.Len(t, chunks, 3)

	// Consecutive chunks share the overlap region.
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Text)
		cur := []rune(chunks[i].Text)
		assert.Equal(t, string(prev[len(prev)-10:]), string(cur[:10]))
		assert.Equal(t, chunks[i-1].End-10, chunks[i].Start)
	}

	// No zero-length chunks, sequence numbers in order.
	for i, chunk := range chunks {
		assert.NotEmpty(t, chunk.Text)
		assert.Equal(t, i, chunk.Seq)
		require.NoError(t, core.ValidateChunk(&chunk))
	}
}

func TestChunks_CoverageReconstruction(t *testing.T) {
	text := "In the beginning there was a long text that keeps going with many " +
		strings.Repeat("words and more words ", 40) +
		"until it finally ends."
	c := New(WithChunkSize(120), WithOverlap(20))

	chunks := c.ChunkAll(text)
	require.NotEmpty(t, chunks)

	// First chunk plus every later chunk minus its leading overlap
	// reconstructs the input exactly.
	var rebuilt strings.Builder
	for i, chunk := range chunks {
		runes := []rune(chunk.Text)
		if i == 0 {
			rebuilt.WriteString(chunk.Text)
			continue
		}
		rebuilt.WriteString(string(runes[c.Overlap():]))
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestChunks_Idempotent(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 30)
	c := New(WithChunkSize(200), WithOverlap(40))

	first := c.ChunkAll(text)
	second := c.ChunkAll(text)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i])
	}
}

func TestChunks_Restartable(t *testing.T) {
	text := strings.Repeat("restartable sequence text. ", 20)
	c := New(WithChunkSize(100), WithOverlap(10))

	seq := c.Chunks(text)

	// Partially consume, then range again from the start.
	var firstOfPartial core.PassageChunk
	for chunk := range seq {
		firstOfPartial = chunk
		break
	}

	var firstOfFull core.PassageChunk
	for chunk := range seq {
		firstOfFull = chunk
		break
	}

	assert.Equal(t, firstOfPartial, firstOfFull)
}

func TestChunks_VerseRefTagging(t *testing.T) {
	t.Run("marker within chunk", func(t *testing.T) {
		c := New(WithChunkSize(200), WithOverlap(20))
		chunks := c.ChunkAll("And We said [2:35] dwell in the garden.")
		require.Len(t, chunks, 1)
		require.NotNil(t, chunks[0].Ref)
		assert.Equal(t, core.VerseRef{Surah: 2, Ayah: 35}, *chunks[0].Ref)
	})

	t.Run("first marker wins", func(t *testing.T) {
		c := New(WithChunkSize(200), WithOverlap(20))
		chunks := c.ChunkAll("Surah 18, Verse 10 and later [19:4] appears too.")
		require.Len(t, chunks, 1)
		require.NotNil(t, chunks[0].Ref)
		assert.Equal(t, core.VerseRef{Surah: 18, Ayah: 10}, *chunks[0].Ref)
	})

	t.Run("no marker", func(t *testing.T) {
		c := New(WithChunkSize(200), WithOverlap(20))
		chunks := c.ChunkAll("a passage with no citation at all")
		require.Len(t, chunks, 1)
		assert.Nil(t, chunks[0].Ref)
	})
}

func TestChunks_UnicodeSpans(t *testing.T) {
	// Spans are rune offsets, not byte offsets.
	text := strings.Repeat("بسم الله الرحمن الرحيم ", 10)
	runes := []rune(text)
	c := New(WithChunkSize(60), WithOverlap(10))

	chunks := c.ChunkAll(text)
	require.NotEmpty(t, chunks)

	for _, chunk := range chunks {
		assert.Equal(t, string(runes[chunk.Start:chunk.End]), chunk.Text)
	}
	assert.Equal(t, len(runes), chunks[len(chunks)-1].End)
}
