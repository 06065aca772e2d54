package index

import (
	"testing"

	"github.com/poiesic/versebase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id core.ID, text string, vector ...float32) core.IndexEntry {
	return core.IndexEntry{
		Vector: vector,
		Chunk: core.PassageChunk{
			Id:   id,
			Text: text,
			End:  len(text),
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("default dimension", func(t *testing.T) {
		idx := New()
		assert.Equal(t, DefaultDimension, idx.Dimension())
		assert.Equal(t, 0, idx.Len())
	})

	t.Run("custom dimension", func(t *testing.T) {
		idx := New(WithDimension(3))
		assert.Equal(t, 3, idx.Dimension())
	})

	t.Run("non-positive dimension ignored", func(t *testing.T) {
		idx := New(WithDimension(0))
		assert.Equal(t, DefaultDimension, idx.Dimension())
	})
}

func TestIndexInsert(t *testing.T) {
	t.Run("accepts matching dimension", func(t *testing.T) {
		idx := New(WithDimension(3))
		require.NoError(t, idx.Insert(entry(1, "first", 1, 0, 0)))
		require.NoError(t, idx.Insert(entry(2, "second", 0, 1, 0)))
		assert.Equal(t, 2, idx.Len())
	})

	t.Run("rejects dimension mismatch", func(t *testing.T) {
		idx := New(WithDimension(3))
		err := idx.Insert(entry(1, "short vector", 1, 0))
		assert.ErrorIs(t, err, core.ErrDimensionMismatch)
		assert.Equal(t, 0, idx.Len())
	})

	t.Run("rejects empty vector", func(t *testing.T) {
		idx := New(WithDimension(3))
		err := idx.Insert(entry(1, "no vector"))
		assert.ErrorIs(t, err, core.ErrEmptyVector)
	})

	t.Run("rejects invalid chunk", func(t *testing.T) {
		idx := New(WithDimension(3))
		err := idx.Insert(core.IndexEntry{Vector: []float32{1, 0, 0}})
		assert.ErrorIs(t, err, core.ErrInvalidChunk)
	})
}

func TestIndexSearch(t *testing.T) {
	idx := New(WithDimension(2))
	require.NoError(t, idx.Insert(entry(1, "origin", 0, 0)))
	require.NoError(t, idx.Insert(entry(2, "near", 1, 0)))
	require.NoError(t, idx.Insert(entry(3, "far", 10, 10)))

	t.Run("returns nearest first", func(t *testing.T) {
		results, err := idx.Search([]float32{0, 0}, 3)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, core.ID(1), results[0].Chunk.Id)
		assert.Equal(t, core.ID(2), results[1].Chunk.Id)
		assert.Equal(t, core.ID(3), results[2].Chunk.Id)

		assert.Equal(t, 0.0, results[0].Distance)
		assert.Equal(t, 1.0, results[1].Distance)
		assert.Less(t, results[1].Distance, results[2].Distance)
	})

	t.Run("trims to k", func(t *testing.T) {
		results, err := idx.Search([]float32{0, 0}, 2)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("k larger than index", func(t *testing.T) {
		results, err := idx.Search([]float32{0, 0}, 10)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("non-positive k", func(t *testing.T) {
		results, err := idx.Search([]float32{0, 0}, 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("query dimension mismatch", func(t *testing.T) {
		_, err := idx.Search([]float32{0, 0, 0}, 3)
		assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	})

	t.Run("empty query vector", func(t *testing.T) {
		_, err := idx.Search(nil, 3)
		assert.ErrorIs(t, err, core.ErrEmptyVector)
	})

	t.Run("empty index yields empty results", func(t *testing.T) {
		empty := New(WithDimension(2))
		results, err := empty.Search([]float32{1, 1}, 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		first, err := idx.Search([]float32{0.5, 0.5}, 3)
		require.NoError(t, err)
		second, err := idx.Search([]float32{0.5, 0.5}, 3)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestHandle(t *testing.T) {
	t.Run("empty handle not ready", func(t *testing.T) {
		h := NewHandle()
		assert.False(t, h.Ready())

		idx, ok := h.Load()
		assert.False(t, ok)
		assert.Nil(t, idx)
	})

	t.Run("publish makes snapshot visible", func(t *testing.T) {
		h := NewHandle()
		built := New(WithDimension(2))
		require.NoError(t, built.Insert(entry(1, "only", 1, 1)))

		h.Publish(built)

		assert.True(t, h.Ready())
		idx, ok := h.Load()
		require.True(t, ok)
		assert.Equal(t, 1, idx.Len())
	})

	t.Run("publish replaces previous snapshot", func(t *testing.T) {
		h := NewHandle()
		first := New(WithDimension(2))
		second := New(WithDimension(2))
		require.NoError(t, second.Insert(entry(2, "newer", 0, 1)))

		h.Publish(first)
		h.Publish(second)

		idx, ok := h.Load()
		require.True(t, ok)
		assert.Equal(t, 1, idx.Len())
	})

	t.Run("empty published index is ready", func(t *testing.T) {
		h := NewHandle()
		h.Publish(New(WithDimension(2)))
		assert.True(t, h.Ready())
	})
}
