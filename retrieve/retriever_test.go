package retrieve

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/versebase/ai/mock"
	"github.com/poiesic/versebase/core"
	"github.com/poiesic/versebase/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDimension = 16

func buildIndex(t *testing.T, embedder *mock.MockEmbedder, texts ...string) *index.Index {
	t.Helper()
	idx := index.New(index.WithDimension(testDimension))
	for i, text := range texts {
		vector, err := embedder.EmbedText(context.Background(), text)
		require.NoError(t, err)
		require.NoError(t, idx.Insert(core.IndexEntry{
			Vector: vector,
			Chunk: core.PassageChunk{
				Id:   core.IDFromContent(text),
				Text: text,
				End:  len(text),
				Seq:  i,
			},
		}))
	}
	return idx
}

func TestRetrieverTopK(t *testing.T) {
	embedder := mock.NewMockEmbedderWithDimension(testDimension)
	handle := index.NewHandle()
	handle.Publish(buildIndex(t, embedder,
		"patience in hardship",
		"charity toward the poor",
		"the story of Moses",
	))
	embedder.Reset()

	r := New(handle, embedder)

	t.Run("identical text is the nearest hit", func(t *testing.T) {
		results, err := r.TopK(context.Background(), "patience in hardship", 3)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "patience in hardship", results[0].Chunk.Text)
		assert.Equal(t, 0.0, results[0].Distance)
	})

	t.Run("distances ascend", func(t *testing.T) {
		results, err := r.TopK(context.Background(), "charity", 3)
		require.NoError(t, err)
		for i := 1; i < len(results); i++ {
			assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
		}
	})

	t.Run("k limits results", func(t *testing.T) {
		results, err := r.TopK(context.Background(), "anything", 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("non-positive k uses default", func(t *testing.T) {
		results, err := r.TopK(context.Background(), "anything", 0)
		require.NoError(t, err)
		assert.Len(t, results, DefaultTopK)
	})
}

func TestRetrieverTopK_IndexNotReady(t *testing.T) {
	embedder := mock.NewMockEmbedderWithDimension(testDimension)
	r := New(index.NewHandle(), embedder)

	_, err := r.TopK(context.Background(), "any query", 3)
	assert.ErrorIs(t, err, core.ErrIndexNotReady)

	// Readiness is checked before embedding.
	assert.Equal(t, 0, embedder.CallCount())
}

func TestRetrieverTopK_EmptyIndex(t *testing.T) {
	embedder := mock.NewMockEmbedderWithDimension(testDimension)
	handle := index.NewHandle()
	handle.Publish(index.New(index.WithDimension(testDimension)))

	r := New(handle, embedder)

	results, err := r.TopK(context.Background(), "any query", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieverTopK_EmbedderError(t *testing.T) {
	embedder := mock.NewMockEmbedderWithDimension(testDimension)
	handle := index.NewHandle()
	handle.Publish(buildIndex(t, embedder, "a passage"))

	wantErr := errors.New("embedding service down")
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, wantErr
	}

	r := New(handle, embedder)
	_, err := r.TopK(context.Background(), "any query", 3)
	assert.ErrorIs(t, err, wantErr)
}
