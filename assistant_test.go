package versebase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/versebase/ai"
	aimock "github.com/poiesic/versebase/ai/mock"
	"github.com/poiesic/versebase/answer"
	"github.com/poiesic/versebase/chunk"
	"github.com/poiesic/versebase/core"
	searchmock "github.com/poiesic/versebase/websearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDimension = 32

func newTestAssistant(t *testing.T) (*Assistant, *searchmock.MockSearcher) {
	t.Helper()

	searcher := searchmock.NewMockSearcher()
	assistant, err := NewAssistant("", searcher,
		WithInMemory(),
		WithEmbedder(aimock.NewMockEmbedderWithDimension(testDimension)),
		WithAIConfig(ai.NewConfig(ai.WithDimension(testDimension))),
		WithChunkOptions(chunk.WithChunkSize(80), chunk.WithOverlap(10)),
		WithTopK(2),
	)
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })

	return assistant, searcher
}

func corpus() core.SourceDocument {
	// Markers recur often enough that every chunk carries a citation.
	return core.SourceDocument{
		Name: "quran-en.txt",
		Text: strings.Repeat(
			"[2:255] God, there is no deity except Him, the Ever-Living. "+
				"[8:46] And be patient, for God is with the patient. ", 5),
	}
}

func TestNewAssistant_RequiresSearcher(t *testing.T) {
	_, err := NewAssistant("", nil, WithInMemory())
	assert.ErrorIs(t, err, answer.ErrSearcherRequired)
}

func TestAssistant_IngestAndAsk(t *testing.T) {
	assistant, searcher := newTestAssistant(t)
	ctx := context.Background()

	assert.False(t, assistant.Ready())
	require.NoError(t, assistant.Ingest(ctx, corpus()))
	assert.True(t, assistant.Ready())

	result, err := assistant.Ask(ctx, "Find verses about patience")
	require.NoError(t, err)

	assert.Equal(t, core.IntentVerseLookup, result.Intent)
	assert.Equal(t, 0, searcher.CallCount())
	assert.False(t, result.Degraded())
	assert.NotEmpty(t, result.Text)
}

func TestAssistant_AskBeforeIngestDegrades(t *testing.T) {
	assistant, searcher := newTestAssistant(t)

	result, err := assistant.Ask(context.Background(), "Find verses about patience")
	require.NoError(t, err)

	assert.True(t, result.Degraded())
	assert.Contains(t, result.Annotations, answer.AnnotationIndexNotReady)
	assert.Equal(t, 1, searcher.CallCount())
}

func TestAssistant_BackgroundIngestion(t *testing.T) {
	assistant, _ := newTestAssistant(t)

	var wg sync.WaitGroup
	wg.Add(1)
	var runErr error
	require.NoError(t, assistant.IngestInBackground(context.Background(), func(err error) {
		runErr = err
		wg.Done()
	}, corpus()))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("background ingestion did not finish")
	}

	require.NoError(t, runErr)
	assert.True(t, assistant.Ready())
}

func TestAssistant_LoadIndex(t *testing.T) {
	searcher := searchmock.NewMockSearcher()
	embedder := aimock.NewMockEmbedderWithDimension(testDimension)
	dir := t.TempDir()

	newOne := func() *Assistant {
		assistant, err := NewAssistant(dir, searcher,
			WithEmbedder(embedder),
			WithAIConfig(ai.NewConfig(ai.WithDimension(testDimension))),
		)
		require.NoError(t, err)
		return assistant
	}

	first := newOne()
	require.NoError(t, first.Ingest(context.Background(), corpus()))
	require.NoError(t, first.Close())

	second := newOne()
	defer second.Close()

	embedder.Reset()
	loaded, err := second.LoadIndex(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.True(t, second.Ready())
	assert.Equal(t, 0, embedder.CallCount(), "restart must not re-embed")
}

func TestAssistant_LoadIndex_EmptyStore(t *testing.T) {
	assistant, _ := newTestAssistant(t)

	loaded, err := assistant.LoadIndex(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.False(t, assistant.Ready())
}

func TestAssistant_InterpretationMergesBothPaths(t *testing.T) {
	assistant, searcher := newTestAssistant(t)
	ctx := context.Background()

	require.NoError(t, assistant.Ingest(ctx, corpus()))

	result, err := assistant.Ask(ctx, "What is the meaning of verse 2:255?")
	require.NoError(t, err)

	assert.Equal(t, core.IntentInterpretation, result.Intent)
	assert.Equal(t, 1, searcher.CallCount())
	assert.NotEmpty(t, result.Sources)
	assert.NotEmpty(t, result.Citations)
}
