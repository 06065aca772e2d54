package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/poiesic/versebase"
	"github.com/poiesic/versebase/ai"
	aimock "github.com/poiesic/versebase/ai/mock"
	"github.com/poiesic/versebase/chunk"
	"github.com/poiesic/versebase/core"
	searchmock "github.com/poiesic/versebase/websearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDimension = 32

func newServerFixture(t *testing.T, ingest bool) *versebase.Assistant {
	t.Helper()

	assistant, err := versebase.NewAssistant("", searchmock.NewMockSearcher(),
		versebase.WithInMemory(),
		versebase.WithEmbedder(aimock.NewMockEmbedderWithDimension(testDimension)),
		versebase.WithAIConfig(ai.NewConfig(ai.WithDimension(testDimension))),
		versebase.WithChunkOptions(chunk.WithChunkSize(80), chunk.WithOverlap(10)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })

	if ingest {
		require.NoError(t, assistant.Ingest(context.Background(), core.SourceDocument{
			Name: "quran-en.txt",
			Text: strings.Repeat("[8:46] And be patient, for God is with the patient. ", 8),
		}))
	}
	return assistant
}

func TestChatHandler(t *testing.T) {
	assistant := newServerFixture(t, true)
	handler := chatHandler(assistant)

	t.Run("answers and echoes session id", func(t *testing.T) {
		body := `{"message": "Find verses about patience", "session_id": "abc-123"}`
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp chatResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Response)
		assert.Equal(t, "abc-123", resp.SessionID)
		assert.Equal(t, "verse_lookup", resp.Intent)
		assert.NotEmpty(t, resp.Citations)
	})

	t.Run("generates session id when missing", func(t *testing.T) {
		body := `{"message": "Find verses about patience"}`
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp chatResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.SessionID)
	})

	t.Run("rejects empty message", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		handler(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("not json"))
		rec := httptest.NewRecorder()

		handler(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthHandler(t *testing.T) {
	t.Run("index not ready", func(t *testing.T) {
		assistant := newServerFixture(t, false)
		rec := httptest.NewRecorder()

		healthHandler(assistant)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp healthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "ok", resp.Status)
		assert.False(t, resp.IndexReady)
	})

	t.Run("index ready", func(t *testing.T) {
		assistant := newServerFixture(t, true)
		rec := httptest.NewRecorder()

		healthHandler(assistant)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		var resp healthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.IndexReady)
	})
}
