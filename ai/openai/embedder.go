// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/poiesic/versebase/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
//
// Every upstream call is spaced by the configured minimum interval and
// retried with exponential backoff, so a batch of N texts takes at least
// (N-1) * MinInterval to embed. The limiter is shared across goroutines,
// which keeps concurrent callers collectively under the upstream rate.
type Embedder struct {
	embedder   embeddings.Embedder
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for embeddings
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	// Wrap in langchaingo embedder
	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	limit := rate.Inf
	if config.MinInterval > 0 {
		limit = rate.Every(config.MinInterval)
	}

	return &Embedder{
		embedder:   embedder,
		limiter:    rate.NewLimiter(limit, 1),
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
		logger:     slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.logger.Debug("generating embedding for single text", "length", len(text))

	vector, err := e.embedOne(ctx, text)
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}
	return vector, nil
}

// EmbedTexts generates vector embeddings for multiple text strings.
// Texts are embedded one at a time so the rate limit holds within a batch,
// not just between batches. On any failure no partial results are returned.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		vector, err := e.embedOne(ctx, text)
		if err != nil {
			e.logger.Error("failed to generate embeddings", "index", i, "count", len(texts), "err", err)
			return nil, err
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}

// embedOne waits for a rate-limit token, then calls the upstream service
// with retry. The limiter wait counts toward the caller's context deadline.
func (e *Embedder) embedOne(ctx context.Context, text string) ([]float32, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var vector []float32
	err := ai.RetryWithBackoff(ctx, func() error {
		result, err := e.embedder.EmbedDocuments(ctx, []string{text})
		if err != nil {
			return err
		}
		if len(result) == 0 {
			return ai.ErrEmbeddingFailed
		}
		vector = result[0]
		return nil
	}, e.maxRetries, e.retryDelay)
	if err != nil {
		return nil, err
	}
	return vector, nil
}
