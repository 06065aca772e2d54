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


package versebase

import (
	"context"
	"log/slog"
	"os"

	"github.com/poiesic/versebase/ai"
	"github.com/poiesic/versebase/ai/openai"
	"github.com/poiesic/versebase/answer"
	"github.com/poiesic/versebase/chunk"
	"github.com/poiesic/versebase/core"
	"github.com/poiesic/versebase/index"
	"github.com/poiesic/versebase/ingest"
	"github.com/poiesic/versebase/retrieve"
	"github.com/poiesic/versebase/storage"
	"github.com/poiesic/versebase/storage/badger"
	"github.com/poiesic/versebase/websearch"
)

// Assistant wires the full retrieval-and-routing stack: storage backend,
// embedder, ingestion pipeline, retriever, and orchestrator behind one
// handle. Queries can be answered while ingestion runs in the background;
// they see whichever index snapshot is published at the time.
type Assistant struct {
	backend      *badger.Backend
	store        storage.IndexStore
	handle       *index.Handle
	embedder     ai.Embedder
	searcher     websearch.Searcher
	pipeline     *ingest.Pipeline
	orchestrator *answer.Orchestrator
	logger       *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	inMemory     bool
	aiConfig     *ai.Config
	embedder     ai.Embedder
	chunkOptions []chunk.Option
	monitor      answer.Monitor
	topK         int
}

// WithInMemory uses an in-memory storage backend. Nothing survives Close.
func WithInMemory() AssistantOption {
	return func(o *assistantOptions) {
		o.inMemory = true
	}
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(cfg *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithEmbedder injects an embedder, bypassing the OpenAI-compatible client.
func WithEmbedder(embedder ai.Embedder) AssistantOption {
	return func(o *assistantOptions) {
		o.embedder = embedder
	}
}

// WithChunkOptions sets chunking parameters for ingestion.
func WithChunkOptions(opts ...chunk.Option) AssistantOption {
	return func(o *assistantOptions) {
		o.chunkOptions = opts
	}
}

// WithMonitor sets an observer for the answering phases.
func WithMonitor(m answer.Monitor) AssistantOption {
	return func(o *assistantOptions) {
		o.monitor = m
	}
}

// WithTopK sets how many passages retrieval returns per query.
func WithTopK(k int) AssistantOption {
	return func(o *assistantOptions) {
		o.topK = k
	}
}

// NewAssistant creates an assistant storing its index under filePath.
// The searcher is required; intents needing external context cannot be
// answered without one.
func NewAssistant(filePath string, searcher websearch.Searcher, opts ...AssistantOption) (*Assistant, error) {
	if searcher == nil {
		return nil, answer.ErrSearcherRequired
	}

	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	store := badger.NewEntryRepository(backend)
	handle := index.NewHandle()

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	pipeline, err := ingest.NewPipeline(embedder, store, handle,
		ingest.WithChunker(chunk.New(options.chunkOptions...)),
		ingest.WithDimension(options.aiConfig.Dimension),
	)
	if err != nil {
		backend.Close()
		return nil, err
	}

	retriever := retrieve.New(handle, embedder)

	var orchestratorOpts []answer.Option
	if options.monitor != nil {
		orchestratorOpts = append(orchestratorOpts, answer.WithMonitor(options.monitor))
	}
	if options.topK > 0 {
		orchestratorOpts = append(orchestratorOpts, answer.WithTopK(options.topK))
	}
	orchestrator, err := answer.NewOrchestrator(retriever, searcher, orchestratorOpts...)
	if err != nil {
		pipeline.Release()
		backend.Close()
		return nil, err
	}

	return &Assistant{
		backend:      backend,
		store:        store,
		handle:       handle,
		embedder:     embedder,
		searcher:     searcher,
		pipeline:     pipeline,
		orchestrator: orchestrator,
		logger:       slog.Default(),
	}, nil
}

// LoadIndex publishes a snapshot rebuilt from persisted entries, if any.
// Returns true when a snapshot was published.
func (a *Assistant) LoadIndex(ctx context.Context) (bool, error) {
	return a.pipeline.LoadPersisted(ctx)
}

// Ingest chunks, embeds, indexes, and publishes the given documents
// synchronously.
func (a *Assistant) Ingest(ctx context.Context, docs ...core.SourceDocument) error {
	return a.pipeline.Run(ctx, docs...)
}

// IngestFile reads a file and ingests it as one document named after its path.
func (a *Assistant) IngestFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return a.Ingest(ctx, core.SourceDocument{Name: path, Text: string(data)})
}

// IngestInBackground schedules ingestion and returns immediately. Queries
// degrade gracefully until the snapshot is published; done, if non-nil,
// receives the run's error.
func (a *Assistant) IngestInBackground(ctx context.Context, done func(error), docs ...core.SourceDocument) error {
	return a.pipeline.RunBackground(ctx, done, docs...)
}

// Ask answers one query.
func (a *Assistant) Ask(ctx context.Context, query string) (*core.Answer, error) {
	return a.orchestrator.Answer(ctx, query)
}

// Ready reports whether an index snapshot has been published.
func (a *Assistant) Ready() bool {
	return a.handle.Ready()
}

// Close releases the pipeline and closes storage.
func (a *Assistant) Close() error {
	a.pipeline.Release()

	if err := a.store.Close(); err != nil {
		a.logger.Error("error closing index store", "err", err)
		return err
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
