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


package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/versebase/ai"
	"github.com/poiesic/versebase/chunk"
	"github.com/poiesic/versebase/core"
	"github.com/poiesic/versebase/index"
	"github.com/poiesic/versebase/storage"
)

// Pipeline turns source documents into a published index snapshot:
// chunk, embed, build, persist, publish. A run either publishes a complete
// snapshot or leaves the previous one untouched; readers never observe a
// partially built index.
type Pipeline struct {
	chunker   *chunk.Chunker
	embedder  ai.Embedder
	store     storage.IndexStore
	handle    *index.Handle
	pool      *ants.Pool
	dimension int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithChunker sets a custom chunker. Default uses the standard chunk sizes.
func WithChunker(c *chunk.Chunker) Option {
	return func(p *Pipeline) error {
		if c != nil {
			p.chunker = c
		}
		return nil
	}
}

// WithDimension sets the vector width the built index enforces.
// Default is index.DefaultDimension.
func WithDimension(dim int) Option {
	return func(p *Pipeline) error {
		if dim > 0 {
			p.dimension = dim
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline publishing into handle.
func NewPipeline(
	embedder ai.Embedder,
	store storage.IndexStore,
	handle *index.Handle,
	opts ...Option,
) (*Pipeline, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if handle == nil {
		return nil, ErrHandleRequired
	}

	// One worker: ingestion runs are serialized so two background runs
	// can never interleave their publishes.
	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		chunker:   chunk.New(),
		embedder:  embedder,
		store:     store,
		handle:    handle,
		pool:      pool,
		dimension: index.DefaultDimension,
		logger:    slog.Default().With("component", "ingest-pipeline"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run ingests the given documents synchronously. On success the new
// snapshot is persisted and published atomically; on any error the run
// aborts before persisting and the previous snapshot stays current.
func (p *Pipeline) Run(ctx context.Context, docs ...core.SourceDocument) error {
	idx := index.New(index.WithDimension(p.dimension))

	for _, doc := range docs {
		if err := p.ingestDocument(ctx, idx, doc); err != nil {
			return fmt.Errorf("%w: document %q: %w", ErrIngestionFailed, doc.Name, err)
		}
	}

	if err := p.store.SaveEntries(ctx, idx.Entries()); err != nil {
		return fmt.Errorf("%w: persisting entries: %w", ErrIngestionFailed, err)
	}

	p.handle.Publish(idx)
	p.logger.Info("published index snapshot", "entries", idx.Len(), "documents", len(docs))
	return nil
}

// RunBackground schedules Run on the worker pool and returns immediately.
// Errors are logged, not returned; the previous snapshot stays current on
// failure. The done callback, if non-nil, receives the run's error.
func (p *Pipeline) RunBackground(ctx context.Context, done func(error), docs ...core.SourceDocument) error {
	return p.pool.Submit(func() {
		err := p.Run(ctx, docs...)
		if err != nil {
			p.logger.Error("background ingestion failed", "err", err)
		}
		if done != nil {
			done(err)
		}
	})
}

// LoadPersisted rebuilds and publishes a snapshot from the store without
// re-embedding. Returns false when the store is empty; nothing is published
// in that case.
func (p *Pipeline) LoadPersisted(ctx context.Context) (bool, error) {
	entries, err := p.store.LoadEntries(ctx)
	if err != nil {
		return false, err
	}
	if len(entries) == 0 {
		return false, nil
	}

	idx := index.New(index.WithDimension(p.dimension))
	for _, entry := range entries {
		if err := idx.Insert(entry); err != nil {
			return false, fmt.Errorf("rebuilding index from store: %w", err)
		}
	}

	p.handle.Publish(idx)
	p.logger.Info("published index snapshot from store", "entries", idx.Len())
	return true, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// ingestDocument chunks and embeds one document into the index being built.
func (p *Pipeline) ingestDocument(ctx context.Context, idx *index.Index, doc core.SourceDocument) error {
	count := 0
	for passage := range p.chunker.Chunks(doc.Text) {
		if err := ctx.Err(); err != nil {
			return err
		}

		passage.Source = doc.Name
		vector, err := p.embedder.EmbedText(ctx, passage.Text)
		if err != nil {
			return fmt.Errorf("embedding chunk %d: %w", passage.Seq, err)
		}

		if err := idx.Insert(core.IndexEntry{Vector: vector, Chunk: passage}); err != nil {
			return fmt.Errorf("indexing chunk %d: %w", passage.Seq, err)
		}
		count++
	}

	p.logger.Debug("ingested document", "name", doc.Name, "chunks", count)
	return nil
}
