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


package retrieve

import (
	"context"
	"log/slog"

	"github.com/poiesic/versebase/ai"
	"github.com/poiesic/versebase/core"
	"github.com/poiesic/versebase/index"
)

// DefaultTopK is the number of passages returned when the caller does not
// specify one.
const DefaultTopK = 3

// Retriever answers similarity queries against the current index snapshot.
// It embeds the query text and searches whatever snapshot is published at
// call time; a query runs entirely against one snapshot even if ingestion
// publishes a new one mid-flight.
type Retriever struct {
	handle   *index.Handle
	embedder ai.Embedder
	logger   *slog.Logger
}

// New creates a retriever reading from handle and embedding with embedder.
func New(handle *index.Handle, embedder ai.Embedder) *Retriever {
	return &Retriever{
		handle:   handle,
		embedder: embedder,
		logger:   slog.Default().With("component", "retriever"),
	}
}

// TopK returns up to k passages nearest to the query, ordered by ascending
// Euclidean distance. Readiness is checked before embedding so an unbuilt
// index costs no upstream call; core.ErrIndexNotReady is returned in that
// case. An empty result from a ready index is not an error.
func (r *Retriever) TopK(ctx context.Context, query string, k int) ([]core.RetrievedPassage, error) {
	idx, ok := r.handle.Load()
	if !ok {
		return nil, core.ErrIndexNotReady
	}
	if k <= 0 {
		k = DefaultTopK
	}

	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	results, err := idx.Search(vector, k)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("retrieved passages", "query_length", len(query), "k", k, "results", len(results))
	return results, nil
}
