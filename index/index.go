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


package index

import (
	"fmt"
	"math"
	"slices"

	"github.com/poiesic/versebase/core"
)

// DefaultDimension matches the width of the default embedding model.
const DefaultDimension = 768

// Index is an in-memory vector index over passage chunks. Entries are
// appended during a build phase and never mutated afterward; once an Index
// is published through a Handle it must be treated as immutable. Insert is
// not safe for concurrent use, Search on a published index is.
type Index struct {
	dimension int
	entries   []core.IndexEntry
}

// Option is a functional option for configuring an Index.
type Option func(*Index)

// WithDimension sets the vector width the index enforces on insertion.
func WithDimension(dim int) Option {
	return func(idx *Index) {
		if dim > 0 {
			idx.dimension = dim
		}
	}
}

// New creates an empty index enforcing the configured vector dimension.
func New(opts ...Option) *Index {
	idx := &Index{dimension: DefaultDimension}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Insert validates and appends an entry. Vectors whose width differs from
// the index dimension are rejected with core.ErrDimensionMismatch so a
// mixed-model index can never be built.
func (idx *Index) Insert(entry core.IndexEntry) error {
	if err := core.ValidateEntry(&entry); err != nil {
		return err
	}
	if len(entry.Vector) != idx.dimension {
		return fmt.Errorf("%w: got %d, index dimension %d",
			core.ErrDimensionMismatch, len(entry.Vector), idx.dimension)
	}

	idx.entries = append(idx.entries, entry)
	return nil
}

// Search returns up to k entries nearest to the query vector by Euclidean
// distance, ascending. Fewer than k results are returned when the index
// holds fewer entries; searching an empty index yields an empty slice.
func (idx *Index) Search(query []float32, k int) ([]core.RetrievedPassage, error) {
	if len(query) == 0 {
		return nil, core.ErrEmptyVector
	}
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("%w: query has %d, index dimension %d",
			core.ErrDimensionMismatch, len(query), idx.dimension)
	}
	if k <= 0 {
		return []core.RetrievedPassage{}, nil
	}

	results := make([]core.RetrievedPassage, 0, len(idx.entries))
	for _, entry := range idx.entries {
		results = append(results, core.RetrievedPassage{
			Chunk:    entry.Chunk,
			Distance: l2Distance(query, entry.Vector),
		})
	}

	slices.SortStableFunc(results, func(a, b core.RetrievedPassage) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Dimension returns the vector width the index enforces.
func (idx *Index) Dimension() int {
	return idx.dimension
}

// Entries returns the backing entry slice. Callers must not mutate it.
func (idx *Index) Entries() []core.IndexEntry {
	return idx.entries
}

// l2Distance computes the Euclidean distance between two vectors of equal
// length. Accumulation is in float64 to limit rounding drift on wide vectors.
func l2Distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
