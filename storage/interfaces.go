package storage

import (
	"context"

	"github.com/poiesic/versebase/core"
)

// IndexStore persists the set of index entries backing a published index
// snapshot, so a restart can rebuild the index without re-embedding.
type IndexStore interface {
	// SaveEntries replaces the persisted entry set with the given entries.
	// The swap is atomic: readers of the store never observe a partially
	// replaced set, and a failed save leaves the previous set intact.
	SaveEntries(ctx context.Context, entries []core.IndexEntry) error

	// LoadEntries returns all persisted entries ordered by document
	// sequence. An empty store yields an empty slice, not an error.
	LoadEntries(ctx context.Context) ([]core.IndexEntry, error)

	// Count returns the number of persisted entries.
	Count(ctx context.Context) (int, error)

	// Close releases store resources.
	Close() error
}
