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


package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/versebase/core"
	"github.com/poiesic/versebase/storage"
)

// EntryRepository implements storage.IndexStore on a BadgerDB backend.
// Entries are keyed by generation and chunk ID; a generation pointer names
// the current set, so replacing a corpus never mutates live keys in place.
type EntryRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.IndexStore = (*EntryRepository)(nil)

// NewEntryRepository creates an entry repository on the given backend.
func NewEntryRepository(backend *Backend) *EntryRepository {
	return &EntryRepository{
		backend: backend,
		logger:  slog.Default().With("component", "entry-repository"),
	}
}

// SaveEntries replaces the persisted entry set. The new entries are written
// under a fresh generation prefix with a write batch (a single Badger
// transaction caps out well below a realistic corpus of 768-wide vectors),
// then the generation pointer flips in one small transaction. Readers see
// either the old set or the new one, never a mix. Entries from superseded
// generations, including any left by a save interrupted before its pointer
// flip, are swept afterwards.
func (r *EntryRepository) SaveEntries(ctx context.Context, entries []core.IndexEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	current, err := r.currentGeneration()
	if err != nil {
		return err
	}
	next := current + 1

	batch := r.backend.db.NewWriteBatch()
	defer batch.Cancel()
	for i := range entries {
		data := storage.MarshalIndexEntry(&entries[i])
		if err := batch.Set(makeEntryKey(next, entries[i].Chunk.Id), data); err != nil {
			return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
		}
	}
	if err := batch.Flush(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(generationKey), encodeGeneration(next)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}

	if err := r.sweepStale(next); err != nil {
		return err
	}

	r.logger.Debug("saved index entries", "count", len(entries), "generation", next)
	return nil
}

// LoadEntries returns all persisted entries ordered by source document and
// sequence, restoring the order in which chunks were ingested.
func (r *EntryRepository) LoadEntries(ctx context.Context) ([]core.IndexEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := []core.IndexEntry{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := readGeneration(tx)
		if err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = generationPrefix(gen)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				entry, err := storage.UnmarshalIndexEntry(val)
				if err != nil {
					return err
				}
				entries = append(entries, *entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(entries, func(a, b core.IndexEntry) int {
		if c := strings.Compare(a.Chunk.Source, b.Chunk.Source); c != 0 {
			return c
		}
		return a.Chunk.Seq - b.Chunk.Seq
	})

	r.logger.Debug("loaded index entries", "count", len(entries))
	return entries, nil
}

// Count returns the number of entries in the current generation.
func (r *EntryRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := readGeneration(tx)
		if err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = generationPrefix(gen)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *EntryRepository) Close() error {
	return nil
}

// currentGeneration reads the generation pointer; zero means nothing has
// been saved yet.
func (r *EntryRepository) currentGeneration() (uint64, error) {
	var gen uint64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		parsed, err := readGeneration(tx)
		if err != nil {
			return err
		}
		gen = parsed
		return nil
	}, false)
	return gen, err
}

func readGeneration(tx *badger.Txn) (uint64, error) {
	item, err := tx.Get([]byte(generationKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var gen uint64
	err = item.Value(func(val []byte) error {
		gen, err = decodeGeneration(val)
		return err
	})
	return gen, err
}

// sweepStale deletes every entry key outside the kept generation.
// Keys are copied before the batched delete because they are invalid once
// the iterator advances.
func (r *EntryRepository) sweepStale(keep uint64) error {
	keepPrefix := generationPrefix(keep)

	var stale [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = allEntriesPrefix()
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if bytes.HasPrefix(iter.Item().Key(), keepPrefix) {
				continue
			}
			stale = append(stale, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	batch := r.backend.db.NewWriteBatch()
	defer batch.Cancel()
	for _, key := range stale {
		if err := batch.Delete(key); err != nil {
			return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
		}
	}
	if err := batch.Flush(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}

	r.logger.Debug("swept stale entries", "count", len(stale))
	return nil
}
