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


package core

import "fmt"

// ValidateChunk validates a PassageChunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - Start/End must describe a non-empty range
//
// NOT validated:
//   - Ref (nil is valid; many passages carry no verse marker)
//   - Source (populated by ingestion, empty for standalone chunking)
func ValidateChunk(chunk *PassageChunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkText)
	}

	if chunk.End <= chunk.Start || chunk.Start < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrInvalidChunkSpan)
	}

	return nil
}

// ValidateEntry validates an IndexEntry according to domain rules.
//
// Validation rules:
//   - Vector must not be empty
//   - the embedded chunk must be valid
//
// Dimensional consistency against the rest of an index is enforced by the
// index itself at insert time, not here.
func ValidateEntry(entry *IndexEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidChunk)
	}

	if len(entry.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyVector)
	}

	return ValidateChunk(&entry.Chunk)
}
