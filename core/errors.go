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

import "errors"

// Domain errors
var (
	// ErrDimensionMismatch indicates a vector whose width differs from the
	// index dimensionality. This points at a model or version change and is
	// fatal at insert time; vectors are never truncated or padded.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrIndexNotReady indicates that no index snapshot has been published
	// yet. It is distinct from an empty search result so callers can degrade
	// to context-search-only routing.
	ErrIndexNotReady = errors.New("index not ready")

	// ErrInvalidChunk indicates a PassageChunk failed validation.
	ErrInvalidChunk = errors.New("invalid passage chunk")

	// ErrEmptyChunkText indicates the chunk Text field is empty.
	ErrEmptyChunkText = errors.New("chunk text cannot be empty")

	// ErrInvalidChunkSpan indicates the chunk char span is not a valid
	// non-empty range.
	ErrInvalidChunkSpan = errors.New("chunk span must be a non-empty range")

	// ErrEmptyVector indicates an index entry without an embedding vector.
	ErrEmptyVector = errors.New("entry vector cannot be empty")
)
