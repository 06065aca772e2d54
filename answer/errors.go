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


package answer

import "errors"

var (
	// ErrNoAnswer indicates every invoked retrieval path failed, so no
	// grounded answer could be produced.
	ErrNoAnswer = errors.New("no answer could be produced")

	// ErrRetrieverRequired indicates an Orchestrator was created without a retriever.
	ErrRetrieverRequired = errors.New("retriever is required")

	// ErrSearcherRequired indicates an Orchestrator was created without a searcher.
	ErrSearcherRequired = errors.New("searcher is required")
)

// Degradation annotations attached to answers produced on partial results.
const (
	AnnotationIndexNotReady    = "retrieval unavailable: index not ready"
	AnnotationRetrievalFailed  = "retrieval failed"
	AnnotationSearchFailed     = "context search failed"
	AnnotationNoGroundedSource = "no grounded sources found"
)
