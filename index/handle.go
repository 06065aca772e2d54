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

import "sync/atomic"

// Handle is the shared access point to the current index snapshot.
// Ingestion builds a complete Index off to the side and publishes it in one
// atomic pointer swap; readers either see the previous snapshot or the new
// one, never a half-built index. A zero Handle is ready to use and reports
// not ready until the first Publish.
type Handle struct {
	current atomic.Pointer[Index]
}

// NewHandle returns an empty handle with no published index.
func NewHandle() *Handle {
	return &Handle{}
}

// Publish atomically replaces the current snapshot. The published index
// must not be mutated afterward.
func (h *Handle) Publish(idx *Index) {
	h.current.Store(idx)
}

// Load returns the current snapshot and whether one has been published.
func (h *Handle) Load() (*Index, bool) {
	idx := h.current.Load()
	return idx, idx != nil
}

// Ready reports whether a snapshot has been published. An empty published
// index is still ready; readiness and emptiness are distinct conditions.
func (h *Handle) Ready() bool {
	return h.current.Load() != nil
}
