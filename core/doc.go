// Package core defines the domain model for versebase: passage chunks,
// verse references, index entries, retrieval results, query intents and
// routing plans, plus validation rules and the MUS serializers used by the
// storage layer.
//
// All persisted types (PassageChunk, IndexEntry) are immutable after the
// ingestion phase creates them. Per-request types (QueryIntent, RoutingPlan,
// RetrievedPassage, Answer) are created for one request and discarded.
package core
