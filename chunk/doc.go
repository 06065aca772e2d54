// Package chunk splits source text into fixed-size overlapping passage
// chunks with positional metadata and heuristic verse-reference tags.
//
// Chunking is deterministic: identical text and parameters always produce
// identical chunk boundaries and IDs, which keeps ingestion idempotent.
package chunk
