// Package ingest builds index snapshots from source documents.
//
// A run chunks each document, embeds every chunk, builds a fresh index off
// to the side, persists the entries, and only then publishes the snapshot.
// Failures abort before persisting, so a bad run can never corrupt the
// snapshot queries are served from.
package ingest
