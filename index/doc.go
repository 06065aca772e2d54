// Package index implements the in-memory vector index and its atomically
// published snapshot handle.
//
// Search is exact brute-force Euclidean nearest neighbor, which is the right
// trade-off for a corpus of a few thousand passages: no build step, no
// recall loss, and queries complete in well under a millisecond.
package index
