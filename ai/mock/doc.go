// Package mock provides a deterministic in-process ai.Embedder for tests.
//
// The default behavior derives a pseudo-random unit vector from an FNV hash
// of the input text, so the same text always embeds to the same vector and
// tests need no network access. Custom behavior can be injected through the
// function fields.
package mock
