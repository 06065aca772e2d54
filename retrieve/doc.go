// Package retrieve embeds query text and performs similarity search against
// the published index snapshot.
package retrieve
