// Package ai defines the embedding abstraction used to turn passage text
// into fixed-dimension vectors, plus the configuration, rate limiting and
// retry plumbing shared by its implementations.
//
// The concrete OpenAI-compatible client lives in ai/openai; a deterministic
// in-process implementation for tests lives in ai/mock.
package ai
