// Package route classifies user queries into a closed set of intents and
// maps each intent to the retrieval paths worth invoking for it.
package route
