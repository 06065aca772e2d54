// Package mock provides an in-process websearch.Searcher for tests.
package mock
