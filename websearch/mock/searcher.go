package mock

import (
	"context"
	"sync"

	"github.com/poiesic/versebase/core"
	"github.com/poiesic/versebase/websearch"
)

// MockSearcher is a test double for websearch.Searcher.
// It allows custom behavior injection via a function field.
type MockSearcher struct {
	// SearchFunc is called by Search if set.
	// If nil, a canned response echoing the query is returned.
	SearchFunc func(ctx context.Context, query string) (*websearch.Response, error)

	mu        sync.Mutex
	callCount int
	queries   []string
}

var _ websearch.Searcher = (*MockSearcher)(nil)

// NewMockSearcher creates a mock searcher with default canned behavior.
func NewMockSearcher() *MockSearcher {
	return &MockSearcher{}
}

// Search records the query and returns the injected or canned response.
func (m *MockSearcher) Search(ctx context.Context, query string) (*websearch.Response, error) {
	m.mu.Lock()
	m.callCount++
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}

	return &websearch.Response{
		Answer: "mock answer for: " + query,
		Sources: []core.ContextSource{
			{Title: "Mock Source", Snippet: "mock snippet for: " + query, URL: "https://example.org/mock", Score: 0.9},
		},
	}, nil
}

// CallCount returns the number of times Search was called.
func (m *MockSearcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Queries returns the queries passed to Search, in order.
func (m *MockSearcher) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries
}

// Reset clears recorded calls and injected behavior.
func (m *MockSearcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.queries = nil
	m.SearchFunc = nil
}
