package websearch

import (
	"context"

	"github.com/poiesic/versebase/core"
)

// Response is the result of one context search: ranked source snippets and
// an optional synthesized answer.
type Response struct {
	Answer  string
	Sources []core.ContextSource
}

// Searcher retrieves external context for a query. Implementations must be
// safe for concurrent use.
type Searcher interface {
	// Search returns ranked sources for the query. A successful search
	// with no sources returns an empty Sources slice, not an error.
	Search(ctx context.Context, query string) (*Response, error)
}
