// Package answer orchestrates query answering: classify the query, invoke
// the retrieval paths the routing plan names, and merge their results into
// one answer with citations, sources, and degradation annotations.
package answer
