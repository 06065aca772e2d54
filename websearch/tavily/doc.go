// Package tavily implements websearch.Searcher against the Tavily search
// API, a web search service with answer synthesis.
package tavily
