// Package websearch defines the external context-search collaborator used
// to answer questions the indexed source text cannot: interpretation,
// historical circumstances, and broad background.
//
// The tavily subpackage provides the production implementation; mock
// provides an in-process one for tests.
package websearch
