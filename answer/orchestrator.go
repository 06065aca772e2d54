// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/versebase/core"
	"github.com/poiesic/versebase/retrieve"
	"github.com/poiesic/versebase/route"
	"github.com/poiesic/versebase/websearch"
)

// seedLimit caps how much retrieved text seeds a general context search.
const seedLimit = 500

// Orchestrator answers queries by routing them to the retriever, the
// context searcher, or both, then merging whatever came back into a single
// answer with provenance.
//
// Degradations never fail a query outright: a missing index or a failing
// collaborator is recorded as an annotation and the other path's results
// still produce an answer. ErrNoAnswer is returned only when every invoked
// path errored.
type Orchestrator struct {
	router    *route.Router
	retriever *retrieve.Retriever
	searcher  websearch.Searcher
	topK      int
	monitor   Monitor
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTopK sets how many passages retrieval requests per query.
func WithTopK(k int) Option {
	return func(o *Orchestrator) {
		if k > 0 {
			o.topK = k
		}
	}
}

// WithMonitor sets an observer for the answering phases.
func WithMonitor(m Monitor) Option {
	return func(o *Orchestrator) {
		if m != nil {
			o.monitor = m
		}
	}
}

// NewOrchestrator creates an orchestrator over the given collaborators.
func NewOrchestrator(retriever *retrieve.Retriever, searcher websearch.Searcher, opts ...Option) (*Orchestrator, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	o := &Orchestrator{
		router:    route.New(),
		retriever: retriever,
		searcher:  searcher,
		topK:      retrieve.DefaultTopK,
		monitor:   &noopMonitor{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// retrievalResult is the typed message the retrieval path produces.
type retrievalResult struct {
	passages []core.RetrievedPassage
	err      error
}

// searchOutcome is the typed message the context-search path produces.
type searchOutcome struct {
	response *websearch.Response
	err      error
}

// Answer routes, dispatches, and merges one query.
func (o *Orchestrator) Answer(ctx context.Context, query string) (*core.Answer, error) {
	started := time.Now()
	o.monitor.Start(query)

	plan := o.router.Plan(query)
	o.monitor.AfterRouting(plan)

	var (
		annotations []string
		retrieval   retrievalResult
		search      searchOutcome
	)

	useSearch := plan.UseContextSearch

	if plan.UseRetriever {
		retrieval = o.runRetrieval(ctx, query)
		o.monitor.AfterRetrieval(retrieval.passages, retrieval.err)

		switch {
		case retrieval.err == nil:
		case errors.Is(retrieval.err, core.ErrIndexNotReady):
			// An unbuilt index degrades to external context, even for
			// intents that normally stay local.
			annotations = append(annotations, AnnotationIndexNotReady)
			useSearch = true
		default:
			annotations = append(annotations, AnnotationRetrievalFailed)
			useSearch = true
		}
	}

	if useSearch {
		search = o.runSearch(ctx, plan.Intent, query, retrieval.passages)
		if search.err != nil {
			o.monitor.AfterContextSearch(nil, search.err)
			annotations = append(annotations, AnnotationSearchFailed)
		} else {
			o.monitor.AfterContextSearch(search.response.Sources, nil)
		}
	}

	retrievalOK := plan.UseRetriever && retrieval.err == nil
	searchOK := useSearch && search.err == nil
	if !retrievalOK && !searchOK {
		return nil, fmt.Errorf("%w: intent %s", ErrNoAnswer, plan.Intent)
	}

	result := o.merge(plan, retrieval, search, annotations)
	result.Latency = time.Since(started)
	o.monitor.Finish(result)
	return result, nil
}

// runRetrieval invokes the retrieval path.
func (o *Orchestrator) runRetrieval(ctx context.Context, query string) retrievalResult {
	passages, err := o.retriever.TopK(ctx, query, o.topK)
	return retrievalResult{passages: passages, err: err}
}

// runSearch invokes the context-search path with an intent-scoped query.
// General queries are seeded with retrieved passage text so the external
// search stays anchored to what the corpus actually says.
func (o *Orchestrator) runSearch(ctx context.Context, intent core.QueryIntent, query string, passages []core.RetrievedPassage) searchOutcome {
	var scoped string
	switch intent {
	case core.IntentInterpretation:
		scoped = websearch.TafsirQuery(query)
	case core.IntentHistoricalContext:
		scoped = websearch.HistoricalQuery(query)
	default:
		scoped = websearch.GeneralQuery(query)
		if seed := seedText(passages); seed != "" {
			scoped = scoped + "\nGrounding passages: " + seed
		}
	}

	response, err := o.searcher.Search(ctx, scoped)
	return searchOutcome{response: response, err: err}
}

// merge combines both paths' results into one answer.
func (o *Orchestrator) merge(plan core.RoutingPlan, retrieval retrievalResult, search searchOutcome, annotations []string) *core.Answer {
	result := &core.Answer{
		Intent:      plan.Intent,
		Annotations: annotations,
	}

	for _, passage := range retrieval.passages {
		if passage.Chunk.Ref != nil {
			result.Citations = appendCitation(result.Citations, *passage.Chunk.Ref)
		}
	}
	if search.response != nil {
		result.Sources = search.response.Sources
	}

	result.Text = composeText(retrieval.passages, search.response)
	if len(retrieval.passages) == 0 && len(result.Sources) == 0 {
		result.Annotations = append(result.Annotations, AnnotationNoGroundedSource)
	}

	return result
}

// composeText renders the merged answer body. A synthesized answer from the
// searcher leads; retrieved passages follow as supporting quotations.
func composeText(passages []core.RetrievedPassage, response *websearch.Response) string {
	var b strings.Builder

	if response != nil && response.Answer != "" {
		b.WriteString(response.Answer)
	}

	if len(passages) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("Relevant passages:")
		for i, passage := range passages {
			b.WriteString(fmt.Sprintf("\n%d. ", i+1))
			if passage.Chunk.Ref != nil {
				b.WriteString(fmt.Sprintf("[%s] ", passage.Chunk.Ref))
			}
			b.WriteString(strings.TrimSpace(passage.Chunk.Text))
		}
	}

	if b.Len() == 0 && response != nil {
		for _, source := range response.Sources {
			if source.Snippet != "" {
				return source.Snippet
			}
		}
	}

	return b.String()
}

// seedText concatenates passage text up to seedLimit runes.
func seedText(passages []core.RetrievedPassage) string {
	var b strings.Builder
	for _, passage := range passages {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(strings.TrimSpace(passage.Chunk.Text))
		if b.Len() >= seedLimit {
			break
		}
	}
	runes := []rune(b.String())
	if len(runes) > seedLimit {
		runes = runes[:seedLimit]
	}
	return string(runes)
}

// appendCitation appends ref unless an identical citation is present.
func appendCitation(citations []core.VerseRef, ref core.VerseRef) []core.VerseRef {
	for _, existing := range citations {
		if existing == ref {
			return citations
		}
	}
	return append(citations, ref)
}
