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


package route

import (
	"strings"

	"github.com/poiesic/versebase/core"
)

// Router classifies queries into intents and maps each intent to a routing
// plan. Classification is a pure function of the query text: keyword cues
// checked in a fixed priority order, no model calls, so routing is
// deterministic and adds no latency.
type Router struct{}

// New creates a Router.
func New() *Router {
	return &Router{}
}

// cue is one classification rule: every keyword in the group must appear.
type cue struct {
	keywords []string
}

var (
	verseLookupCues = []cue{
		{keywords: []string{"find verses"}},
		{keywords: []string{"what does", "say about"}},
		{keywords: []string{"show me references to"}},
	}
	historicalCues = []cue{
		{keywords: []string{"historical context"}},
		{keywords: []string{"when was", "revealed"}},
		{keywords: []string{"asbab al-nuzul"}},
	}
	interpretationCues = []cue{
		{keywords: []string{"meaning of"}},
		{keywords: []string{"tafsir"}},
		{keywords: []string{"interpretation"}},
		{keywords: []string{"explain"}},
	}
)

// Classify returns the intent for a query. Cues are checked in priority
// order so a query matching several categories resolves to the
// highest-priority one: verse lookup, then historical context, then
// interpretation. Queries matching nothing fall back to general.
func (r *Router) Classify(query string) core.QueryIntent {
	q := strings.ToLower(query)

	switch {
	case matchesAny(q, verseLookupCues):
		return core.IntentVerseLookup
	case matchesAny(q, historicalCues):
		return core.IntentHistoricalContext
	case matchesAny(q, interpretationCues):
		return core.IntentInterpretation
	default:
		return core.IntentGeneral
	}
}

// PlanFor maps an intent to its routing plan.
func (r *Router) PlanFor(intent core.QueryIntent) core.RoutingPlan {
	switch intent {
	case core.IntentVerseLookup:
		return core.RoutingPlan{
			Intent:       intent,
			UseRetriever: true,
			Rationale:    "verse lookup answers from the indexed source text",
		}
	case core.IntentHistoricalContext:
		return core.RoutingPlan{
			Intent:           intent,
			UseContextSearch: true,
			Rationale:        "historical context needs scholarly sources outside the source text",
		}
	case core.IntentInterpretation:
		return core.RoutingPlan{
			Intent:           intent,
			UseRetriever:     true,
			UseContextSearch: true,
			Rationale:        "interpretation grounds external commentary in retrieved passages",
		}
	default:
		return core.RoutingPlan{
			Intent:           core.IntentGeneral,
			UseRetriever:     true,
			UseContextSearch: true,
			Rationale:        "general queries use retrieval to seed a broader context search",
		}
	}
}

// Plan classifies a query and returns its routing plan in one step.
func (r *Router) Plan(query string) core.RoutingPlan {
	return r.PlanFor(r.Classify(query))
}

// matchesAny reports whether any cue group has all its keywords present.
func matchesAny(query string, cues []cue) bool {
	for _, c := range cues {
		all := true
		for _, keyword := range c.keywords {
			if !strings.Contains(query, keyword) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
