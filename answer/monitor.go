package answer

import (
	"log/slog"

	"github.com/poiesic/versebase/core"
)

// Monitor provides hooks to observe the answering process.
// Implement this interface to track intermediate steps while a query moves
// through routing, retrieval, and context search.
type Monitor interface {
	Start(query string)
	AfterRouting(plan core.RoutingPlan)
	AfterRetrieval(passages []core.RetrievedPassage, err error)
	AfterContextSearch(sources []core.ContextSource, err error)
	Finish(result *core.Answer)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                      {}
func (n *noopMonitor) AfterRouting(_ core.RoutingPlan)                     {}
func (n *noopMonitor) AfterRetrieval(_ []core.RetrievedPassage, _ error)   {}
func (n *noopMonitor) AfterContextSearch(_ []core.ContextSource, _ error)  {}
func (n *noopMonitor) Finish(_ *core.Answer)                               {}

// logMonitor emits one structured log event per phase. It holds no
// per-request state, so a single instance is safe to share across
// concurrent requests.
type logMonitor struct {
	logger *slog.Logger
}

// NewLogMonitor creates a Monitor logging each phase to logger.
// A nil logger uses slog.Default().
func NewLogMonitor(logger *slog.Logger) Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &logMonitor{logger: logger.With("component", "orchestrator")}
}

func (m *logMonitor) Start(query string) {
	m.logger.Info("answering query", "phase", "start", "query_length", len(query))
}

func (m *logMonitor) AfterRouting(plan core.RoutingPlan) {
	m.logger.Info("routed query", "phase", "routing",
		"intent", plan.Intent.String(),
		"use_retriever", plan.UseRetriever,
		"use_context_search", plan.UseContextSearch)
}

func (m *logMonitor) AfterRetrieval(passages []core.RetrievedPassage, err error) {
	if err != nil {
		m.logger.Warn("retrieval failed", "phase", "retrieval", "err", err)
		return
	}
	m.logger.Info("retrieved passages", "phase", "retrieval", "results", len(passages))
}

func (m *logMonitor) AfterContextSearch(sources []core.ContextSource, err error) {
	if err != nil {
		m.logger.Warn("context search failed", "phase", "context_search", "err", err)
		return
	}
	m.logger.Info("context search completed", "phase", "context_search", "results", len(sources))
}

func (m *logMonitor) Finish(result *core.Answer) {
	m.logger.Info("answer produced", "phase", "finish",
		"intent", result.Intent.String(),
		"citations", len(result.Citations),
		"sources", len(result.Sources),
		"degraded", result.Degraded(),
		"latency", result.Latency)
}
