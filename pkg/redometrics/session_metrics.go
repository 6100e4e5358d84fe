package redometrics

// Metric names registered by SessionMetrics.
const (
	MetricPositions        = "redo_positions_added_total"
	MetricDropped          = "redo_positions_dropped_total"
	MetricGrafts           = "redo_grafts_total"
	MetricCyclesSuppressed = "redo_cycles_suppressed_total"
	MetricChunksGrown      = "redo_arena_chunks_grown_total"
)

// SessionMetrics counts activity for a single redo.Session. It satisfies
// redo.Metrics structurally, so a caller passes it to redo.WithMetrics
// without this package ever importing redo.
type SessionMetrics struct {
	reg *Registry
}

// NewSessionMetrics creates a SessionMetrics backed by a fresh registry.
func NewSessionMetrics() *SessionMetrics {
	return &SessionMetrics{reg: NewRegistry()}
}

// Registry returns the underlying registry, for callers that want to read
// or export the raw counters (e.g. a Prometheus handler).
func (m *SessionMetrics) Registry() *Registry { return m.reg }

func (m *SessionMetrics) IncPositions()        { m.reg.Counter(MetricPositions).Inc() }
func (m *SessionMetrics) IncDropped()          { m.reg.Counter(MetricDropped).Inc() }
func (m *SessionMetrics) IncGrafts()           { m.reg.Counter(MetricGrafts).Inc() }
func (m *SessionMetrics) IncCyclesSuppressed() { m.reg.Counter(MetricCyclesSuppressed).Inc() }
func (m *SessionMetrics) IncChunksGrown()      { m.reg.Counter(MetricChunksGrown).Inc() }
