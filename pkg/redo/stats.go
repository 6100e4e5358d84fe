package redo

// Stats is a point-in-time snapshot of a session's activity: collaborators
// that want to know what actually happened during a run can read it without
// standing up their own instrumentation. Stats reads the same counters a
// Metrics sink receives, so it costs nothing extra to maintain.
type Stats struct {
	Population       int // live positions, including the root
	Grafts           int // subtree grafts performed by AddPosition
	CyclesSuppressed int // successful SuppressCycle calls
	ChunksGrown      int // chunk allocations across both the position and branch pools
}

// Stats returns a snapshot of the session's activity counters.
func (s *Session) Stats() Stats {
	return Stats{
		Population:       s.positions.count(),
		Grafts:           s.statsGrafts,
		CyclesSuppressed: s.statsCyclesSuppressed,
		ChunksGrown:      s.statsChunksGrown,
	}
}
