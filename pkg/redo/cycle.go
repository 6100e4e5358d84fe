package redo

// SuppressCycle walks from cursor toward the root looking for an ancestor
// whose comparable bytes match state. If found, cursor is rewound to that
// ancestor regardless of distance. Pruning the chain of positions between
// the old and new cursor — provided every one of them is childless along
// the way — only happens when the match was found within pruneLimit steps;
// pruneLimit of 0 disables pruning entirely, leaving the chain intact.
// SuppressCycle reports whether a match was found at all, regardless of
// whether pruning limits stopped it acting on that match.
func (s *Session) SuppressCycle(cursor *Position, state []byte, pruneLimit int) bool {
	if cursor == nil || !cursor.Valid() {
		return false
	}
	cmp := s.comparableBytes(state)

	p := cursor.idx
	steps := 0
	for p != nilIndex {
		rec := s.positions.get(p)
		if bytesEqual(rec.state[:s.compareSize], cmp) {
			former := cursor.idx
			cursor.idx = p
			if pruneLimit > 0 && steps <= pruneLimit {
				s.pruneChain(former, p)
			}
			s.statsCyclesSuppressed++
			s.met.IncCyclesSuppressed()
			s.log.Debug("cycle suppressed", "steps", steps)
			return true
		}
		p = rec.parent
		steps++
	}
	return false
}

// pruneChain removes positions one at a time walking from leaf up toward
// (but not including) stop, stopping early at the first position that has
// any children of its own. The presence filter is rebuilt, and the session
// marked changed, only if at least one position was actually freed; a prune
// call that frees nothing leaves the filter untouched.
func (s *Session) pruneChain(leaf, stop index) {
	pos := leaf
	freed := false
	for pos != nilIndex && pos != stop {
		rec := s.positions.get(pos)
		if rec.next != nilIndex {
			break
		}
		parent := rec.parent
		s.dropBranch(parent, pos)
		s.positions.release(pos)
		s.met.IncDropped()
		freed = true
		pos = parent
	}
	if freed {
		s.rebuildPresenceFilter()
		s.markChanged()
	}
}
