package redo

// checkForEquiv scans the arena for a live, non-deferred position whose
// comparable bytes match state, and resolves it to its canonical (best,
// i.e. shortest-movecount) representative by chasing better pointers. It
// returns nilIndex if nothing matches.
func (s *Session) checkForEquiv(state []byte) index {
	h := stateHash(s.comparableBytes(state))
	if s.filter.probablyAbsent(h) {
		return nilIndex
	}

	found := nilIndex
	s.positions.live(func(i index) {
		if found != nilIndex {
			return
		}
		rec := s.positions.get(i)
		if rec.pendingEquiv || rec.hashValue != h {
			return
		}
		if !bytesEqual(rec.state[:s.compareSize], state[:s.compareSize]) {
			return
		}
		found = s.canonicalOf(i)
	})
	return found
}

// canonicalOf chases better pointers from i until reaching a position with
// no better pointer. The graph of better-links is acyclic, so resolving
// canonicity is always a finite chase.
func (s *Session) canonicalOf(i index) index {
	for {
		rec := s.positions.get(i)
		if rec.better == nilIndex {
			return i
		}
		i = rec.better
	}
}

// SetBetterSweep finds every position flagged pendingEquiv (positions added
// with CheckLater) and resolves its better pointer, possibly promoting it
// to canonical in place of an existing equivalent found with a larger move
// count. It returns the number of non-nil assignments made.
func (s *Session) SetBetterSweep() int {
	count := 0
	// Collect first: resolving one position can flip another's pendingEquiv
	// flag (when it is promoted to canonical), and mutating the set we are
	// iterating over is unsafe.
	var pending []index
	s.positions.live(func(i index) {
		if s.positions.get(i).pendingEquiv {
			pending = append(pending, i)
		}
	})

	for _, i := range pending {
		rec := s.positions.get(i)
		if !rec.pendingEquiv {
			continue // already resolved as a side effect of an earlier entry
		}
		// The flag is cleared only after the scan, so the scan (which skips
		// pending positions) never matches i against itself.
		q := s.checkForEquiv(rec.state)
		rec.pendingEquiv = false
		if q == nilIndex {
			continue
		}
		qRec := s.positions.get(q)
		if qRec.moveCount <= rec.moveCount {
			rec.better = q
			count++
		} else {
			rec.better = nilIndex
			if qRec.better == nilIndex {
				qRec.better = i
				qRec.pendingEquiv = false
				count++
			}
		}
	}
	return count
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
