package redo

// WithMaxPositions caps the number of live positions a session will hold.
// AddPosition and DuplicatePath report ErrOutOfMemory once the cap is hit,
// so callers can unwind cleanly the same way they would for a real
// allocator running out of memory.
func WithMaxPositions(n int) Option {
	return func(s *Session) {
		s.maxPositions = n
	}
}

// AddPosition returns the position reached from prev via move, creating it
// if it does not already exist. If checkEquiv requests it, the new
// position is checked against every other live position for an equivalent
// (identical comparable-bytes) state, and the grafting engine applies the
// session's configured policy.
func (s *Session) AddPosition(prev Position, move int, state []byte, endpoint int, checkEquiv CheckEquiv) (Position, error) {
	idx, err := s.addPosition(prev.idx, move, state, int16(endpoint), checkEquiv)
	if err != nil {
		return Position{}, err
	}
	return Position{s: s, idx: idx}, nil
}

func (s *Session) addPosition(prev index, move int, state []byte, endpoint int16, check CheckEquiv) (index, error) {
	if prev != nilIndex {
		if existing := s.getNext(prev, move); existing != nilIndex {
			return existing, nil
		}
	}

	// Equivalence is resolved against the caller's raw state bytes, before
	// the new position is allocated or linked in. Re-adding an existing
	// (prev, move) pair above always short-circuits before this point, so
	// it never triggers a scan even if the caller asked for one.
	var equiv index = nilIndex
	if check == Check && endpoint == 0 {
		equiv = s.checkForEquiv(state)
	}

	if s.maxPositions > 0 && s.positions.count() >= s.maxPositions {
		return nilIndex, ErrOutOfMemory
	}

	idx, rec := s.positions.alloc()
	rec.state = append(make([]byte, 0, s.stateSize), state[:s.stateSize]...)
	rec.hashValue = stateHash(s.comparableBytes(rec.state))
	rec.endpointVal = endpoint
	rec.better = nilIndex
	rec.pendingEquiv = check == CheckLater
	rec.parent = prev
	rec.next = nilIndex
	rec.nextCount = 0
	rec.solutionSize = 0
	rec.solutionEnd = 0

	if prev != nilIndex {
		s.addBranch(prev, idx, move)
		rec.moveCount = s.positions.get(prev).moveCount + 1
	} else {
		rec.moveCount = 0
	}

	s.filter.set(rec.hashValue)

	if endpoint != 0 {
		s.establishEndpoint(idx)
	}

	if equiv != nilIndex {
		equivRec := s.positions.get(equiv)
		if rec.moveCount >= equivRec.moveCount {
			rec.better = equiv
		} else {
			equivRec.better = idx
			switch s.graftPolicy {
			case NoGraft:
				// nothing else to do
			case CopyPath:
				s.duplicatePath(idx, equiv)
			case Graft, GraftAndCopy:
				s.graftBranch(idx, equiv)
				s.recalcSolutionsToRoot(equiv)
				s.statsGrafts++
				s.met.IncGrafts()
				if s.graftPolicy == GraftAndCopy {
					s.duplicatePath(equiv, idx)
				}
			}
		}
	}

	s.met.IncPositions()
	s.markChanged()
	s.log.Debug("position added", "move", move, "movecount", rec.moveCount, "endpoint", endpoint)
	return idx, nil
}

// DropPosition removes a leaf position with no children from the session
// and returns its parent. If p has children or is the root, DropPosition
// is a no-op and returns p unchanged.
func (s *Session) DropPosition(p Position) Position {
	idx := p.idx
	rec := s.positions.get(idx)
	if rec.parent == nilIndex || rec.next != nilIndex {
		return p
	}

	parent := rec.parent
	s.dropBranch(parent, idx)

	better := rec.better
	s.positions.live(func(i index) {
		pr := s.positions.get(i)
		if pr.better == idx {
			pr.better = better
		}
	})

	s.positions.release(idx)
	s.recalcSolutionsToRoot(parent)
	s.rebuildPresenceFilter()
	s.met.IncDropped()
	s.markChanged()
	s.log.Info("position dropped", "parent_movecount", s.positions.get(parent).moveCount)
	return Position{s: s, idx: parent}
}

// DuplicatePath copies the sequence of moves along src's shortest known
// solution, rooting the copy at dest. It returns false if src has no
// solution at all, or if an allocation failed partway through; stopping
// early because the path ran out (a missing expected child) still reports
// success.
func (s *Session) DuplicatePath(dest, src Position) bool {
	return s.duplicatePath(dest.idx, src.idx)
}

