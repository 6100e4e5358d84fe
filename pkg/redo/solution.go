package redo

// solutionBeats reports whether candidate (candSize, candEnd) is preferred
// over current (curSize, curEnd): a higher endpoint value always wins;
// among equal endpoint values, the smaller move count wins. A current
// solution size of 0 means "no solution yet", which loses to any
// established candidate, including one with a negative endpoint value.
func solutionBeats(candSize uint16, candEnd int16, curSize uint16, curEnd int16) bool {
	if curSize == 0 {
		return true
	}
	if candEnd != curEnd {
		return candEnd > curEnd
	}
	return candSize < curSize
}

// establishEndpoint is run once, at creation, for a position whose
// endpoint marker is nonzero. It sets the position's own solution to
// itself, then walks ancestors toward the root, adopting the new solution
// at each one that it beats, and stopping at the first ancestor that does
// not adopt.
func (s *Session) establishEndpoint(i index) {
	rec := s.positions.get(i)
	rec.solutionSize = rec.moveCount
	rec.solutionEnd = rec.endpointVal
	size, end := rec.solutionSize, rec.solutionEnd

	for anc := rec.parent; anc != nilIndex; {
		ar := s.positions.get(anc)
		if !solutionBeats(size, end, ar.solutionSize, ar.solutionEnd) {
			break
		}
		ar.solutionSize = size
		ar.solutionEnd = end
		anc = ar.parent
	}
}

// recalcSolutionsToRoot refreshes the solution fields of p and every
// ancestor of p, each set to the best (by the ordering above) solution
// among its direct children. It is called after DropPosition and after a
// graft, both of which can improve or invalidate a solution.
func (s *Session) recalcSolutionsToRoot(p index) {
	for p != nilIndex {
		rec := s.positions.get(p)
		var bestSize uint16
		var bestEnd int16
		for b := rec.next; b != nilIndex; {
			br := s.branches.get(b)
			if br.child != nilIndex {
				childRec := s.positions.get(br.child)
				if childRec.solutionSize != 0 && (bestSize == 0 || solutionBeats(childRec.solutionSize, childRec.solutionEnd, bestSize, bestEnd)) {
					bestSize = childRec.solutionSize
					bestEnd = childRec.solutionEnd
				}
			}
			b = br.sibling
		}
		rec.solutionSize = bestSize
		rec.solutionEnd = bestEnd
		p = rec.parent
	}
}
