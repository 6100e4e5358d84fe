package redo

// branchRec is a labeled edge from a position to one of its children,
// threaded into its parent's child list via sibling.
type branchRec struct {
	sibling index // next sibling in the parent's child list
	child   index // the position this branch leads to
	move    int   // opaque move label
}

// findBranch returns the branch under "from" labeled move, or nilIndex if
// none exists. It does not alter MRU order; see getNext for the
// order-promoting lookup used by the public API.
func (s *Session) findBranch(from index, move int) index {
	rec := s.positions.get(from)
	for b := rec.next; b != nilIndex; {
		br := s.branches.get(b)
		if br.move == move {
			return b
		}
		b = br.sibling
	}
	return nilIndex
}

// addBranch links a new branch from "from" to "to" under the given move
// label, unless one already exists: at most one branch under a position
// ever carries a given label. The new branch is linked at the head of
// from's child list.
func (s *Session) addBranch(from, to index, move int) index {
	if b := s.findBranch(from, move); b != nilIndex {
		return b
	}
	fromRec := s.positions.get(from)
	bi, br := s.branches.alloc()
	br.move = move
	br.child = to
	br.sibling = fromRec.next
	fromRec.next = bi
	fromRec.nextCount++
	return bi
}

// dropBranch removes the branch from "from" whose child is "to". It is a
// no-op if no such branch exists. It does not free the target position.
func (s *Session) dropBranch(from, to index) {
	fromRec := s.positions.get(from)
	var prev index = nilIndex
	cur := fromRec.next
	for cur != nilIndex {
		br := s.branches.get(cur)
		if br.child == to {
			if prev == nilIndex {
				fromRec.next = br.sibling
			} else {
				s.branches.get(prev).sibling = br.sibling
			}
			s.branches.release(cur)
			fromRec.nextCount--
			return
		}
		prev = cur
		cur = br.sibling
	}
}

// getNext looks up the child of "from" reached by move, promoting it to the
// head of from's child list on success, so recently visited children stay
// cheap to reach again.
func (s *Session) getNext(from index, move int) index {
	fromRec := s.positions.get(from)
	if fromRec.next == nilIndex {
		return nilIndex
	}
	head := s.branches.get(fromRec.next)
	if head.move == move {
		return head.child
	}
	prev := fromRec.next
	cur := head.sibling
	for cur != nilIndex {
		br := s.branches.get(cur)
		if br.move == move {
			s.branches.get(prev).sibling = br.sibling
			br.sibling = fromRec.next
			fromRec.next = cur
			return br.child
		}
		prev = cur
		cur = br.sibling
	}
	return nilIndex
}
