package redo

import "testing"

func TestAdjustMoveCountShiftsSubtree(t *testing.T) {
	s := mustBegin(t)
	root := s.Root()
	a, err := s.AddPosition(root, 'a', mkState('a', 0), 0, NoCheck)
	if err != nil {
		t.Fatalf("add a: %v", err)
	}
	child, err := s.AddPosition(a, 1, mkState('b', 0), 0, NoCheck)
	if err != nil {
		t.Fatalf("add child: %v", err)
	}

	s.adjustMoveCount(a.idx, 3)
	if a.MoveCount() != 4 {
		t.Fatalf("expected a's movecount shifted to 4, got %d", a.MoveCount())
	}
	if child.MoveCount() != 5 {
		t.Fatalf("expected child's movecount shifted to 5, got %d", child.MoveCount())
	}
}

func TestAdjustMoveCountInvertsStaleBetterPointer(t *testing.T) {
	s := mustBegin(t)
	root := s.Root()
	a, err := s.AddPosition(root, 'a', mkState('a', 0), 0, NoCheck)
	if err != nil {
		t.Fatalf("add a: %v", err)
	}
	b, err := s.AddPosition(root, 'b', mkState('b', 0), 0, NoCheck)
	if err != nil {
		t.Fatalf("add b: %v", err)
	}
	s.positions.get(a.idx).better = b.idx

	// Shrinking a's movecount below b's should invert the relation: a
	// becomes canonical, and b now defers to a.
	s.adjustMoveCount(a.idx, -1)

	aRec := s.positions.get(a.idx)
	bRec := s.positions.get(b.idx)
	if aRec.better != nilIndex {
		t.Fatalf("expected a to become canonical, better=%d", aRec.better)
	}
	if bRec.better != a.idx {
		t.Fatalf("expected b's better to point at a, got %d", bRec.better)
	}
}

func TestGraftBranchTransfersChildrenAndReparents(t *testing.T) {
	s := mustBegin(t)
	root := s.Root()
	src, err := s.AddPosition(root, 'a', mkState('a', 0), 0, NoCheck)
	if err != nil {
		t.Fatalf("add src: %v", err)
	}
	grandchild, err := s.AddPosition(src, 1, mkState('b', 0), 0, NoCheck)
	if err != nil {
		t.Fatalf("add grandchild: %v", err)
	}
	dest, err := s.AddPosition(root, 'c', mkState('c', 0), 0, NoCheck)
	if err != nil {
		t.Fatalf("add dest: %v", err)
	}

	s.graftBranch(dest.idx, src.idx)

	if src.ChildCount() != 0 {
		t.Fatalf("expected src to be a leaf after grafting, got %d children", src.ChildCount())
	}
	if dest.ChildCount() != 1 {
		t.Fatalf("expected dest to have gained the child, got %d", dest.ChildCount())
	}
	parent, ok := grandchild.Parent()
	if !ok || !parent.Equal(dest) {
		t.Fatal("expected the grafted grandchild to be reparented onto dest")
	}
	if grandchild.MoveCount() != dest.MoveCount()+1 {
		t.Fatalf("expected grandchild movecount %d, got %d", dest.MoveCount()+1, grandchild.MoveCount())
	}
}

func TestDuplicatePathNoSolutionFails(t *testing.T) {
	s := mustBegin(t)
	root := s.Root()
	src, err := s.AddPosition(root, 'a', mkState('a', 0), 0, NoCheck)
	if err != nil {
		t.Fatalf("add src: %v", err)
	}
	dest, err := s.AddPosition(root, 'b', mkState('b', 0), 0, NoCheck)
	if err != nil {
		t.Fatalf("add dest: %v", err)
	}

	if s.DuplicatePath(dest, src) {
		t.Fatal("expected duplicating a path from a solution-less source to fail")
	}
	if dest.ChildCount() != 0 {
		t.Fatal("expected nothing copied when src has no solution")
	}
}

func TestDuplicatePathCopiesSolutionMoves(t *testing.T) {
	s := mustBegin(t)
	root := s.Root()
	src, err := s.AddPosition(root, 'a', mkState('a', 0), 0, NoCheck)
	if err != nil {
		t.Fatalf("add src: %v", err)
	}
	mid, err := s.AddPosition(src, 1, mkState('b', 0), 0, NoCheck)
	if err != nil {
		t.Fatalf("add mid: %v", err)
	}
	if _, err := s.AddPosition(mid, 2, mkState('c', 0), 3, NoCheck); err != nil {
		t.Fatalf("add endpoint: %v", err)
	}

	dest, err := s.AddPosition(root, 'd', mkState('d', 0), 0, NoCheck)
	if err != nil {
		t.Fatalf("add dest: %v", err)
	}

	if !s.DuplicatePath(dest, src) {
		t.Fatal("expected DuplicatePath to succeed")
	}
	if dest.ChildCount() != 1 {
		t.Fatalf("expected one move copied onto dest, got %d children", dest.ChildCount())
	}
	edges := dest.Children()
	if edges[0].Move != 1 {
		t.Fatalf("expected the first copied move to be 1, got %v", edges[0].Move)
	}
}
