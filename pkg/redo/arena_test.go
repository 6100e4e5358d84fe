package redo

import "testing"

func TestArenaAllocGetRoundTrip(t *testing.T) {
	a := newArena[position]()
	idx, rec := a.alloc()
	rec.moveCount = 7
	if got := a.get(idx); got.moveCount != 7 {
		t.Fatalf("expected moveCount 7, got %d", got.moveCount)
	}
}

func TestArenaReleaseReuses(t *testing.T) {
	a := newArena[position]()
	idx, _ := a.alloc()
	a.release(idx)
	idx2, rec2 := a.alloc()
	if idx2 != idx {
		t.Fatalf("expected released slot %d to be reused, got %d", idx, idx2)
	}
	if rec2.moveCount != 0 {
		t.Fatal("expected reused slot to be zeroed")
	}
}

func TestArenaGrowsBeyondOneChunk(t *testing.T) {
	a := newArena[position]()
	var last index
	for i := 0; i < arenaChunkSize+5; i++ {
		idx, _ := a.alloc()
		last = idx
	}
	if a.count() != arenaChunkSize+5 {
		t.Fatalf("expected %d live slots, got %d", arenaChunkSize+5, a.count())
	}
	if int(last) != arenaChunkSize+4 {
		t.Fatalf("expected last index %d, got %d", arenaChunkSize+4, last)
	}
}

func TestArenaPointerStabilityAcrossGrowth(t *testing.T) {
	a := newArena[position]()
	idx, rec := a.alloc()
	rec.moveCount = 99

	for i := 0; i < arenaChunkSize*2; i++ {
		a.alloc()
	}

	if got := a.get(idx); got.moveCount != 99 {
		t.Fatalf("pointer became stale across growth: expected moveCount 99, got %d", got.moveCount)
	}
	if rec.moveCount != 99 {
		t.Fatal("previously retained pointer no longer reflects the slot's value")
	}
}

func TestArenaLiveSkipsReleased(t *testing.T) {
	a := newArena[position]()
	i1, _ := a.alloc()
	i2, _ := a.alloc()
	a.release(i1)

	seen := map[index]bool{}
	a.live(func(i index) { seen[i] = true })

	if seen[i1] {
		t.Fatal("expected released slot to be skipped by live")
	}
	if !seen[i2] {
		t.Fatal("expected allocated slot to be visited by live")
	}
	if len(seen) != 1 {
		t.Fatalf("expected exactly 1 live slot, got %d", len(seen))
	}
}

func TestArenaOnGrowHook(t *testing.T) {
	a := newArena[position]()
	grown := 0
	a.onGrow = func() { grown++ }
	for i := 0; i < arenaChunkSize+1; i++ {
		a.alloc()
	}
	if grown != 2 {
		t.Fatalf("expected onGrow called twice for %d allocations, got %d", arenaChunkSize+1, grown)
	}
}
