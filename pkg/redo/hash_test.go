package redo

import "testing"

func TestStateHashDeterministic(t *testing.T) {
	a := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	h1 := stateHash(a)
	h2 := stateHash(append([]byte(nil), a...))
	if h1 != h2 {
		t.Fatalf("hash not deterministic: %d vs %d", h1, h2)
	}
}

func TestStateHashDistinguishesInputs(t *testing.T) {
	a := []byte{0, 0, 0, 0}
	b := []byte{0, 0, 0, 1}
	if stateHash(a) == stateHash(b) {
		t.Fatal("expected different hashes for different inputs (not guaranteed, but overwhelmingly likely)")
	}
}

func TestStateHashEmpty(t *testing.T) {
	if stateHash(nil) != stateHash([]byte{}) {
		t.Fatal("expected nil and empty slice to hash the same")
	}
}

func TestStateHashHandlesTrailingBytes(t *testing.T) {
	for n := 0; n < 20; n++ {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = byte(i*7 + 1)
		}
		_ = stateHash(buf) // must not panic at any length
	}
}
