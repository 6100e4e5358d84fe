package redo

import "testing"

func TestPresenceFilterSetAndProbe(t *testing.T) {
	f := newPresenceFilter()
	if !f.probablyAbsent(42) {
		t.Fatal("expected fresh filter to report absent")
	}
	f.set(42)
	if f.probablyAbsent(42) {
		t.Fatal("expected set hash to report possibly present")
	}
}

func TestPresenceFilterClear(t *testing.T) {
	f := newPresenceFilter()
	f.set(7)
	f.clear()
	if !f.probablyAbsent(7) {
		t.Fatal("expected cleared filter to report absent again")
	}
}

func TestPresenceFilterNilIsAlwaysPossiblyPresent(t *testing.T) {
	var f *presenceFilter
	if f.probablyAbsent(1) {
		t.Fatal("expected nil filter to always report possibly present")
	}
	f.set(1) // must not panic
	f.clear()
}

func TestPresenceFilterWrapsModulo(t *testing.T) {
	f := newPresenceFilter()
	f.set(uint16(presenceFilterSize + 3))
	if f.probablyAbsent(3) {
		t.Fatal("expected hash wrapping into the same bucket to report possibly present")
	}
}
