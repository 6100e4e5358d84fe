package redo

import "github.com/bits-and-blooms/bitset"

// presenceFilterSize is the number of bits in the presence filter, chosen to
// be prime and large enough to work well for tree sizes in the thousands
// while staying small.
const presenceFilterSize = 8191

// presenceFilter is a single-bit-per-bucket negative filter over state
// hashes. A clear bit is a hard guarantee that no live position carries that
// hash; a set bit says nothing (other hashes may alias into the same
// bucket). It is optional: if allocation ever fails the session simply runs
// without one, and every probe reports "possibly present".
type presenceFilter struct {
	bits *bitset.BitSet
}

func newPresenceFilter() *presenceFilter {
	return &presenceFilter{bits: bitset.New(presenceFilterSize)}
}

func (f *presenceFilter) set(h uint16) {
	if f == nil {
		return
	}
	f.bits.Set(uint(h) % presenceFilterSize)
}

// probablyAbsent returns true iff no stored position could have hash h. A
// nil filter (never allocated, or allocation failed) always answers false,
// i.e. "possibly present", forcing callers back to the linear scan.
func (f *presenceFilter) probablyAbsent(h uint16) bool {
	if f == nil {
		return false
	}
	return !f.bits.Test(uint(h) % presenceFilterSize)
}

func (f *presenceFilter) clear() {
	if f == nil {
		return
	}
	f.bits.ClearAll()
}
