package redo

import "errors"

// ErrInvalidSize is returned by Begin when the state size or compare size
// arguments are out of bounds (size >= 1, 0 <= compareSize <= size) or when
// the padded per-position slot size would not fit in 16 bits.
var ErrInvalidSize = errors.New("redo: invalid state size or compare size")

// ErrOutOfMemory is returned by AddPosition, and reported as a false return
// from DuplicatePath, when a session's optional capacity limit (see
// WithMaxPositions) would be exceeded by allocating a new position.
// Without a configured limit a session never returns this error: Go's
// allocator either satisfies the request or the process itself fails, the
// same as any other Go allocation (see DESIGN.md for the rationale behind
// this capacity model).
var ErrOutOfMemory = errors.New("redo: session position capacity exceeded")
