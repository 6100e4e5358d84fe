// Package redo maintains an explicit exploration tree of visited states for
// a discrete search space: each node (a Position) records a state and the
// labeled move that reached it from its parent. It supports undoing and
// redoing along any branch, detecting states reached by different move
// sequences, tracking the shortest known solution from every node, and
// suppressing short cycles in the live path.
package redo

// Session owns the exploration tree rooted at an initial state. A Session
// is not safe for concurrent use; every operation must run to completion
// before the next one begins.
type Session struct {
	positions *arena[position]
	branches  *arena[branchRec]

	root index

	stateSize   int
	compareSize int

	graftPolicy  GraftPolicy
	changed      bool
	maxPositions int

	filter *presenceFilter

	log Logger
	met Metrics

	statsGrafts           int
	statsCyclesSuppressed int
	statsChunksGrown      int
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithLogger attaches a structured logger to the session. Without one, the
// core logs nothing.
func WithLogger(l Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics attaches a metrics sink to the session. Without one, the core
// counts nothing.
func WithMetrics(m Metrics) Option {
	return func(s *Session) {
		if m != nil {
			s.met = m
		}
	}
}

// WithoutPresenceFilter disables the Bloom-style negative filter. The
// session remains correct, only slower on large trees, since every
// equivalence check then falls back to the full linear scan.
func WithoutPresenceFilter() Option {
	return func(s *Session) {
		s.filter = nil
	}
}

// Begin creates a new session with a single root position holding
// initialState. size is the length in bytes of every stored state;
// compareSize is how many leading bytes participate in equivalence (0
// means "compare all"). Begin returns ErrInvalidSize if size <= 0,
// compareSize is negative or greater than size, or the padded per-position
// slot size would not fit in 16 bits.
func Begin(initialState []byte, size, compareSize int, opts ...Option) (*Session, error) {
	if size <= 0 || compareSize < 0 || compareSize > size {
		return nil, ErrInvalidSize
	}
	// A Go position header is fixed size regardless of S, so in practice
	// only pathologically large states can trip this; the check is kept
	// for contract fidelity with the 16-bit slot-size limit.
	if size > 0xFFF0 {
		return nil, ErrInvalidSize
	}
	if compareSize == 0 {
		compareSize = size
	}

	s := &Session{
		positions:   newArena[position](),
		branches:    newArena[branchRec](),
		stateSize:   size,
		compareSize: compareSize,
		graftPolicy: Graft,
		filter:      newPresenceFilter(),
		log:         noopLogger{},
		met:         noopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.positions.onGrow = func() {
		s.statsChunksGrown++
		s.met.IncChunksGrown()
	}
	s.branches.onGrow = func() {
		s.statsChunksGrown++
		s.met.IncChunksGrown()
	}

	root, err := s.addPosition(nilIndex, 0, initialState, 0, NoCheck)
	if err != nil {
		return nil, err
	}
	s.root = root
	s.changed = false
	return s, nil
}

// End releases a session's resources. It tolerates a nil session.
func End(s *Session) {
	if s == nil {
		return
	}
	s.positions = nil
	s.branches = nil
	s.filter = nil
}

// SetGraftPolicy installs a new grafting policy and returns the previous
// one.
func (s *Session) SetGraftPolicy(p GraftPolicy) GraftPolicy {
	old := s.graftPolicy
	s.graftPolicy = p
	return old
}

// Root returns the session's root position.
func (s *Session) Root() Position {
	return Position{s: s, idx: s.root}
}

// Size returns the number of live positions in the session, including the
// root.
func (s *Session) Size() int {
	return s.positions.count()
}

// GetSavedState borrows the S-byte state buffer stored for p.
func (s *Session) GetSavedState(p Position) []byte {
	return p.rec().state
}

// UpdateSavedState copies only the extra-state region (bytes compareSize..
// stateSize) of newState into p's stored state. Comparable bytes are left
// untouched.
func (s *Session) UpdateSavedState(p Position, newState []byte) {
	rec := p.rec()
	copy(rec.state[s.compareSize:], newState[s.compareSize:])
}

// GetNext returns the child of p reached by move, or false if none exists.
// A successful lookup promotes that branch to the head of p's child list.
func (s *Session) GetNext(p Position, move int) (Position, bool) {
	c := s.getNext(p.idx, move)
	if c == nilIndex {
		return Position{}, false
	}
	return Position{s: s, idx: c}, true
}

// HasChanged reports whether any mutation has occurred since the session
// began, or since the last ClearChanged.
func (s *Session) HasChanged() bool {
	return s.changed
}

// ClearChanged resets the change flag and returns its prior value.
func (s *Session) ClearChanged() bool {
	prior := s.changed
	s.changed = false
	return prior
}

func (s *Session) markChanged() {
	s.changed = true
}

// comparableBytes returns the leading compareSize bytes of a state buffer.
func (s *Session) comparableBytes(state []byte) []byte {
	return state[:s.compareSize]
}

// rebuildPresenceFilter recomputes the Bloom-style presence filter from
// scratch over every live position, invoked whenever positions are removed
// in a way that could leave the filter claiming "present" for a hash
// nothing live actually carries anymore.
func (s *Session) rebuildPresenceFilter() {
	if s.filter == nil {
		return
	}
	s.filter.clear()
	s.positions.live(func(i index) {
		s.filter.set(s.positions.get(i).hashValue)
	})
}
