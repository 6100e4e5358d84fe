package main

import "math/rand"

// Move labels for the sliding-block puzzle. These are the opaque integer
// move values redo.Session stores alongside each position; the puzzle is
// the only thing that ever interprets them.
const (
	MoveUp = iota + 1
	MoveDown
	MoveLeft
	MoveRight
)

var allMoves = [...]int{MoveUp, MoveDown, MoveLeft, MoveRight}

// MoveName returns a short human-readable label for a move, for the play
// and inspect subcommands.
func MoveName(m int) string {
	switch m {
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	default:
		return "?"
	}
}

// Puzzle is an N-by-N sliding-block grid: each cell holds a tile byte
// (0 is the blank), and a move slides the blank into an adjacent cell. The
// move semantics and state layout here are entirely this collaborator's
// concern; pkg/redo never interprets them.
type Puzzle struct {
	n     int
	cells []byte // row-major, len n*n; cells[i] == 0 marks the blank
}

// NewSolved returns an n-by-n puzzle in its solved configuration: tiles
// 1..n*n-1 in row-major order, blank last.
func NewSolved(n int) *Puzzle {
	cells := make([]byte, n*n)
	for i := range cells {
		cells[i] = byte((i + 1) % (n * n))
	}
	return &Puzzle{n: n, cells: cells}
}

// Shuffle applies a random walk of legal moves to the puzzle, guaranteeing
// the result stays solvable (every intermediate state is reached by an
// actual legal move from the solved state).
func (p *Puzzle) Shuffle(steps int, rnd *rand.Rand) {
	for i := 0; i < steps; i++ {
		legal := p.legalMoves()
		m := legal[rnd.Intn(len(legal))]
		p.Apply(m)
	}
}

func (p *Puzzle) blankIndex() int {
	for i, c := range p.cells {
		if c == 0 {
			return i
		}
	}
	panic("redoplay: puzzle has no blank cell")
}

// legalMoves returns every move that can be applied from the current
// configuration.
func (p *Puzzle) legalMoves() []int {
	var out []int
	for _, m := range allMoves {
		if _, ok := p.targetIndex(m); ok {
			out = append(out, m)
		}
	}
	return out
}

// targetIndex returns the cell that would swap with the blank under move m.
func (p *Puzzle) targetIndex(m int) (int, bool) {
	b := p.blankIndex()
	row, col := b/p.n, b%p.n
	switch m {
	case MoveUp:
		if row == 0 {
			return 0, false
		}
		return b - p.n, true
	case MoveDown:
		if row == p.n-1 {
			return 0, false
		}
		return b + p.n, true
	case MoveLeft:
		if col == 0 {
			return 0, false
		}
		return b - 1, true
	case MoveRight:
		if col == p.n-1 {
			return 0, false
		}
		return b + 1, true
	default:
		return 0, false
	}
}

// Apply slides the blank according to m, returning false if m is not legal
// from the current configuration.
func (p *Puzzle) Apply(m int) bool {
	target, ok := p.targetIndex(m)
	if !ok {
		return false
	}
	b := p.blankIndex()
	p.cells[b], p.cells[target] = p.cells[target], p.cells[b]
	return true
}

// IsSolved reports whether the puzzle is in its solved configuration.
func (p *Puzzle) IsSolved() bool {
	for i, c := range p.cells {
		want := byte((i + 1) % (p.n * p.n))
		if c != want {
			return false
		}
	}
	return true
}

// State encodes the puzzle as a redo.Session state buffer: the n*n grid
// bytes (the comparable region) followed by one scratch byte the session
// never compares on, set to annotation. Every caller in this command
// passes 0.
func (p *Puzzle) State(annotation byte) []byte {
	out := make([]byte, len(p.cells)+1)
	copy(out, p.cells)
	out[len(p.cells)] = annotation
	return out
}

// FromState reconstructs a Puzzle from a state buffer produced by State.
func FromState(n int, state []byte) *Puzzle {
	cells := make([]byte, n*n)
	copy(cells, state[:n*n])
	return &Puzzle{n: n, cells: cells}
}

// Clone returns an independent copy of p.
func (p *Puzzle) Clone() *Puzzle {
	cells := make([]byte, len(p.cells))
	copy(cells, p.cells)
	return &Puzzle{n: p.n, cells: cells}
}
