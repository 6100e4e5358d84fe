package main

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"

	"github.com/solvertree/redo/pkg/redo"
)

// snapshotNode is the serialized form of one position, keyed by its own
// index within the snapshot so children can reference their parent by
// position rather than by pointer.
type snapshotNode struct {
	Parent      int    `json:"parent"` // index into Nodes, -1 for the root
	Move        int    `json:"move"`
	State       []byte `json:"state"`
	Endpoint    int    `json:"endpoint"`
	MoveCount   int    `json:"move_count"`
}

// snapshot is everything save writes to disk: enough to rebuild every
// position via AddPosition with CheckLater, followed by one
// SetBetterSweep on load.
type snapshot struct {
	PuzzleSize int            `json:"puzzle_size"`
	Nodes      []snapshotNode `json:"nodes"`
}

// Save walks every live position in s and writes a zstd-compressed JSON
// snapshot to path. Positions are walked in a stable parent-before-child
// order (a simple recursive pre-order from the root) so Load can replay
// them with AddPosition directly.
func Save(s *redo.Session, puzzleSize int, path string) error {
	snap := snapshot{PuzzleSize: puzzleSize}

	var walk func(p redo.Position, parentIdx, move int)
	walk = func(p redo.Position, parentIdx, move int) {
		idx := len(snap.Nodes)
		snap.Nodes = append(snap.Nodes, snapshotNode{
			Parent:    parentIdx,
			Move:      move,
			State:     p.State(),
			Endpoint:  p.Endpoint(),
			MoveCount: p.MoveCount(),
		})
		for _, edge := range p.Children() {
			walk(edge.Child, idx, edge.Move)
		}
	}
	walk(s.Root(), -1, 0)

	raw, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "redoplay: marshaling snapshot")
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return errors.Wrap(err, "redoplay: creating zstd encoder")
	}
	defer enc.Close()
	compressed := enc.EncodeAll(raw, nil)

	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return errors.Wrapf(err, "redoplay: writing snapshot %q", path)
	}
	return nil
}

// Load decompresses and decodes a snapshot written by Save, replaying
// every node onto a fresh session via AddPosition with CheckLater, then
// resolving equivalences with one SetBetterSweep pass.
func Load(path string, opts ...redo.Option) (*redo.Session, *Config, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "redoplay: reading snapshot %q", path)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "redoplay: creating zstd decoder")
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "redoplay: decompressing snapshot")
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, nil, errors.Wrap(err, "redoplay: unmarshaling snapshot")
	}
	if len(snap.Nodes) == 0 {
		return nil, nil, errors.New("redoplay: snapshot has no nodes")
	}

	rootState := snap.Nodes[0].State
	stateSize := len(rootState)
	compareSize := snap.PuzzleSize * snap.PuzzleSize

	s, err := redo.Begin(rootState, stateSize, compareSize, opts...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "redoplay: rebuilding session")
	}

	positions := make([]redo.Position, len(snap.Nodes))
	positions[0] = s.Root()
	for i := 1; i < len(snap.Nodes); i++ {
		n := snap.Nodes[i]
		pos, err := s.AddPosition(positions[n.Parent], n.Move, n.State, n.Endpoint, redo.CheckLater)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "redoplay: replaying node %d", i)
		}
		positions[i] = pos
	}
	s.SetBetterSweep()

	cfg := DefaultConfig()
	cfg.PuzzleSize = snap.PuzzleSize
	return s, cfg, nil
}
