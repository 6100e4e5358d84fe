// Command redoplay is a demonstration collaborator for pkg/redo: an
// n-by-n sliding-block puzzle whose move tree is explored, deduplicated,
// and solved entirely through the Session API.
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/solvertree/redo/pkg/redo"
	"github.com/solvertree/redo/pkg/redolog"
	"github.com/solvertree/redo/pkg/redometrics"
)

func main() {
	app := &cli.App{
		Name:  "redoplay",
		Usage: "explore and solve a sliding-block puzzle with pkg/redo",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a YAML config file"},
			&cli.IntFlag{Name: "size", Aliases: []string{"n"}, Value: 0, Usage: "puzzle size (overrides config)"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable debug logging"},
		},
		Commands: []*cli.Command{
			playCommand(),
			solveCommand(),
			inspectCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "redoplay:", err)
		os.Exit(1)
	}
}

func setupLogging(c *cli.Context) *redolog.Logger {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	log := redolog.New(level)
	redolog.SetDefault(log)
	return log
}

func loadConfigFromContext(c *cli.Context) (*Config, error) {
	cfg, err := LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if n := c.Int("size"); n > 0 {
		cfg.PuzzleSize = n
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// playCommand interactively explores the puzzle: each move first tries
// GetNext to replay an already-explored branch; otherwise it calls
// AddPosition and then SuppressCycle, which folds the walk back onto an
// ancestor when the puzzle returns to a state it has already visited.
func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "interactively explore the puzzle tree with a random walk",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "steps", Value: 20, Usage: "number of random moves to make"},
			&cli.IntFlag{Name: "shuffle", Value: 10, Usage: "random shuffle depth before exploring"},
			&cli.IntFlag{Name: "prune-limit", Value: 4, Usage: "cycle prune chain limit, 0 disables pruning"},
			&cli.BoolFlag{Name: "graft-debug", Usage: "log the redo module at debug level without raising every other module"},
		},
		Action: func(c *cli.Context) error {
			log := setupLogging(c)
			if c.Bool("graft-debug") {
				log.SetModuleLevel("redo", slog.LevelDebug)
			}
			cfg, err := loadConfigFromContext(c)
			if err != nil {
				return err
			}
			if c.IsSet("prune-limit") {
				cfg.PruneLimit = c.Int("prune-limit")
			}

			rnd := rand.New(rand.NewSource(1))
			root := NewSolved(cfg.PuzzleSize)
			root.Shuffle(c.Int("shuffle"), rnd)

			met := redometrics.NewSessionMetrics()
			s, err := newSessionWithOpts(cfg, log, met, root, nil)
			if err != nil {
				return err
			}
			defer redo.End(s)

			cursor := s.Root()
			puzzle := root.Clone()
			for i := 0; i < c.Int("steps"); i++ {
				legal := puzzle.legalMoves()
				move := legal[rnd.Intn(len(legal))]

				if next, ok := s.GetNext(cursor, move); ok {
					cursor = next
					puzzle.Apply(move)
					log.Info("move replayed from tree", "move", MoveName(move))
					continue
				}

				puzzle.Apply(move)
				endpoint := 0
				if puzzle.IsSolved() {
					endpoint = 1
				}
				next, err := s.AddPosition(cursor, move, puzzle.State(0), endpoint, redo.Check)
				if err != nil {
					return errors.Wrap(err, "redoplay: adding position")
				}
				cursor = next

				state := puzzle.State(0)
				if s.SuppressCycle(&cursor, state, cfg.PruneLimit) {
					log.Info("cycle suppressed", "movecount", cursor.MoveCount())
				}
			}

			stats := s.Stats()
			fmt.Printf("explored %d positions (%d grafts, %d cycles suppressed, %d chunk growths)\n",
				stats.Population, stats.Grafts, stats.CyclesSuppressed, stats.ChunksGrown)
			log.LogStats(stats)
			return nil
		},
	}
}

// solveCommand breadth-first auto-plays the puzzle to a solved state,
// relying on the session's grafting engine to converge every reachable
// solved configuration onto one canonical shortest solution.
func solveCommand() *cli.Command {
	return &cli.Command{
		Name:  "solve",
		Usage: "breadth-first explore the puzzle until a solution is found",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "shuffle", Value: 6, Usage: "random shuffle depth before solving"},
			&cli.IntFlag{Name: "max-positions", Value: 200000, Usage: "cap on explored positions"},
		},
		Action: func(c *cli.Context) error {
			log := setupLogging(c)
			cfg, err := loadConfigFromContext(c)
			if err != nil {
				return err
			}

			rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
			root := NewSolved(cfg.PuzzleSize)
			root.Shuffle(c.Int("shuffle"), rnd)

			met := redometrics.NewSessionMetrics()
			opts := []redo.Option{redo.WithMaxPositions(c.Int("max-positions"))}
			s, err := newSessionWithOpts(cfg, log, met, root, opts)
			if err != nil {
				return err
			}
			defer redo.End(s)

			type frame struct {
				pos    redo.Position
				puzzle *Puzzle
			}
			queue := []frame{{pos: s.Root(), puzzle: root.Clone()}}
			var solved *frame

			for len(queue) > 0 && solved == nil {
				cur := queue[0]
				queue = queue[1:]

				for _, m := range cur.puzzle.legalMoves() {
					if _, ok := s.GetNext(cur.pos, m); ok {
						continue
					}
					next := cur.puzzle.Clone()
					next.Apply(m)
					endpoint := 0
					if next.IsSolved() {
						endpoint = 1
					}
					pos, err := s.AddPosition(cur.pos, m, next.State(0), endpoint, redo.Check)
					if errors.Is(err, redo.ErrOutOfMemory) {
						log.Warn("position capacity exceeded, stopping search")
						queue = nil
						break
					}
					if err != nil {
						return errors.Wrap(err, "redoplay: adding position")
					}
					if endpoint != 0 {
						solved = &frame{pos: pos, puzzle: next}
						break
					}
					queue = append(queue, frame{pos: pos, puzzle: next})
				}
			}

			finalRoot := s.Root()
			if finalRoot.SolutionSize() == 0 {
				fmt.Println("no solution found")
				return nil
			}
			fmt.Printf("solved in %d moves (endpoint value %d)\n", finalRoot.SolutionSize(), finalRoot.SolutionEnd())
			stats := s.Stats()
			fmt.Printf("explored %d positions (%d grafts, %d cycles suppressed)\n",
				stats.Population, stats.Grafts, stats.CyclesSuppressed)
			log.LogStats(stats)
			return nil
		},
	}
}

func newSessionWithOpts(cfg *Config, log *redolog.Logger, met *redometrics.SessionMetrics, root *Puzzle, extra []redo.Option) (*redo.Session, error) {
	opts := []redo.Option{
		redo.WithLogger(log.Module("redo")),
		redo.WithMetrics(met),
	}
	opts = append(opts, extra...)
	if !cfg.Bloom {
		opts = append(opts, redo.WithoutPresenceFilter())
	}
	policy, err := cfg.graftPolicy()
	if err != nil {
		return nil, err
	}
	state := root.State(0)
	s, err := redo.Begin(state, len(state), cfg.PuzzleSize*cfg.PuzzleSize, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "redoplay: starting session")
	}
	s.SetGraftPolicy(policy)
	return s, nil
}

// inspectCommand loads a saved snapshot, replaying it with CheckLater and
// resolving all deferred equivalences with one SetBetterSweep, then prints
// the resulting tree.
func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "load a saved snapshot and print the exploration tree",
		ArgsUsage: "<snapshot-path>",
		Action: func(c *cli.Context) error {
			log := setupLogging(c)
			path := c.Args().First()
			if path == "" {
				return errors.New("redoplay: inspect requires a snapshot path")
			}

			s, cfg, err := Load(path, redo.WithLogger(log.Module("redo")))
			if err != nil {
				return err
			}
			defer redo.End(s)

			fmt.Printf("puzzle size %d, graft policy %s\n", cfg.PuzzleSize, cfg.GraftPolicy)
			printTree(s.Root(), 0)

			stats := s.Stats()
			fmt.Printf("population %d, grafts %d, cycles suppressed %d, chunk growths %d\n",
				stats.Population, stats.Grafts, stats.CyclesSuppressed, stats.ChunksGrown)
			return nil
		},
	}
}

func printTree(p redo.Position, depth int) {
	for _, edge := range p.Children() {
		for i := 0; i < depth; i++ {
			fmt.Print("  ")
		}
		fmt.Printf("- %s (movecount %d, solution %d)\n", MoveName(edge.Move), edge.Child.MoveCount(), edge.Child.SolutionSize())
		printTree(edge.Child, depth+1)
	}
}
