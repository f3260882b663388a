// Package solver plays the board by exact logical deduction. It drives
// the engine exclusively through its public commands and queries plus the
// frontier enumeration; it never reaches into grid internals and never
// consults bomb locations.
package solver

import (
	"github.com/ZibingZhang/Minesweeper/experiments/metrics"
	"github.com/ZibingZhang/Minesweeper/game"
)

type Solver struct {
	board   *game.Board
	metrics metrics.Collector
}

type Option func(*Solver)

// WithMetrics attaches a collector that records rule applications and
// pass counts for experiment output.
func WithMetrics(collector metrics.Collector) Option {
	return func(s *Solver) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

func New(board *game.Board, options ...Option) *Solver {
	s := &Solver{
		board:   board,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Report summarizes what one Solve call accomplished.
type Report struct {
	Passes   int
	Flagged  int
	Revealed int
	Outcome  game.Outcome
}

// FlagObvious applies the flag-complete rule over a snapshot of the
// frontier: when a cell's bomb count equals its flag count plus its
// covered-neighbor count, every covered neighbor must be a bomb. Returns
// whether any flag was placed.
func (s *Solver) FlagObvious() bool {
	changed := false
	for _, c := range s.board.Frontier().Cells() {
		if s.board.GameOver() {
			break
		}
		covered := s.coveredNeighbors(c)
		if len(covered) == 0 {
			continue
		}
		if s.board.NeighborBombs(c.Row, c.Col) == s.board.NeighborFlags(c.Row, c.Col)+len(covered) {
			for _, n := range covered {
				s.board.Flag(n.Row, n.Col)
			}
			s.metrics.AddFlagged(len(covered))
			changed = true
		}
	}
	return changed
}

// RevealObvious applies the reveal-complete rule over a snapshot of the
// frontier: when a cell's flag count equals its bomb count, every covered
// neighbor is safe and is opened with a chord. Returns whether any cell
// was revealed.
func (s *Solver) RevealObvious() bool {
	changed := false
	for _, c := range s.board.Frontier().Cells() {
		if s.board.GameOver() {
			break
		}
		if len(s.coveredNeighbors(c)) == 0 {
			continue
		}
		if s.board.NeighborFlags(c.Row, c.Col) == s.board.NeighborBombs(c.Row, c.Col) {
			res := s.board.Chord(c.Row, c.Col)
			if res.Status == game.Applied {
				s.metrics.AddRevealed(len(res.Changed))
				changed = true
			}
		}
	}
	return changed
}

// Solve alternates the two rules over full frontier passes until a pass
// changes nothing or the game ends. Each successful application strictly
// shrinks the set of covered cells adjacent to the frontier, so the
// fixpoint is always reached.
func (s *Solver) Solve() Report {
	s.metrics.Start()

	passes := 0
	beforeFlagged, beforeRevealed := s.flaggedAndUncovered()
	for !s.board.GameOver() {
		flagged := s.FlagObvious()
		revealed := s.RevealObvious()
		passes++
		s.metrics.AddPass()
		if !flagged && !revealed {
			break
		}
	}
	flagged, revealed := s.flaggedAndUncovered()

	report := Report{
		Passes:   passes,
		Flagged:  flagged - beforeFlagged,
		Revealed: revealed - beforeRevealed,
		Outcome:  s.board.Outcome(),
	}
	s.metrics.Complete(report.Outcome)
	return report
}

func (s *Solver) flaggedAndUncovered() (int, int) {
	flagged, uncovered := 0, 0
	for r := 0; r < s.board.Rows(); r++ {
		for c := 0; c < s.board.Cols(); c++ {
			switch s.board.State(r, c) {
			case game.Flagged:
				flagged++
			case game.Uncovered:
				uncovered++
			}
		}
	}
	return flagged, uncovered
}

func (s *Solver) coveredNeighbors(c game.Coord) []game.Coord {
	var covered []game.Coord
	for _, n := range s.board.Neighbors(c.Row, c.Col) {
		if s.board.State(n.Row, n.Col) == game.Covered {
			covered = append(covered, n)
		}
	}
	return covered
}
