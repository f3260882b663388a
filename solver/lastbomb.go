package solver

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/ZibingZhang/Minesweeper/game"
)

// ErrContradiction means the last-bomb enumeration found no covered cell
// that could hold the remaining bomb. The board state violated an
// invariant upstream (typically a wrong flag); it is surfaced rather than
// swallowed.
var ErrContradiction = errors.New("no valid hypothesis for the last bomb")

// FindLastBomb runs the exhaustive single-bomb search. It applies only
// when exactly one bomb remains unflagged: each frontier cell still needs
// at least one bomb among its covered neighbors, so the one remaining
// bomb must be adjacent to every frontier cell simultaneously. Covered
// cells that can never be that bomb are proven safe and revealed; a
// unique candidate is flagged outright. Findings are then propagated with
// another Solve pass.
//
// The precondition is deliberate: with two or more bombs left this
// adjacency argument does not hold, and no multi-bomb constraint search
// is attempted.
func (s *Solver) FindLastBomb() (Report, error) {
	if s.board.GameOver() || s.board.FlagsRemaining() != 1 {
		return Report{Outcome: s.board.Outcome()}, nil
	}

	var covered []game.Coord
	for r := 0; r < s.board.Rows(); r++ {
		for c := 0; c < s.board.Cols(); c++ {
			if s.board.State(r, c) == game.Covered {
				covered = append(covered, game.Coord{Row: r, Col: c})
			}
		}
	}
	if len(covered) == 0 {
		return Report{Outcome: s.board.Outcome()}, nil
	}

	active := s.board.Frontier().Cells()

	hypothesis := make(map[game.Coord]bool, len(covered))
	for _, candidate := range covered {
		valid := true
		for _, a := range active {
			if !adjacent(candidate, a) {
				valid = false
				break
			}
		}
		if valid {
			hypothesis[candidate] = true
		}
	}

	if len(hypothesis) == 0 {
		log.Warn().
			Int("covered", len(covered)).
			Int("active", len(active)).
			Msg("last-bomb search found no valid hypothesis")
		return Report{Outcome: s.board.Outcome()}, ErrContradiction
	}

	// Every valid configuration places the bomb on its own hypothesis
	// cell, so a cell outside the hypothesis set is a bomb in no
	// configuration at all.
	for _, c := range covered {
		if !hypothesis[c] {
			s.board.Reveal(c.Row, c.Col)
		}
	}
	if len(hypothesis) == 1 {
		for c := range hypothesis {
			s.board.Flag(c.Row, c.Col)
		}
	}

	return s.Solve(), nil
}

// adjacent reports whether two cells are Moore-adjacent, the Euclidean
// distance <= sqrt(2) test expressed on grid offsets.
func adjacent(a, b game.Coord) bool {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	return dr >= -1 && dr <= 1 && dc >= -1 && dc <= 1
}
