package game

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

// Board is the Minesweeper engine. It owns the grid and the frontier
// tracker and is the only component that mutates cell state. Commands are
// synchronous and run to completion, including cascades, so invariants
// are never observable mid-mutation. One Board per concurrent game.
type Board struct {
	grid    *Grid
	tracker *Tracker
	rng     *rand.Rand
	layout  []Coord

	bombs       int
	bombsPlaced bool
	gameOver    bool
	outcome     Outcome
	flags       int
	uncovered   int
	changed     []Coord
}

type Option func(*Board)

// WithRand sets the random source used for bomb placement, for
// reproducible games.
func WithRand(rng *rand.Rand) Option {
	return func(b *Board) {
		if rng != nil {
			b.rng = rng
		}
	}
}

// WithLayout fixes the bomb coordinates instead of placing them randomly.
// Placement is still lazy: the layout is applied on the first reveal.
func WithLayout(bombs ...Coord) Option {
	return func(b *Board) {
		b.layout = bombs
	}
}

// NewBoard creates a board with the given dimensions and bomb count.
// The configuration must satisfy rows, cols >= 1 and 0 < bombs < rows*cols.
func NewBoard(rows, cols, bombs int, options ...Option) (*Board, error) {
	if err := validateConfig(rows, cols, bombs); err != nil {
		return nil, err
	}

	b := &Board{
		grid:    NewGrid(rows, cols),
		tracker: NewTracker(rows, cols),
		rng:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		bombs:   bombs,
	}
	for _, option := range options {
		option(b)
	}
	return b, nil
}

func validateConfig(rows, cols, bombs int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfiguration, rows, cols)
	}
	if bombs <= 0 || bombs >= rows*cols {
		return fmt.Errorf("%w: bomb count %d must be between 1 and %d", ErrInvalidConfiguration, bombs, rows*cols-1)
	}
	return nil
}

// Reset reverts the board to a fresh game of the given size. Cells are
// reset in place when the dimensions are unchanged.
func (b *Board) Reset(rows, cols, bombs int) error {
	if err := validateConfig(rows, cols, bombs); err != nil {
		return err
	}

	b.grid.Reset(rows, cols)
	b.tracker.Reset(rows, cols)
	b.bombs = bombs
	b.bombsPlaced = false
	b.gameOver = false
	b.outcome = InProgress
	b.flags = 0
	b.uncovered = 0
	b.changed = b.changed[:0]
	return nil
}

// placeBombs selects bomb cells, excluding the seed and its full Moore
// neighborhood so the first reveal always opens safely, and fixes every
// cell's NeighborBombs count.
func (b *Board) placeBombs(seed Coord) error {
	sites := b.layout
	if sites == nil {
		candidates := make([]Coord, 0, b.grid.Rows()*b.grid.Cols())
		for r := 0; r < b.grid.Rows(); r++ {
			for c := 0; c < b.grid.Cols(); c++ {
				if abs(r-seed.Row) <= 1 && abs(c-seed.Col) <= 1 {
					continue
				}
				candidates = append(candidates, Coord{r, c})
			}
		}
		if len(candidates) < b.bombs {
			return fmt.Errorf("%w: %d bombs do not fit outside the safe zone around (%d, %d)",
				ErrInvalidConfiguration, b.bombs, seed.Row, seed.Col)
		}
		b.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		sites = candidates[:b.bombs]
	}

	for _, site := range sites {
		cell := b.grid.At(site.Row, site.Col)
		cell.Bomb = true
		for _, n := range b.grid.Neighbors(site.Row, site.Col) {
			b.grid.At(n.Row, n.Col).NeighborBombs++
		}
	}
	b.bombsPlaced = true
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Reveal uncovers the cell at (r, c), placing bombs first if this is the
// opening move. Flagged and already-uncovered cells are protected no-ops.
// Revealing a bomb loses the game. A non-nil error is only possible on the
// opening move, when the bomb count cannot fit outside the safe zone; the
// game has not started in that case.
func (b *Board) Reveal(r, c int) (Result, error) {
	cell := b.grid.At(r, c)
	if b.gameOver {
		return b.result(Ignored), nil
	}

	if !b.bombsPlaced {
		if err := b.placeBombs(Coord{r, c}); err != nil {
			return b.result(Ignored), err
		}
	}

	switch cell.State {
	case Flagged, Uncovered:
		return b.result(Ignored), nil
	}

	b.changed = b.changed[:0]
	if b.revealCell(Coord{r, c}) {
		b.checkWin()
	}
	return b.result(Applied), nil
}

// revealCell uncovers a covered cell, cascading through zero-count
// regions with an explicit worklist. Returns false if a bomb was hit.
func (b *Board) revealCell(start Coord) bool {
	cell := b.grid.At(start.Row, start.Col)
	if cell.State != Covered {
		return true
	}
	if cell.Bomb {
		b.loseGame()
		return false
	}

	worklist := []Coord{start}
	for len(worklist) > 0 {
		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		cell := b.grid.At(cur.Row, cur.Col)
		if cell.State != Covered {
			continue
		}
		cell.State = Uncovered
		b.uncovered++
		b.changed = append(b.changed, cur)

		b.reevaluateFrontier(cur)
		for _, n := range b.grid.Neighbors(cur.Row, cur.Col) {
			b.reevaluateFrontier(n)
		}

		// Cells are uncovered before their neighbors are pushed, so the
		// cascade visits each cell at most once and always terminates.
		if cell.NeighborBombs == 0 {
			for _, n := range b.grid.Neighbors(cur.Row, cur.Col) {
				if b.grid.At(n.Row, n.Col).State == Covered {
					worklist = append(worklist, n)
				}
			}
		}
	}
	return true
}

// Chord reveals every covered, non-flagged neighbor of an uncovered cell
// whose flag count matches its bomb count. Cascades apply transitively. A
// wrongly placed flag can make a chord hit a bomb and lose the game.
func (b *Board) Chord(r, c int) Result {
	cell := b.grid.At(r, c)
	if b.gameOver || cell.State != Uncovered || cell.NeighborFlags != cell.NeighborBombs {
		return b.result(Ignored)
	}

	b.changed = b.changed[:0]
	for _, n := range b.grid.Neighbors(r, c) {
		if b.grid.At(n.Row, n.Col).State != Covered {
			continue
		}
		if !b.revealCell(n) {
			return b.result(Applied)
		}
	}
	b.checkWin()
	return b.result(Applied)
}

// Flag marks a covered cell as a bomb and updates every neighbor's flag
// count cache transactionally.
func (b *Board) Flag(r, c int) Result {
	cell := b.grid.At(r, c)
	if b.gameOver || cell.State != Covered {
		return b.result(Ignored)
	}

	b.changed = b.changed[:0]
	b.applyFlag(Coord{r, c})
	return b.result(Applied)
}

// Unflag is the exact inverse of Flag.
func (b *Board) Unflag(r, c int) Result {
	cell := b.grid.At(r, c)
	if b.gameOver || cell.State != Flagged {
		return b.result(Ignored)
	}

	b.changed = b.changed[:0]
	cell.State = Covered
	b.flags--
	b.changed = append(b.changed, Coord{r, c})
	for _, n := range b.grid.Neighbors(r, c) {
		b.grid.At(n.Row, n.Col).NeighborFlags--
		b.reevaluateFrontier(n)
	}
	return b.result(Applied)
}

func (b *Board) applyFlag(c Coord) {
	cell := b.grid.At(c.Row, c.Col)
	cell.State = Flagged
	b.flags++
	b.changed = append(b.changed, c)
	for _, n := range b.grid.Neighbors(c.Row, c.Col) {
		b.grid.At(n.Row, n.Col).NeighborFlags++
		b.reevaluateFrontier(n)
	}
}

// reevaluateFrontier recomputes frontier membership for one cell: active
// iff uncovered with at least one covered, non-flagged neighbor.
func (b *Board) reevaluateFrontier(c Coord) {
	cell := b.grid.At(c.Row, c.Col)
	if cell.State == Uncovered && b.coveredNeighbors(c.Row, c.Col) > 0 {
		b.tracker.Insert(c)
	} else {
		b.tracker.Remove(c)
	}
}

func (b *Board) coveredNeighbors(r, c int) int {
	return b.grid.countNeighbors(r, c, func(cell *Cell) bool {
		return cell.State == Covered
	})
}

// loseGame ends the game. Cell states are left untouched, but every cell
// is reported changed and Bomb becomes queryable board-wide so a shell
// can display the full contents.
func (b *Board) loseGame() {
	b.gameOver = true
	b.outcome = Lost
	b.changed = b.changed[:0]
	for r := 0; r < b.grid.Rows(); r++ {
		for c := 0; c < b.grid.Cols(); c++ {
			b.changed = append(b.changed, Coord{r, c})
		}
	}
}

// checkWin ends the game once every non-bomb cell is uncovered,
// auto-flagging whatever bombs remain unflagged. It runs after every
// reveal and chord because a cascade can finish the board on its own.
func (b *Board) checkWin() {
	if b.uncovered != b.grid.Rows()*b.grid.Cols()-b.bombs {
		return
	}
	for r := 0; r < b.grid.Rows(); r++ {
		for c := 0; c < b.grid.Cols(); c++ {
			cell := b.grid.At(r, c)
			if cell.Bomb && cell.State != Flagged {
				b.applyFlag(Coord{r, c})
			}
		}
	}
	b.gameOver = true
	b.outcome = Won
}

func (b *Board) result(status Status) Result {
	res := Result{Status: status, Outcome: b.outcome}
	if status == Applied {
		res.Changed = append([]Coord(nil), b.changed...)
	}
	return res
}

// Queries. Coordinates outside the grid panic, as with commands.

func (b *Board) Rows() int  { return b.grid.Rows() }
func (b *Board) Cols() int  { return b.grid.Cols() }
func (b *Board) Bombs() int { return b.bombs }

func (b *Board) State(r, c int) CellState { return b.grid.At(r, c).State }

// Bomb reports whether the cell holds a bomb. Only meaningful for display
// once the game is over; the solver never consults it.
func (b *Board) Bomb(r, c int) bool { return b.grid.At(r, c).Bomb }

func (b *Board) NeighborBombs(r, c int) int { return b.grid.At(r, c).NeighborBombs }
func (b *Board) NeighborFlags(r, c int) int { return b.grid.At(r, c).NeighborFlags }

func (b *Board) Neighbors(r, c int) []Coord { return b.grid.Neighbors(r, c) }

func (b *Board) GameOver() bool   { return b.gameOver }
func (b *Board) Outcome() Outcome { return b.outcome }

// FlagsRemaining is the bomb count minus flags placed. It may go negative
// when the player over-flags; that is a display concern, not an invariant
// violation.
func (b *Board) FlagsRemaining() int { return b.bombs - b.flags }

// Frontier exposes the tracker for solver enumeration.
func (b *Board) Frontier() *Tracker { return b.tracker }
