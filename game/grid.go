package game

import "fmt"

// Cell is a single square on the board. NeighborBombs is fixed once bombs
// are placed; NeighborFlags is a denormalized count of flagged neighbors
// that the board keeps in sync with every flag and unflag.
type Cell struct {
	Bomb          bool
	State         CellState
	NeighborBombs int
	NeighborFlags int
}

// neighborOffsets spans the Moore neighborhood: the up-to-8 adjacent cells
// including diagonals, clipped at the grid edges.
var neighborOffsets = [8]Coord{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid is a rows x cols matrix of cells stored row-major. The board owns
// the grid exclusively; nothing else mutates cell state.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

func NewGrid(rows, cols int) *Grid {
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Reset reverts every cell to covered with no bomb and zero counts. The
// backing slice is reused when the dimensions are unchanged.
func (g *Grid) Reset(rows, cols int) {
	if rows != g.rows || cols != g.cols {
		g.rows = rows
		g.cols = cols
		g.cells = make([]Cell, rows*cols)
		return
	}
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
}

// At returns the cell at (r, c). Out-of-grid coordinates are a programmer
// error and panic at this boundary.
func (g *Grid) At(r, c int) *Cell {
	if !g.Contains(r, c) {
		panic(fmt.Sprintf("invalid coordinate (%d, %d) on %dx%d grid", r, c, g.rows, g.cols))
	}
	return &g.cells[r*g.cols+c]
}

func (g *Grid) Contains(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// Neighbors returns the coordinates of the Moore neighborhood of (r, c),
// in row-major order.
func (g *Grid) Neighbors(r, c int) []Coord {
	neighbors := make([]Coord, 0, 8)
	for _, offset := range neighborOffsets {
		nr, nc := r+offset.Row, c+offset.Col
		if g.Contains(nr, nc) {
			neighbors = append(neighbors, Coord{nr, nc})
		}
	}
	return neighbors
}

// countNeighbors tallies neighbors of (r, c) that satisfy the predicate.
func (g *Grid) countNeighbors(r, c int, pred func(*Cell) bool) int {
	count := 0
	for _, offset := range neighborOffsets {
		nr, nc := r+offset.Row, c+offset.Col
		if g.Contains(nr, nc) && pred(&g.cells[nr*g.cols+nc]) {
			count++
		}
	}
	return count
}
