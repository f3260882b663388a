package game

// Tracker is the frontier index: the set of uncovered cells that still
// have at least one covered, non-flagged neighbor. It is a derived index
// maintained by the board for solver efficiency and holds no authority
// over game state. Membership is a fixed row-major bitmap, so insert and
// remove are O(1) and enumeration order is deterministic.
type Tracker struct {
	rows   int
	cols   int
	active []bool
	count  int
}

func NewTracker(rows, cols int) *Tracker {
	return &Tracker{
		rows:   rows,
		cols:   cols,
		active: make([]bool, rows*cols),
	}
}

// Reset clears all entries, reusing the bitmap when dimensions match.
func (t *Tracker) Reset(rows, cols int) {
	if rows != t.rows || cols != t.cols {
		t.rows = rows
		t.cols = cols
		t.active = make([]bool, rows*cols)
		t.count = 0
		return
	}
	for i := range t.active {
		t.active[i] = false
	}
	t.count = 0
}

func (t *Tracker) Insert(c Coord) {
	i := c.Row*t.cols + c.Col
	if !t.active[i] {
		t.active[i] = true
		t.count++
	}
}

func (t *Tracker) Remove(c Coord) {
	i := c.Row*t.cols + c.Col
	if t.active[i] {
		t.active[i] = false
		t.count--
	}
}

func (t *Tracker) Contains(c Coord) bool {
	return t.active[c.Row*t.cols+c.Col]
}

func (t *Tracker) Len() int { return t.count }

// Cells returns the active cells ordered by row then column. The slice is
// a snapshot; callers may mutate the board while iterating it.
func (t *Tracker) Cells() []Coord {
	cells := make([]Coord, 0, t.count)
	for i, on := range t.active {
		if on {
			cells = append(cells, Coord{i / t.cols, i % t.cols})
		}
	}
	return cells
}
