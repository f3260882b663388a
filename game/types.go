package game

// CellState is one of the three mutually exclusive states of a cell.
type CellState int

const (
	Covered CellState = iota
	Flagged
	Uncovered
)

func (s CellState) String() string {
	switch s {
	case Covered:
		return "Covered"
	case Flagged:
		return "Flagged"
	case Uncovered:
		return "Uncovered"
	}
	return "Unknown"
}

// Outcome is the board-level result of the game so far.
type Outcome int

const (
	InProgress Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "InProgress"
	case Won:
		return "Won"
	case Lost:
		return "Lost"
	}
	return "Unknown"
}

// Status reports how a command was handled. Ignored covers the protected
// and idempotent transitions (revealing a flagged cell, flagging a flagged
// cell, any command after game over); these are normal outcomes, not errors.
type Status int

const (
	Applied Status = iota
	Ignored
)

func (s Status) String() string {
	if s == Applied {
		return "Applied"
	}
	return "Ignored"
}

// Coord identifies a cell by row and column.
type Coord struct {
	Row, Col int
}

// Result is returned by every board command. Changed lists the cells whose
// display changed, in the order they changed, so a shell knows what to
// redraw after each command.
type Result struct {
	Status  Status
	Outcome Outcome
	Changed []Coord
}
