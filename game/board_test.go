package game

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"
)

func newTestBoard(t *testing.T, rows, cols, bombs int, options ...Option) *Board {
	t.Helper()
	b, err := NewBoard(rows, cols, bombs, options...)
	if err != nil {
		t.Fatalf("expected no error creating board, got %v", err)
	}
	return b
}

// wallLayout splits a 9x9 board with a vertical wall of bombs down column
// 4, plus one bomb in the corner. Revealing on the right side floods only
// the right region.
func wallLayout() []Coord {
	bombs := []Coord{{0, 0}}
	for r := 0; r < 9; r++ {
		bombs = append(bombs, Coord{r, 4})
	}
	return bombs
}

// topRowLayout puts bombs across the whole top row plus (1, 0), leaving
// the center 3x3 clear. Revealing the center opens every non-bomb cell in
// one cascade.
func topRowLayout() []Coord {
	bombs := []Coord{{1, 0}}
	for c := 0; c < 9; c++ {
		bombs = append(bombs, Coord{0, c})
	}
	return bombs
}

func TestPlaceBombsCountAndSafeZone(t *testing.T) {
	b := newTestBoard(t, 9, 9, 10, WithRand(rand.New(rand.NewSource(42))))

	if _, err := b.Reveal(4, 4); err != nil {
		t.Fatalf("expected no error on first reveal, got %v", err)
	}

	bombs := 0
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if b.Bomb(r, c) {
				bombs++
				if r >= 3 && r <= 5 && c >= 3 && c <= 5 {
					t.Errorf("bomb at (%d, %d) inside the safe zone around the seed", r, c)
				}
			}
		}
	}
	if bombs != 10 {
		t.Errorf("expected 10 bombs placed, got %d", bombs)
	}
}

func TestNeighborBombCountsMatchPlacement(t *testing.T) {
	b := newTestBoard(t, 9, 9, 10, WithRand(rand.New(rand.NewSource(7))))
	if _, err := b.Reveal(0, 0); err != nil {
		t.Fatal(err)
	}

	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			want := 0
			for _, n := range b.Neighbors(r, c) {
				if b.Bomb(n.Row, n.Col) {
					want++
				}
			}
			if got := b.NeighborBombs(r, c); got != want {
				t.Errorf("cell (%d, %d): expected %d neighboring bombs, got %d", r, c, want, got)
			}
		}
	}
}

func TestRevealIsLazyUntilFirstCommand(t *testing.T) {
	b := newTestBoard(t, 9, 9, 10)

	if b.bombsPlaced {
		t.Fatal("expected no bombs before the first reveal")
	}
	if _, err := b.Reveal(4, 4); err != nil {
		t.Fatal(err)
	}
	if !b.bombsPlaced {
		t.Error("expected bombs placed after the first reveal")
	}
}

func TestRevealIdempotent(t *testing.T) {
	b := newTestBoard(t, 9, 9, 10, WithLayout(wallLayout()...))

	if _, err := b.Reveal(4, 7); err != nil {
		t.Fatal(err)
	}
	res, err := b.Reveal(4, 7)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != Ignored {
		t.Errorf("expected second reveal to be ignored, got %v", res.Status)
	}
	if len(res.Changed) != 0 {
		t.Errorf("expected no changed cells on repeat reveal, got %d", len(res.Changed))
	}
}

func TestRevealFlaggedCellProtected(t *testing.T) {
	b := newTestBoard(t, 9, 9, 10, WithLayout(wallLayout()...))
	if _, err := b.Reveal(4, 7); err != nil {
		t.Fatal(err)
	}

	b.Flag(0, 0)
	res, err := b.Reveal(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != Ignored {
		t.Errorf("expected reveal of flagged cell to be ignored, got %v", res.Status)
	}
	if b.State(0, 0) != Flagged {
		t.Errorf("expected cell to stay flagged, got %v", b.State(0, 0))
	}
	if b.Outcome() != InProgress {
		t.Errorf("expected game still in progress, got %v", b.Outcome())
	}
}

func TestFlagUpdatesNeighborCaches(t *testing.T) {
	b := newTestBoard(t, 9, 9, 10, WithLayout(wallLayout()...))
	if _, err := b.Reveal(4, 7); err != nil {
		t.Fatal(err)
	}

	b.Flag(4, 4)
	for _, n := range b.Neighbors(4, 4) {
		if got := b.NeighborFlags(n.Row, n.Col); got != 1 {
			t.Errorf("neighbor (%d, %d): expected flag count 1, got %d", n.Row, n.Col, got)
		}
	}
	if b.FlagsRemaining() != 9 {
		t.Errorf("expected 9 flags remaining, got %d", b.FlagsRemaining())
	}

	// Double flag is rejected, not double counted.
	res := b.Flag(4, 4)
	if res.Status != Ignored {
		t.Errorf("expected repeat flag to be ignored, got %v", res.Status)
	}
	if got := b.NeighborFlags(4, 5); got != 1 {
		t.Errorf("expected flag count still 1 after rejected flag, got %d", got)
	}

	b.Unflag(4, 4)
	for _, n := range b.Neighbors(4, 4) {
		if got := b.NeighborFlags(n.Row, n.Col); got != 0 {
			t.Errorf("neighbor (%d, %d): expected flag count 0 after unflag, got %d", n.Row, n.Col, got)
		}
	}
	if b.FlagsRemaining() != 10 {
		t.Errorf("expected 10 flags remaining after unflag, got %d", b.FlagsRemaining())
	}
}

func TestNeighborFlagInvariantAcrossMutations(t *testing.T) {
	b := newTestBoard(t, 9, 9, 10, WithLayout(wallLayout()...))
	if _, err := b.Reveal(4, 7); err != nil {
		t.Fatal(err)
	}

	b.Flag(0, 0)
	b.Flag(3, 4)
	b.Flag(8, 0)
	b.Unflag(3, 4)
	b.Flag(4, 4)

	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			want := 0
			for _, n := range b.Neighbors(r, c) {
				if b.State(n.Row, n.Col) == Flagged {
					want++
				}
			}
			if got := b.NeighborFlags(r, c); got != want {
				t.Errorf("cell (%d, %d): expected flag count %d, got %d", r, c, want, got)
			}
		}
	}
}

func TestFlagsRemainingMayGoNegative(t *testing.T) {
	b := newTestBoard(t, 9, 9, 10, WithLayout(wallLayout()...))
	if _, err := b.Reveal(4, 7); err != nil {
		t.Fatal(err)
	}

	// Over-flag: 11 flags on the covered left region against 10 bombs.
	for i := 0; i < 11; i++ {
		b.Flag(i%9, i/9)
	}
	if b.FlagsRemaining() != -1 {
		t.Errorf("expected flag budget to go negative when over-flagged, got %d", b.FlagsRemaining())
	}
}

func TestCascadeStopsAtNumberedBoundary(t *testing.T) {
	b := newTestBoard(t, 9, 9, 10, WithLayout(wallLayout()...))

	res, err := b.Reveal(4, 7)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != Applied {
		t.Fatalf("expected reveal applied, got %v", res.Status)
	}

	// The wall splits the board: everything right of it opens, everything
	// on or left of it stays covered.
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			state := b.State(r, c)
			if c >= 5 && state != Uncovered {
				t.Errorf("cell (%d, %d): expected uncovered, got %v", r, c, state)
			}
			if c <= 4 && state != Covered {
				t.Errorf("cell (%d, %d): expected covered, got %v", r, c, state)
			}
		}
	}
	if len(res.Changed) != 36 {
		t.Errorf("expected 36 changed cells, got %d", len(res.Changed))
	}

	// Every revealed boundary cell is numbered or on the grid edge.
	for r := 0; r < 9; r++ {
		if b.NeighborBombs(r, 5) == 0 {
			t.Errorf("boundary cell (%d, 5) should have a nonzero bomb count", r)
		}
	}
	if b.Outcome() != InProgress {
		t.Errorf("expected game in progress after partial cascade, got %v", b.Outcome())
	}
}

func TestFrontierTracksCascadeBoundary(t *testing.T) {
	b := newTestBoard(t, 9, 9, 10, WithLayout(wallLayout()...))
	if _, err := b.Reveal(4, 7); err != nil {
		t.Fatal(err)
	}

	want := make([]Coord, 0, 9)
	for r := 0; r < 9; r++ {
		want = append(want, Coord{r, 5})
	}
	got := b.Frontier().Cells()
	if len(got) != len(want) {
		t.Fatalf("expected %d active cells, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("active cell %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestCascadeOpensBoardAndWins(t *testing.T) {
	b := newTestBoard(t, 9, 9, 10, WithLayout(topRowLayout()...))

	res, err := b.Reveal(4, 4)
	if err != nil {
		t.Fatal(err)
	}

	if res.Outcome != Won {
		t.Fatalf("expected the cascade to win the game, got %v", res.Outcome)
	}
	if !b.GameOver() {
		t.Error("expected game over after win")
	}

	// Every non-bomb cell uncovered, every bomb auto-flagged.
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if b.Bomb(r, c) {
				if b.State(r, c) != Flagged {
					t.Errorf("bomb (%d, %d): expected auto-flagged on win, got %v", r, c, b.State(r, c))
				}
			} else if b.State(r, c) != Uncovered {
				t.Errorf("cell (%d, %d): expected uncovered on win, got %v", r, c, b.State(r, c))
			}
		}
	}
	if b.FlagsRemaining() != 0 {
		t.Errorf("expected 0 flags remaining after auto-flagging, got %d", b.FlagsRemaining())
	}
}

func TestRevealBombLosesGame(t *testing.T) {
	b := newTestBoard(t, 9, 9, 10, WithLayout(wallLayout()...))
	if _, err := b.Reveal(4, 7); err != nil {
		t.Fatal(err)
	}

	res, err := b.Reveal(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != Lost {
		t.Fatalf("expected loss on revealing a bomb, got %v", res.Outcome)
	}
	if len(res.Changed) != 81 {
		t.Errorf("expected all 81 cells reported changed for redraw, got %d", len(res.Changed))
	}

	// Terminal state: every further command is a no-op.
	if res, _ := b.Reveal(8, 0); res.Status != Ignored {
		t.Error("expected reveal after game over to be ignored")
	}
	if res := b.Flag(8, 0); res.Status != Ignored {
		t.Error("expected flag after game over to be ignored")
	}
	if res := b.Chord(4, 7); res.Status != Ignored {
		t.Error("expected chord after game over to be ignored")
	}
}

func TestChordRevealsNeighborsWhenFlagsMatch(t *testing.T) {
	b := newTestBoard(t, 3, 3, 2, WithLayout(Coord{0, 0}, Coord{0, 1}))
	if _, err := b.Reveal(2, 0); err != nil {
		t.Fatal(err)
	}

	// Cascade opened rows 1 and 2; (0, 2) is the last safe cell.
	if res := b.Chord(1, 2); res.Status != Ignored {
		t.Error("expected chord without matching flags to be ignored")
	}

	b.Flag(0, 0)
	b.Flag(0, 1)
	res := b.Chord(1, 2)
	if res.Status != Applied {
		t.Fatalf("expected chord applied, got %v", res.Status)
	}
	if b.State(0, 2) != Uncovered {
		t.Errorf("expected (0, 2) revealed by chord, got %v", b.State(0, 2))
	}
	if res.Outcome != Won {
		t.Errorf("expected chord to finish the game, got %v", res.Outcome)
	}
}

func TestChordOnWrongFlagHitsBomb(t *testing.T) {
	b := newTestBoard(t, 3, 3, 2, WithLayout(Coord{0, 0}, Coord{0, 1}))
	if _, err := b.Reveal(2, 0); err != nil {
		t.Fatal(err)
	}

	// Wrong deduction: flag the safe cell next to a bomb.
	b.Flag(0, 2)
	res := b.Chord(1, 2)
	if res.Outcome != Lost {
		t.Errorf("expected chord through a wrong flag to lose, got %v", res.Outcome)
	}
}

func TestResetRestartsGame(t *testing.T) {
	b := newTestBoard(t, 9, 9, 10, WithLayout(wallLayout()...))
	if _, err := b.Reveal(4, 7); err != nil {
		t.Fatal(err)
	}
	b.Flag(0, 0)

	if err := b.Reset(9, 9, 10); err != nil {
		t.Fatalf("expected reset to succeed, got %v", err)
	}

	if b.bombsPlaced || b.GameOver() || b.Outcome() != InProgress {
		t.Error("expected a fresh game after reset")
	}
	if b.Frontier().Len() != 0 {
		t.Errorf("expected empty frontier after reset, got %d", b.Frontier().Len())
	}
	if b.FlagsRemaining() != 10 {
		t.Errorf("expected full flag budget after reset, got %d", b.FlagsRemaining())
	}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if b.State(r, c) != Covered || b.NeighborBombs(r, c) != 0 || b.NeighborFlags(r, c) != 0 {
				t.Fatalf("cell (%d, %d) not reset: %v", r, c, b.grid.At(r, c))
			}
		}
	}
}

func TestInvalidConfigurationRejected(t *testing.T) {
	cases := []struct {
		name              string
		rows, cols, bombs int
	}{
		{"zero rows", 0, 9, 1},
		{"zero bombs", 9, 9, 0},
		{"bombs fill the board", 3, 3, 9},
		{"negative bombs", 9, 9, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewBoard(tc.rows, tc.cols, tc.bombs); !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}

	b := newTestBoard(t, 9, 9, 10)
	if err := b.Reset(2, 2, 4); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration from reset, got %v", err)
	}
}

func TestSafeZoneLeavesNoRoomForBombs(t *testing.T) {
	// 8 bombs on a 3x3 board pass the static check, but a center reveal
	// excludes all nine cells.
	b := newTestBoard(t, 3, 3, 8)

	_, err := b.Reveal(1, 1)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	if b.bombsPlaced {
		t.Error("expected the game not to start on placement failure")
	}
	if b.State(1, 1) != Covered {
		t.Error("expected seed cell to stay covered on placement failure")
	}
}

func TestCommandPanicsOnInvalidCoordinate(t *testing.T) {
	b := newTestBoard(t, 3, 3, 1)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-grid coordinate")
		}
	}()
	b.Flag(3, 3)
}
