package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ZibingZhang/Minesweeper/game"
	"github.com/ZibingZhang/Minesweeper/solver"
)

func newPlayCommand() *cobra.Command {
	var rows, cols, bombs int

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := game.NewBoard(rows, cols, bombs)
			if err != nil {
				return err
			}
			return runShell(board)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 9, "board rows")
	cmd.Flags().IntVar(&cols, "cols", 9, "board columns")
	cmd.Flags().IntVar(&bombs, "bombs", 10, "bomb count")
	return cmd
}

const shellHelp = `commands:
  r ROW COL   reveal
  f ROW COL   flag
  u ROW COL   unflag
  c ROW COL   chord
  s           solve as far as deduction allows
  1           flag obvious cells
  2           reveal obvious cells
  3           find the last bomb
  n           new game
  q           quit`

func runShell(board *game.Board) error {
	s := solver.New(board)
	printBoard(board)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "r", "f", "u", "c":
			coord, ok := parseCoord(board, fields)
			if !ok {
				continue
			}
			var res game.Result
			switch fields[0] {
			case "r":
				var err error
				res, err = board.Reveal(coord.Row, coord.Col)
				if err != nil {
					fmt.Println(err)
					continue
				}
			case "f":
				res = board.Flag(coord.Row, coord.Col)
			case "u":
				res = board.Unflag(coord.Row, coord.Col)
			case "c":
				res = board.Chord(coord.Row, coord.Col)
			}
			if res.Status == game.Ignored {
				fmt.Println("(no effect)")
			}
		case "s":
			report := s.Solve()
			log.Debug().
				Int("passes", report.Passes).
				Int("flagged", report.Flagged).
				Int("revealed", report.Revealed).
				Msg("solve finished")
		case "1":
			s.FlagObvious()
		case "2":
			s.RevealObvious()
		case "3":
			if _, err := s.FindLastBomb(); err != nil {
				fmt.Println(err)
			}
		case "n":
			if err := board.Reset(board.Rows(), board.Cols(), board.Bombs()); err != nil {
				return err
			}
		case "q":
			return nil
		case "h", "help":
			fmt.Println(shellHelp)
			continue
		default:
			fmt.Println(shellHelp)
			continue
		}

		printBoard(board)
		switch board.Outcome() {
		case game.Won:
			fmt.Println("You Win")
		case game.Lost:
			fmt.Println("You Lose")
		default:
			fmt.Printf("Bombs Left: %d\n", board.FlagsRemaining())
		}
	}
}

func parseCoord(board *game.Board, fields []string) (game.Coord, bool) {
	if len(fields) != 3 {
		fmt.Println("expected: ROW COL")
		return game.Coord{}, false
	}
	r, err1 := strconv.Atoi(fields[1])
	c, err2 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || r < 0 || r >= board.Rows() || c < 0 || c >= board.Cols() {
		fmt.Printf("coordinates must be within 0-%d 0-%d\n", board.Rows()-1, board.Cols()-1)
		return game.Coord{}, false
	}
	return game.Coord{Row: r, Col: c}, true
}

func printBoard(board *game.Board) {
	fmt.Print("   ")
	for c := 0; c < board.Cols(); c++ {
		fmt.Printf("%2d", c)
	}
	fmt.Println()

	for r := 0; r < board.Rows(); r++ {
		fmt.Printf("%2d:", r)
		for c := 0; c < board.Cols(); c++ {
			fmt.Printf(" %s", cellRune(board, r, c))
		}
		fmt.Println()
	}
}

func cellRune(board *game.Board, r, c int) string {
	// After a loss the full contents are displayed.
	if board.Outcome() == game.Lost {
		if board.Bomb(r, c) {
			return "*"
		}
		if board.NeighborBombs(r, c) == 0 {
			return "."
		}
		return strconv.Itoa(board.NeighborBombs(r, c))
	}

	switch board.State(r, c) {
	case game.Flagged:
		return "F"
	case game.Covered:
		return "-"
	}
	if board.NeighborBombs(r, c) == 0 {
		return "."
	}
	return strconv.Itoa(board.NeighborBombs(r, c))
}
