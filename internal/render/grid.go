package render

import (
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/board"
)

// View is the read-only surface a renderer needs. [*board.Board]
// implements it.
type View interface {
	Width() int
	Height() int
	Lost() bool
	IsOpen(p board.Position) bool
	IsMine(p board.Position) bool
	IsFlagged(p board.Position) bool
	NeighboringMineCount(p board.Position) uint8
}

type CellState int8

const (
	Unknown          CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
	/*
	 * 0 to 8 mean the cell is open and carry its surrounding mine count.
	 *
	 * Values from 64 up only appear once the game is lost, when every
	 * mine is shown and flags are marked right or wrong.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return " "
	case s == Flagged:
		return "F"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "*"
	}
}

// Cell reports what the player is allowed to see at p.
func Cell(v View, p board.Position) CellState {
	open, mine, flagged := v.IsOpen(p), v.IsMine(p), v.IsFlagged(p)
	switch {
	case open && mine:
		return ExplodedMine
	case open:
		return CellState(v.NeighboringMineCount(p))
	case v.Lost() && flagged && mine:
		return CorrectlyFlagged
	case v.Lost() && flagged:
		return FalselyFlagged
	case v.Lost() && mine:
		return UnflaggedMine
	case flagged:
		return Flagged
	default:
		return Unknown
	}
}

// Grid is a row-major snapshot of cell states.
type Grid []CellState

func Snapshot(v View) Grid {
	w, h := v.Width(), v.Height()
	g := make(Grid, 0, w*h)
	for row := range h {
		for col := range w {
			g = append(g, Cell(v, board.Position{Col: col, Row: row}))
		}
	}
	return g
}

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for i, c := range g {
		b.WriteString(c.String())
		if (i+1)%width == 0 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
