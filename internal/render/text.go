package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/vancomm/minesweeper/internal/board"
)

type Style struct {
	Closed, Flag, Mine, Empty string
	// Count formats an open cell with 1 to 8 neighbouring mines.
	Count func(n int) string
}

var (
	Emoji = Style{
		Closed: "🟦 ",
		Flag:   "🚩 ",
		Mine:   "💣 ",
		Empty:  "⬜ ",
		Count:  func(n int) string { return fmt.Sprintf(" %d ", n) },
	}
	ASCII = Style{
		Closed: "#",
		Flag:   "F",
		Mine:   "*",
		Empty:  ".",
		Count:  func(n int) string { return fmt.Sprint(n) },
	}
)

func (s Style) symbol(c CellState) string {
	switch {
	case c == Unknown:
		return s.Closed
	case c == Flagged || c == FalselyFlagged:
		return s.Flag
	case c == 0:
		return s.Empty
	case 0 < c && c <= 8:
		return s.Count(int(c))
	default:
		return s.Mine
	}
}

// Text writes the board one row per line.
func Text(w io.Writer, v View, style Style) error {
	bw := bufio.NewWriter(w)
	for row := range v.Height() {
		for col := range v.Width() {
			c := Cell(v, board.Position{Col: col, Row: row})
			if _, err := bw.WriteString(style.symbol(c)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
