package board

import "iter"

// Neighbors yields the up to eight cells around p that lie on the board.
// p itself is never yielded.
func (b *Board) Neighbors(p Position) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for col := max(p.Col-1, 0); col <= min(p.Col+1, b.width-1); col++ {
			for row := max(p.Row-1, 0); row <= min(p.Row+1, b.height-1); row++ {
				n := Position{col, row}
				if n == p {
					continue
				}
				if !yield(n) {
					return
				}
			}
		}
	}
}

// NeighboringMineCount is recomputed on every call.
func (b *Board) NeighboringMineCount(p Position) uint8 {
	var c uint8
	for n := range b.Neighbors(p) {
		if b.mines.Has(n) {
			c++
		}
	}
	return c
}
