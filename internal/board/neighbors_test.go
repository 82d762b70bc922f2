package board

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighbors(t *testing.T) {
	b := mustWithMines(t, 4, 5)

	for col := range b.Width() {
		for row := range b.Height() {
			p := pos(col, row)
			ns := slices.Collect(b.Neighbors(p))

			edgeCol := col == 0 || col == b.Width()-1
			edgeRow := row == 0 || row == b.Height()-1
			want := 8
			switch {
			case edgeCol && edgeRow:
				want = 3
			case edgeCol || edgeRow:
				want = 5
			}

			assert.Len(t, ns, want, "neighbors of %s", p)
			assert.NotContains(t, ns, p)
			for _, n := range ns {
				assert.True(t, b.Contains(n), "%s out of bounds", n)
			}
		}
	}
}

func TestNeighborsDegenerateBoards(t *testing.T) {
	assert.Empty(t, slices.Collect(mustWithMines(t, 1, 1).Neighbors(pos(0, 0))))

	row := mustWithMines(t, 3, 1)
	assert.ElementsMatch(t,
		[]Position{pos(0, 0), pos(2, 0)},
		slices.Collect(row.Neighbors(pos(1, 0))),
	)
}

func TestNeighborsIsRestartable(t *testing.T) {
	b := mustWithMines(t, 3, 3)
	seq := b.Neighbors(pos(1, 1))

	var first []Position
	for n := range seq {
		first = append(first, n)
		if len(first) == 2 {
			break
		}
	}
	require.Len(t, first, 2)
	assert.Len(t, slices.Collect(seq), 8)
}

func TestNeighboringMineCount(t *testing.T) {
	b := mustWithMines(t, 3, 3, pos(0, 0), pos(2, 2), pos(1, 0))

	assert.Equal(t, uint8(3), b.NeighboringMineCount(pos(1, 1)))
	assert.Equal(t, uint8(1), b.NeighboringMineCount(pos(0, 0)))
	assert.Equal(t, uint8(2), b.NeighboringMineCount(pos(0, 1)))
	assert.Equal(t, uint8(0), b.NeighboringMineCount(pos(0, 2)))
}
