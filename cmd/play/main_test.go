package main

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/render"
)

func TestPlayWin(t *testing.T) {
	b, err := board.WithMines(3, 3, board.Position{})
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, play(b, strings.NewReader("o 1 1\nnope\nf 0 0\nc 1 1\n"), &out, render.ASCII))

	assert.True(t, b.Won())
	assert.Contains(t, out.String(), "error: unknown command")
	assert.Contains(t, out.String(), "F1.\n11.\n...\n")
	assert.True(t, strings.HasSuffix(out.String(), "you win!\n"))
}

func TestPlayLose(t *testing.T) {
	b, err := board.WithMines(2, 1, board.Position{Col: 1})
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, play(b, strings.NewReader("o 1 0\no 0 0\n"), &out, render.ASCII))

	assert.True(t, b.Lost())
	assert.False(t, b.IsOpen(board.Position{}))
	assert.True(t, strings.HasSuffix(out.String(), "boom, you lose.\n"))
}

func TestPlayEOF(t *testing.T) {
	b, err := board.WithMines(3, 3, board.Position{})
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, play(b, strings.NewReader("f 2 2\n"), &out, render.ASCII))
	assert.False(t, b.Won())
	assert.False(t, b.Lost())
}

func TestNewBoardLogsReplayableSeed(t *testing.T) {
	log, hook := test.NewNullLogger()

	first, err := newBoard(log, 9, 9, 10, 0)
	require.NoError(t, err)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	seed, ok := entry.Data["seed"].(uint64)
	require.True(t, ok)
	assert.NotZero(t, seed)

	replayed, err := newBoard(log, 9, 9, 10, seed)
	require.NoError(t, err)
	assert.Equal(t, seed, hook.LastEntry().Data["seed"])
	for row := range 9 {
		for col := range 9 {
			p := board.Position{Col: col, Row: row}
			assert.Equal(t, first.IsMine(p), replayed.IsMine(p), p.String())
		}
	}
}
