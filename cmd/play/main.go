package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/render"
)

const help = `commands:
  o X Y   open a cell (on an open cell: chord)
  f X Y   toggle a flag
  c X Y   chord an open cell
  g       redraw`

var (
	width  = flag.Int("width", 9, "board width")
	height = flag.Int("height", 9, "board height")
	mines  = flag.Int("mines", 10, "number of mines")
	seed   = flag.Uint64("seed", 0, "random seed (0 picks one)")
	ascii  = flag.Bool("ascii", false, "draw with ASCII instead of emoji")
)

// play runs the command loop until the game ends or in runs dry.
func play(b *board.Board, in io.Reader, out io.Writer, style render.Style) error {
	fmt.Fprintln(out, help)
	if err := render.Text(out, b, style); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for !b.Lost() && !b.Won() {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if _, err := command.Execute(b, scanner.Text()); err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}
		if err := render.Text(out, b, style); err != nil {
			return err
		}
	}

	if b.Won() {
		fmt.Fprintln(out, "you win!")
	} else {
		fmt.Fprintln(out, "boom, you lose.")
	}
	return nil
}

// newBoard deals a board from seed, picking a fresh seed when it is zero.
// The seed is logged so a game can be replayed with -seed.
func newBoard(log logrus.FieldLogger, width, height, mines int, seed uint64) (*board.Board, error) {
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.WithField("seed", seed).Info("new game")
	return board.New(width, height, mines, rand.New(rand.NewPCG(seed, seed)))
}

func main() {
	flag.Parse()
	log := logrus.New()

	b, err := newBoard(log, *width, *height, *mines, *seed)
	if err != nil {
		log.Fatal(err)
	}

	style := render.Emoji
	if *ascii {
		style = render.ASCII
	}
	if err := play(b, os.Stdin, os.Stdout, style); err != nil {
		log.Fatal(err)
	}
}
