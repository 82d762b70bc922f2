package command

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/board"
)

type Kind string

const (
	Noop  Kind = "g"
	Open  Kind = "o"
	Flag  Kind = "f"
	Chord Kind = "c"
)

// Maps known commands to number of arguments
var commandNargs = map[Kind]int{
	Noop:  0,
	Open:  2,
	Flag:  2,
	Chord: 2,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgs        = errors.New("invalid number of arguments")
	ErrBadCoordinate  = errors.New("coordinates must be integers")
)

type Command struct {
	Kind Kind
	Pos  board.Position
}

func (c Command) String() string {
	if c.Kind == Noop {
		return string(c.Kind)
	}
	return fmt.Sprintf("%s %d %d", c.Kind, c.Pos.Col, c.Pos.Row)
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("first argument: %w", ErrBadCoordinate)
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("second argument: %w", ErrBadCoordinate)
		return
	}
	return
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}
	kind := Kind(parts[0])
	nargs, ok := commandNargs[kind]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf("%s: %w", kind, ErrBadArgs)
	}
	cmd := Command{Kind: kind}
	if nargs == 2 {
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return Command{}, err
		}
		cmd.Pos = board.Position{Col: x, Row: y}
	}
	return cmd, nil
}

// Lines yields the non-blank lines of s, trimmed.
func Lines(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, "\n")
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			if !yield(piece) {
				return
			}
		}
	}
}

// Apply runs a single command. The result is only set by an open that
// revealed its own cell.
func Apply(b *board.Board, cmd Command) (*board.OpenResult, error) {
	switch cmd.Kind {
	case Noop:
		return nil, nil
	case Open:
		return b.Open(cmd.Pos)
	case Flag:
		return nil, b.ToggleFlag(cmd.Pos)
	case Chord:
		if !b.Contains(cmd.Pos) {
			return nil, fmt.Errorf("chord at %s: %w", cmd.Pos, board.ErrOutOfBounds)
		}
		if !b.IsOpen(cmd.Pos) {
			return nil, nil
		}
		return b.Open(cmd.Pos)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Kind)
}

// Execute parses and applies newline separated commands. It stops at the
// first error or once the game is over, and reports how many commands
// were applied.
func Execute(b *board.Board, script string) (int, error) {
	applied := 0
	for line := range Lines(script) {
		if b.Lost() || b.Won() {
			break
		}
		cmd, err := Parse(line)
		if err != nil {
			return applied, err
		}
		if _, err := Apply(b, cmd); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}
