package board

import (
	"fmt"
	"strconv"

	"github.com/zyedidia/generic/mapset"
)

type Position struct {
	Col, Row int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Col, p.Row)
}

type Outcome uint8

const (
	NoMine Outcome = iota + 1
	Mine
)

func (o Outcome) String() string {
	switch o {
	case NoMine:
		return "NoMine"
	case Mine:
		return "Mine"
	default:
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// OpenResult is what a normal open reveals: either a mine or the number
// of mines around the opened cell.
type OpenResult struct {
	Outcome Outcome
	Count   uint8
}

// RandomSource yields uniform integers in [0, n). [*math/rand/v2.Rand]
// satisfies it.
type RandomSource interface {
	IntN(n int) int
}

func randomInRange(src RandomSource, low, high int) int {
	return low + src.IntN(high-low)
}

// Board owns the whole game state. It is not safe for concurrent use.
type Board struct {
	width, height int
	mines         mapset.Set[Position]
	opened        mapset.Set[Position]
	flagged       mapset.Set[Position]
	lost          bool
}

func validate(width, height, mineCount int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if mineCount < 0 || mineCount > width*height {
		return fmt.Errorf("%w: %d mines on %dx%d",
			ErrInvalidMineCount, mineCount, width, height)
	}
	return nil
}

func empty(width, height int) *Board {
	return &Board{
		width:   width,
		height:  height,
		mines:   mapset.New[Position](),
		opened:  mapset.New[Position](),
		flagged: mapset.New[Position](),
	}
}

// New places mineCount mines uniformly at random. Duplicate draws are
// retried, so mineCount must not exceed width*height.
func New(width, height, mineCount int, src RandomSource) (*Board, error) {
	if err := validate(width, height, mineCount); err != nil {
		return nil, err
	}
	b := empty(width, height)
	for b.mines.Size() < mineCount {
		b.mines.Put(Position{
			Col: randomInRange(src, 0, width),
			Row: randomInRange(src, 0, height),
		})
	}
	return b, nil
}

// WithMines builds a board with a fixed mine layout.
func WithMines(width, height int, mines ...Position) (*Board, error) {
	if err := validate(width, height, 0); err != nil {
		return nil, err
	}
	b := empty(width, height)
	for _, p := range mines {
		if !b.Contains(p) {
			return nil, fmt.Errorf("mine at %s: %w", p, ErrOutOfBounds)
		}
		b.mines.Put(p)
	}
	return b, nil
}

func (b *Board) Width() int     { return b.width }
func (b *Board) Height() int    { return b.height }
func (b *Board) MineCount() int { return b.mines.Size() }
func (b *Board) FlagCount() int { return b.flagged.Size() }
func (b *Board) OpenCount() int { return b.opened.Size() }
func (b *Board) Lost() bool     { return b.lost }

// Won reports whether every safe cell has been opened.
func (b *Board) Won() bool {
	return !b.lost && b.opened.Size() == b.width*b.height-b.mines.Size()
}

func (b *Board) Contains(p Position) bool {
	return 0 <= p.Col && p.Col < b.width && 0 <= p.Row && p.Row < b.height
}

func (b *Board) IsOpen(p Position) bool    { return b.opened.Has(p) }
func (b *Board) IsMine(p Position) bool    { return b.mines.Has(p) }
func (b *Board) IsFlagged(p Position) bool { return b.flagged.Has(p) }

func (b *Board) checkBounds(p Position) error {
	if !b.Contains(p) {
		return fmt.Errorf("%s on %dx%d board: %w", p, b.width, b.height, ErrOutOfBounds)
	}
	return nil
}

// Open reveals p. A nil result means nothing was revealed at p itself:
// p was blocked (game lost or p flagged) or p was already open, in which
// case a chord may have opened its neighbours.
func (b *Board) Open(p Position) (*OpenResult, error) {
	if err := b.checkBounds(p); err != nil {
		return nil, err
	}

	if b.opened.Has(p) {
		b.chord(p)
		return nil, nil
	}

	if b.lost || b.flagged.Has(p) {
		return nil, nil
	}

	return b.reveal(p), nil
}

/*
chord opens every unflagged, unopened neighbour of p when the number of
flags around p matches its mine count. Each neighbour is checked again
right before it is opened, since an earlier cascade may have reached it.
*/
func (b *Board) chord(p Position) {
	if b.NeighboringMineCount(p) != b.flaggedNeighbors(p) {
		return
	}
	for n := range b.Neighbors(p) {
		if b.flagged.Has(n) || b.opened.Has(n) || b.lost {
			continue
		}
		b.reveal(n)
	}
}

func (b *Board) flaggedNeighbors(p Position) uint8 {
	var c uint8
	for n := range b.Neighbors(p) {
		if b.flagged.Has(n) {
			c++
		}
	}
	return c
}

// reveal opens p, which must be closed and unflagged on a live board, and
// flood-fills outwards from zero-count cells.
func (b *Board) reveal(p Position) *OpenResult {
	b.opened.Put(p)
	if b.mines.Has(p) {
		b.lost = true
		return &OpenResult{Outcome: Mine}
	}

	count := b.NeighboringMineCount(p)
	if count == 0 {
		b.flood(p)
	}
	return &OpenResult{Outcome: NoMine, Count: count}
}

func (b *Board) flood(start Position) {
	todo := []Position{start}
	for len(todo) > 0 {
		p := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		for n := range b.Neighbors(p) {
			// flagged cells stay closed, same as a blocked open
			if b.opened.Has(n) || b.flagged.Has(n) {
				continue
			}
			b.opened.Put(n)
			if b.NeighboringMineCount(n) == 0 {
				todo = append(todo, n)
			}
		}
	}
}

// ToggleFlag flips the flag on a closed cell. It does nothing once the game
// is lost or when p is open.
func (b *Board) ToggleFlag(p Position) error {
	if err := b.checkBounds(p); err != nil {
		return err
	}
	if b.lost || b.opened.Has(p) {
		return nil
	}
	if b.flagged.Has(p) {
		b.flagged.Remove(p)
	} else {
		b.flagged.Put(p)
	}
	return nil
}
