package board

import "errors"

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrInvalidMineCount  = errors.New("mine count must be between 0 and the number of cells")
	ErrOutOfBounds       = errors.New("position is out of bounds")
)
