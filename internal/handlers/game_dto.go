package handlers

import (
	"fmt"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type CreateNewGameDTO struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

func ParseCreateNewGameDTO(src map[string][]string) (CreateNewGameDTO, error) {
	var dto CreateNewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (board.Position, error) {
	var dto PositionDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return board.Position{}, fmt.Errorf("invalid position: %w", err)
	}
	return board.Position{Col: dto.X, Row: dto.Y}, nil
}

type OpenResultDTO struct {
	Mine  bool  `json:"mine"`
	Count uint8 `json:"count"`
}

func NewOpenResultDTO(res *board.OpenResult) *OpenResultDTO {
	if res == nil {
		return nil
	}
	return &OpenResultDTO{
		Mine:  res.Outcome == board.Mine,
		Count: res.Count,
	}
}

type NewGameResponse struct {
	session.Snapshot
	Token string `json:"token"`
}

type MoveResponse struct {
	session.Snapshot
	Result *OpenResultDTO `json:"result,omitempty"`
}

type BatchResponse struct {
	session.Snapshot
	Applied int    `json:"applied"`
	Error   string `json:"error,omitempty"`
}
