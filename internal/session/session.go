package session

import (
	"encoding/base64"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/render"
)

// Session guards one board. All access to the board goes through Do or
// Snapshot.
type Session struct {
	Id        string
	StartedAt time.Time

	mu       sync.Mutex
	board    *board.Board
	endedAt  time.Time
	lastSeen time.Time
}

func newSessionId() string {
	u := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(u[:])
}

func newSession(b *board.Board, now time.Time) *Session {
	return &Session{
		Id:        newSessionId(),
		StartedAt: now,
		board:     b,
		lastSeen:  now,
	}
}

// Do runs fn with exclusive access to the board and stamps the end time
// the first time the game is decided.
func (s *Session) Do(fn func(b *board.Board) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn(s.board)
	now := time.Now().UTC()
	s.lastSeen = now
	if s.endedAt.IsZero() && (s.board.Lost() || s.board.Won()) {
		s.endedAt = now
	}
	return err
}

type Snapshot struct {
	SessionId string      `json:"session_id"`
	Grid      render.Grid `json:"grid"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	MineCount int         `json:"mine_count"`
	FlagCount int         `json:"flag_count"`
	Lost      bool        `json:"lost"`
	Won       bool        `json:"won"`
	StartedAt int64       `json:"started_at"`
	EndedAt   *int64      `json:"ended_at,omitempty"`
}

// Snapshot copies the visible state. Reads count as activity for Sweep.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now().UTC()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	var endedAt *int64
	if !s.endedAt.IsZero() {
		e := s.endedAt.UnixMilli()
		endedAt = &e
	}
	b := s.board
	return Snapshot{
		SessionId: s.Id,
		Grid:      render.Snapshot(b),
		Width:     b.Width(),
		Height:    b.Height(),
		MineCount: b.MineCount(),
		FlagCount: b.FlagCount(),
		Lost:      b.Lost(),
		Won:       b.Won(),
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	}
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
