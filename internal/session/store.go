package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/board"
)

var ErrNotFound = errors.New("session not found")

// Store keeps sessions in memory. Sessions idle for longer than ttl are
// dropped by Sweep; a zero ttl keeps them forever.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	log      logrus.FieldLogger
}

func NewStore(ttl time.Duration, log logrus.FieldLogger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		log:      log,
	}
}

func (s *Store) Create(b *board.Board) *Session {
	sess := newSession(b, time.Now().UTC())

	s.mu.Lock()
	s.sessions[sess.Id] = sess
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"session_id": sess.Id,
		"width":      b.Width(),
		"height":     b.Height(),
		"mine_count": b.MineCount(),
	}).Debug("session created")
	return sess
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Deletes id from store without checking if it existed.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions not touched since now-ttl and returns how many
// were removed.
func (s *Store) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.idleSince().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.log.WithField("removed", removed).Debug("swept idle sessions")
	}
	return removed
}

// RunSweeper sweeps every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			s.Sweep(now.UTC())
		}
	}
}
