package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/session"
)

const maxBatchBytes = 64 << 10

var (
	ErrBoardTooLarge = errors.New("board too large")
	ErrNoToken       = errors.New("session token required")
	ErrWrongSession  = errors.New("token was issued for another session")
)

// lockedSource serializes draws from a source shared by all requests.
type lockedSource struct {
	mu  sync.Mutex
	src board.RandomSource
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

type GameHandler struct {
	log       logrus.FieldLogger
	store     *session.Store
	jwt       *config.JWT
	ws        *config.WebSocket
	rnd       board.RandomSource
	maxWidth  int
	maxHeight int
}

func NewGameHandler(
	log logrus.FieldLogger,
	store *session.Store,
	jwt *config.JWT,
	ws *config.WebSocket,
	rnd board.RandomSource,
	cfg *config.Config,
) *GameHandler {
	return &GameHandler{
		log:       log,
		store:     store,
		jwt:       jwt,
		ws:        ws,
		rnd:       &lockedSource{src: rnd},
		maxWidth:  cfg.MaxWidth,
		maxHeight: cfg.MaxHeight,
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrWrongSession):
		return http.StatusForbidden
	case errors.Is(err, board.ErrOutOfBounds),
		errors.Is(err, board.ErrInvalidDimensions),
		errors.Is(err, board.ErrInvalidMineCount),
		errors.Is(err, ErrBoardTooLarge),
		errors.Is(err, command.ErrUnknownCommand),
		errors.Is(err, command.ErrBadArgs),
		errors.Is(err, command.ErrBadCoordinate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (g *GameHandler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		g.log.WithError(err).Error("request failed")
	}
	sendError(w, g.log, status, err)
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateNewGameDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	if dto.Width > g.maxWidth || dto.Height > g.maxHeight {
		g.fail(w, fmt.Errorf("%w: %dx%d exceeds %dx%d",
			ErrBoardTooLarge, dto.Width, dto.Height, g.maxWidth, g.maxHeight))
		return
	}

	b, err := board.New(dto.Width, dto.Height, dto.MineCount, g.rnd)
	if err != nil {
		g.fail(w, err)
		return
	}

	sess := g.store.Create(b)
	token, err := g.jwt.SignSession(sess.Id)
	if err != nil {
		g.store.Delete(sess.Id)
		g.fail(w, fmt.Errorf("unable to sign session token: %w", err))
		return
	}

	sendJSONOrLog(w, g.log, NewGameResponse{
		Snapshot: sess.Snapshot(),
		Token:    token,
	})
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	sess, err := g.store.Get(r.PathValue("id"))
	if err != nil {
		g.fail(w, err)
		return
	}
	sendJSONOrLog(w, g.log, sess.Snapshot())
}

// authorize loads the session named in the path and checks that the
// request carries a token issued for it.
func (g *GameHandler) authorize(r *http.Request) (*session.Session, error) {
	sess, err := g.store.Get(r.PathValue("id"))
	if err != nil {
		return nil, err
	}
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok {
		return nil, ErrNoToken
	}
	if claims.SessionId != sess.Id {
		return nil, ErrWrongSession
	}
	return sess, nil
}

func (g *GameHandler) Open(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	sess, err := g.authorize(r)
	if err != nil {
		g.fail(w, err)
		return
	}

	var res *board.OpenResult
	err = sess.Do(func(b *board.Board) (err error) {
		res, err = b.Open(pos)
		return
	})
	if err != nil {
		g.fail(w, err)
		return
	}

	sendJSONOrLog(w, g.log, MoveResponse{
		Snapshot: sess.Snapshot(),
		Result:   NewOpenResultDTO(res),
	})
}

func (g *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	sess, err := g.authorize(r)
	if err != nil {
		g.fail(w, err)
		return
	}

	err = sess.Do(func(b *board.Board) error {
		return b.ToggleFlag(pos)
	})
	if err != nil {
		g.fail(w, err)
		return
	}

	sendJSONOrLog(w, g.log, MoveResponse{Snapshot: sess.Snapshot()})
}

// Batch applies newline separated commands from the request body. Commands
// before the first failing one stay applied.
func (g *GameHandler) Batch(w http.ResponseWriter, r *http.Request) {
	sess, err := g.authorize(r)
	if err != nil {
		g.fail(w, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBatchBytes))
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	var applied int
	err = sess.Do(func(b *board.Board) (err error) {
		applied, err = command.Execute(b, string(body))
		return
	})

	resp := BatchResponse{Snapshot: sess.Snapshot(), Applied: applied}
	if err != nil {
		resp.Error = err.Error()
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(statusFor(err))
	}
	sendJSONOrLog(w, g.log, resp)
}
