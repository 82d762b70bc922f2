package app

import (
	"context"
	"errors"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/handlers"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/session"
)

const shutdownTimeout = 15 * time.Second

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

type App struct {
	log     *logrus.Logger
	cfg     *config.Config
	store   *session.Store
	handler http.Handler
}

func New(log *logrus.Logger, cfg *config.Config, rnd board.RandomSource) (*App, error) {
	j, err := config.NewJWT(cfg.Jwt)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(cfg.SessionTTL.Duration, log)
	game := handlers.NewGameHandler(log, store, j, config.NewWebSocket(), rnd, cfg)

	mux := http.NewServeMux()
	game.Register(mux)

	a := &App{
		log:   log,
		cfg:   cfg,
		store: store,
		handler: middleware.Wrap(mux,
			middleware.Cors(),
			middleware.Auth(log, j),
			middleware.Logging(log),
		),
	}
	return a, nil
}

func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves until ctx is cancelled, then shuts the server down.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.cfg.Addr,
		Handler: a.handler,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Infof("ready to serve @ %s", a.cfg.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		a.log.WithField("sessions", a.store.Len()).Info("shutting down")
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	if ttl := a.cfg.SessionTTL.Duration; ttl > 0 {
		g.Go(func() error {
			return a.store.RunSweeper(gCtx, max(ttl/4, time.Millisecond))
		})
	}

	return g.Wait()
}
