package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/session"
)

type wsReply struct {
	session.Snapshot
	Error string `json:"error,omitempty"`
}

// runGameLoop reads command batches and answers each with the session
// state. Bad commands are reported to the client without closing the
// connection.
func (g *GameHandler) runGameLoop(conn *websocket.Conn, sess *session.Session, log logrus.FieldLogger) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		log.Debugf("\t> %q", buf)
		err = sess.Do(func(b *board.Board) error {
			_, err := command.Execute(b, string(buf))
			return err
		})

		reply := wsReply{Snapshot: sess.Snapshot()}
		if err != nil {
			reply.Error = err.Error()
		}
		if err := conn.WriteJSON(reply); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	sess, err := g.authorize(r)
	if err != nil {
		g.fail(w, err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer conn.Close()

	log := g.log.WithField("session_id", sess.Id)
	log.Debug("established WS connection")

	if err := g.runGameLoop(conn, sess, log); err != nil &&
		!websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.WithError(err).Warn("error in ws loop")
	}
}
