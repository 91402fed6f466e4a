// Package client implements the client actor: single-task owner of one
// participant's outbound socket sink, bridging raw frames into typed room
// requests and enforcing liveness via ping/pong (spec §4.4).
package client

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/corvino/textroom/internal/actorchan"
	"github.com/corvino/textroom/internal/room"
	"github.com/corvino/textroom/internal/wire"
)

// DefaultPingInterval matches spec §6's socket surface default.
const DefaultPingInterval = 120 * time.Second

// Conn is the subset of *websocket.Conn the client actor needs; satisfied
// directly by *websocket.Conn and by a fake in tests.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// state is the private data owned exclusively by one client actor
// goroutine.
type state struct {
	id       uint64
	me       room.Participant
	roomCtrl *room.Controller
	roomSend room.Sender
	conn     Conn

	detached     bool
	lastPong     time.Time
	pingInterval time.Duration

	cancelInbound context.CancelFunc
	cancelPing    context.CancelFunc

	logger *zap.Logger
}

// Run spawns a client actor bound to conn and returns the controller other
// actors (and the room) use to address it. The caller is responsible for
// having already upgraded the socket; Run owns conn from this point on.
func Run(conn Conn, roomCtrl *room.Controller, me room.Participant, id uint64, pingInterval time.Duration, logger *zap.Logger) *Controller {
	if pingInterval <= 0 {
		pingInterval = DefaultPingInterval
	}
	mailbox := actorchan.NewMailbox[command](actorchan.DefaultCapacity)
	clientLogger := logger.With(zap.Uint64("client", id))

	s := &state{
		id:           id,
		me:           me,
		roomCtrl:     roomCtrl,
		roomSend:     roomCtrl.Sender(),
		conn:         conn,
		lastPong:     time.Now(),
		pingInterval: pingInterval,
		logger:       clientLogger,
	}

	ctrl := &Controller{mailbox: mailbox}

	inboundCtx, cancelInbound := context.WithCancel(context.Background())
	pingCtx, cancelPing := context.WithCancel(context.Background())
	s.cancelInbound = cancelInbound
	s.cancelPing = cancelPing

	go s.loop(mailbox)
	go inboundStreamWorker(inboundCtx, conn, ctrl, clientLogger)
	go pingWorker(pingCtx, ctrl, pingInterval)

	return ctrl
}

func (s *state) loop(mailbox *actorchan.Mailbox[command]) {
	defer mailbox.Close()
	for cmd := range mailbox.Commands() {
		switch c := cmd.(type) {
		case cmdOnMessageReceived:
			s.onMessageReceived(c.kind, c.payload)
			c.reply <- struct{}{}
		case cmdSend:
			s.send(c.payload)
			c.reply <- struct{}{}
		case cmdSendPing:
			c.reply <- s.sendPing(c.now)
		case cmdLeave:
			s.leave()
			c.reply <- struct{}{}
		case cmdClose:
			s.close()
			c.reply <- struct{}{}
		}
	}
}

func (s *state) onMessageReceived(kind frameKind, payload []byte) {
	switch kind {
	case framePong:
		s.lastPong = time.Now()
	case frameClose:
		s.logger.Debug("received close frame")
	case frameText:
		s.handleText(payload)
	}
	// binary and continuation frames never reach here (filtered by the
	// inbound stream worker); ping frames from the peer are ignored too,
	// since we are the ones expected to ping.
}

func (s *state) handleText(payload []byte) {
	if s.detached {
		s.reply(wire.RoomDestroyed(""))
		return
	}

	req, recoveredTransaction, err := wire.ParseRequest(payload)
	if err != nil {
		s.reply(wire.DecodeError(recoveredTransaction, err.Error()))
		return
	}

	switch req.Kind {
	case wire.KindMessage:
		s.roomSend.SendMessage(s.me, req.Message.Type, req.Message.Text)
	case wire.KindAnnouncement:
		if req.Announcement.Secret != s.roomCtrl.Secret {
			s.reply(wire.SecretMismatch(req.Announcement.Transaction))
			return
		}
		s.roomSend.Announce(s.me, req.Announcement.Type, req.Announcement.Text)
	case wire.KindBan:
		if req.Ban.Secret != s.roomCtrl.Secret {
			s.reply(wire.SecretMismatch(req.Ban.Transaction))
			return
		}
		s.roomSend.Ban(s.me.Username, req.Ban.Username)
	case wire.KindLeave:
		s.reply(wire.Left(req.Leave.Transaction))
		s.leave()
	}
}

func (s *state) reply(resp wire.Response) {
	frame, err := wire.Encode(resp)
	if err != nil {
		s.logger.Error("encode response failed", zap.Error(err))
		return
	}
	s.send(frame)
}

func (s *state) send(payload []byte) {
	if s.detached {
		return
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		s.logger.Debug("write failed, closing", zap.Error(err))
		s.close()
	}
}

// sendPing reports whether the client is still alive. If no pong has
// arrived within 2×pingInterval of now, the client closes and this returns
// false so the ping worker stops ticking.
func (s *state) sendPing(now time.Time) bool {
	if s.detached {
		return false
	}
	if now.Sub(s.lastPong) > 2*s.pingInterval {
		s.logger.Info("ping timeout, closing")
		s.close()
		return false
	}
	if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		s.logger.Debug("ping write failed, closing", zap.Error(err))
		s.close()
		return false
	}
	return true
}

func (s *state) leave() {
	s.detach()
}

func (s *state) close() {
	s.detach()
}

// detach is idempotent: it drops the room's reference to this client,
// cancels both background workers, and closes the socket. It never blocks on
// socket I/O.
func (s *state) detach() {
	if s.detached {
		return
	}
	s.detached = true
	s.roomSend.RemoveClient(s.id)
	s.cancelPing()
	s.cancelInbound()
	_ = s.conn.Close()
	s.logger.Debug("client detached")
}
