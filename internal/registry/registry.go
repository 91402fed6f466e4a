// Package registry implements the service actor: authoritative owner of the
// uid-to-room map, creating and destroying room actors on behalf of the
// HTTP layer (spec §4.6). Grounded on original_source's
// service/chat_service.rs, the registry that sits above the per-room actor.
package registry

import (
	"context"

	"go.uber.org/zap"

	"github.com/corvino/textroom/internal/actorchan"
	"github.com/corvino/textroom/internal/apperr"
	"github.com/corvino/textroom/internal/metrics"
	"github.com/corvino/textroom/internal/room"
)

// state is the private, single-goroutine-owned room map.
type state struct {
	rooms   map[string]*room.Controller
	logger  *zap.Logger
	mailbox *actorchan.Mailbox[command]
}

// Run starts the service actor and returns the controller used to address
// it. There is exactly one registry per server process.
func Run(logger *zap.Logger) *Controller {
	mailbox := actorchan.NewMailbox[command](actorchan.DefaultCapacity)
	s := &state{
		rooms:   make(map[string]*room.Controller),
		logger:  logger,
		mailbox: mailbox,
	}
	go s.loop(mailbox)
	return &Controller{mailbox: mailbox}
}

func (s *state) loop(mailbox *actorchan.Mailbox[command]) {
	defer mailbox.Close()
	for cmd := range mailbox.Commands() {
		switch c := cmd.(type) {
		case cmdCreateRoom:
			c.reply <- s.createRoom(c.cfg)
		case cmdStatus:
			c.reply <- s.status()
		case cmdGetRoom:
			ctrl, err := s.getRoom(c.uid)
			c.reply <- getRoomResult{controller: ctrl, err: err}
		case cmdDestroyRoom:
			c.reply <- s.destroyRoom(c.uid, c.secret)
		case cmdDetachRoom:
			delete(s.rooms, c.uid)
		}
	}
}

// createRoom hands the new room a callback bound to a fire-and-forget
// DetachRoom(uid) into this same actor, so the room can self-remove on
// destroy; the callback tolerates the entry already being gone (spec §4.6).
func (s *state) createRoom(cfg room.Config) error {
	if _, exists := s.rooms[cfg.UID]; exists {
		return apperr.RoomAlreadyExists()
	}
	uid := cfg.UID
	onDestroy := func() {
		actorchan.Cast(s.mailbox, cmdDetachRoom{uid: uid})
	}
	s.rooms[uid] = room.Run(cfg, s.logger, onDestroy)
	metrics.RoomsCreated.Inc()
	return nil
}

func (s *state) status() []room.Info {
	out := make([]room.Info, 0, len(s.rooms))
	for _, ctrl := range s.rooms {
		info, err := ctrl.Status(context.Background())
		if err != nil {
			continue
		}
		out = append(out, info)
	}
	return out
}

func (s *state) getRoom(uid string) (*room.Controller, error) {
	ctrl, ok := s.rooms[uid]
	if !ok {
		return nil, apperr.RoomNotFound()
	}
	return ctrl, nil
}

func (s *state) destroyRoom(uid, secret string) error {
	ctrl, ok := s.rooms[uid]
	if !ok {
		return apperr.RoomNotFound()
	}
	if ctrl.Secret != secret {
		return apperr.SecretMismatch()
	}
	delete(s.rooms, uid)
	ctrl.Sender().Destroy()
	return nil
}
