// Package room implements the room actor: authoritative owner of one room's
// participants, message counter, announcement cache, and photo registry
// (spec §3, §4.5).
package room

import (
	"go.uber.org/zap"

	"github.com/corvino/textroom/internal/actorchan"
	"github.com/corvino/textroom/internal/metrics"
	"github.com/corvino/textroom/internal/webhook"
	"github.com/corvino/textroom/internal/wire"
)

// Config is the immutable configuration a room is created with.
type Config struct {
	UID       string
	Secret    string
	Post      string   // empty disables webhook posting
	PostTypes []string // message types eligible for webhook emission
}

// name returns the trailing path segment of UID, used in webhook payloads
// and log lines.
func (c Config) name() string {
	name := c.UID
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[i+1:]
		}
	}
	return name
}

func (c Config) postsType(msgType string) bool {
	for _, t := range c.PostTypes {
		if t == msgType {
			return true
		}
	}
	return false
}

// state is the private, single-goroutine-owned data a room actor mutates.
// Nothing outside the actor's command loop ever touches it.
type state struct {
	cfg     Config
	name    string
	clients map[uint64]AttachedClient
	photos  map[string]string
	lastAnn map[string]string
	count   int
	nextID  uint64

	destroyed bool

	poster    *webhook.Poster
	logger    *zap.Logger
	onDestroy func() // fire-and-forget DetachRoom(uid) into the service actor
}

// Run starts a room actor and returns the controller peers use to address
// it. onDestroy is invoked exactly once, when the room actor processes a
// Destroy command, so the service actor can drop its registry entry; it
// must tolerate being called after the entry is already gone (spec §4.6).
func Run(cfg Config, logger *zap.Logger, onDestroy func()) *Controller {
	mailbox := actorchan.NewMailbox[command](actorchan.DefaultCapacity)
	roomLogger := logger.With(zap.String("room", cfg.UID))

	var poster *webhook.Poster
	if cfg.Post != "" {
		poster = webhook.New(cfg.Post, cfg.name(), roomLogger)
	}

	s := &state{
		cfg:       cfg,
		name:      cfg.name(),
		clients:   make(map[uint64]AttachedClient),
		photos:    make(map[string]string),
		lastAnn:   make(map[string]string),
		poster:    poster,
		logger:    roomLogger,
		onDestroy: onDestroy,
	}

	go s.loop(mailbox)

	metrics.ActiveRooms.Inc()
	s.logger.Info("room created")
	if poster != nil {
		poster.Post(wire.NewRoomCreatedPost(s.name, wire.Now()))
	}

	return &Controller{Secret: cfg.Secret, mailbox: mailbox}
}

func (s *state) loop(mailbox *actorchan.Mailbox[command]) {
	defer mailbox.Close()
	for cmd := range mailbox.Commands() {
		switch c := cmd.(type) {
		case cmdStatus:
			c.reply <- s.status()
		case cmdCount:
			c.reply <- len(s.clients)
		case cmdParticipants:
			c.reply <- s.participants()
		case cmdPhoto:
			url, ok := s.photos[c.username]
			c.reply <- photoResult{url: url, ok: ok}
		case cmdLastAnnouncement:
			c.reply <- s.lastAnnouncement(c.types)
		case cmdNextID:
			s.nextID++
			c.reply <- s.nextID
		case cmdAddClient:
			s.addClient(c.client, c.imageURL)
			c.reply <- struct{}{}
		case cmdRemoveClient:
			s.removeClient(c.id)
			c.reply <- struct{}{}
		case cmdAnnounce:
			s.announce(c.sender, c.typ, c.text)
			c.reply <- struct{}{}
		case cmdSendMessage:
			s.sendMessage(c.sender, c.typ, c.text)
			c.reply <- struct{}{}
		case cmdBan:
			var from *string
			if c.hasFrom {
				from = &c.from
			}
			s.ban(from, c.victim)
			c.reply <- struct{}{}
		case cmdDestroy:
			s.destroy()
			c.reply <- struct{}{}
		}
	}
}

func (s *state) status() Info {
	return Info{Room: s.cfg.UID, Participants: s.participants(), Messages: s.count}
}

func (s *state) participants() []Participant {
	out := make([]Participant, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c.Participant)
	}
	return out
}

func (s *state) lastAnnouncement(types []string) map[string]string {
	out := make(map[string]string, len(types))
	for _, t := range types {
		if text, ok := s.lastAnn[t]; ok {
			out[t] = text
		}
	}
	return out
}

// addClient builds the join event with the post-insertion count, inserts
// the client, then broadcasts, so the joiner receives its own join event
// and its count matches the roster after the insert (spec §4.5/§5).
func (s *state) addClient(c AttachedClient, imageURL string) {
	if s.destroyed {
		return
	}
	if c.Participant.Username != nil && imageURL != "" {
		s.photos[*c.Participant.Username] = imageURL
	}
	event := wire.NewJoinEvent(c.Participant.Username, c.Participant.Display, len(s.clients)+1)
	s.clients[c.ID] = c
	s.broadcastJSON(event)
	metrics.ActiveClients.Inc()
	s.logger.Debug("client added", zap.Uint64("client", c.ID), zap.Int("size", len(s.clients)))
}

// removeClient removes id from the roster and broadcasts the leave event
// with the post-removal count, satisfying §5's ordering guarantee for every
// removal path (normal leave, ban, ping timeout) in one atomic actor step.
func (s *state) removeClient(id uint64) {
	c, ok := s.clients[id]
	if !ok {
		return
	}
	delete(s.clients, id)
	metrics.ActiveClients.Dec()
	s.logger.Debug("client removed", zap.Uint64("client", id), zap.Int("size", len(s.clients)))
	if s.destroyed {
		return
	}
	s.broadcastJSON(wire.NewLeaveEvent(c.Participant.Username, c.Participant.Display, len(s.clients)))
}

func (s *state) announce(sender Participant, msgType, text string) {
	if !sender.HasUsername() {
		return
	}
	now := wire.Now()
	s.broadcastJSON(wire.NewAnnouncementEvent(now, text, msgType))
	if s.poster != nil && s.cfg.postsType(msgType) {
		s.poster.Post(wire.NewAnnouncementPost(s.name, msgType, text, now, sender.username()))
	}
	s.count++
	s.lastAnn[msgType] = text
	metrics.MessagesTotal.WithLabelValues("announcement").Inc()
}

func (s *state) sendMessage(sender Participant, msgType, text string) {
	if !sender.HasIdentity() {
		return
	}
	now := wire.Now()
	s.broadcastJSON(wire.NewMessageEvent(sender.username(), sender.display(), now, text, msgType))
	if s.poster != nil && s.cfg.postsType(msgType) {
		s.poster.Post(wire.NewMessagePost(s.name, msgType, text, now, sender.username()))
	}
	s.count++
	metrics.MessagesTotal.WithLabelValues("message").Inc()
}

// ban selects every client whose username equals victim, sends each a
// banned event followed by a request to leave, and posts an unconditional
// moderation webhook.
func (s *state) ban(from *string, victim string) {
	frame, err := wire.Encode(wire.NewBannedEvent())
	if err != nil {
		s.logger.Error("ban: encode banned event failed", zap.Error(err))
		return
	}
	for _, c := range s.clients {
		if c.Participant.Username != nil && *c.Participant.Username == victim {
			c.Handle.Send(frame)
			c.Handle.Leave()
		}
	}
	fromStr := ""
	if from != nil {
		fromStr = *from
	}
	if s.poster != nil {
		s.poster.Post(wire.NewBanPost(s.name, victim, fromStr, wire.Now()))
	}
	s.logger.Info("ban issued", zap.String("victim", victim))
}

// destroy is idempotent: only the first call has any effect.
func (s *state) destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.broadcastJSON(wire.NewDestroyedEvent())
	metrics.ActiveClients.Sub(float64(len(s.clients)))
	s.clients = make(map[uint64]AttachedClient)
	metrics.ActiveRooms.Dec()
	metrics.RoomsDestroyed.Inc()
	s.logger.Info("room destroyed")
	if s.onDestroy != nil {
		s.onDestroy()
	}
	if s.poster != nil {
		s.poster.Post(wire.NewRoomDestroyedPost(s.name, wire.Now()))
	}
}

func (s *state) broadcastJSON(v any) {
	frame, err := wire.Encode(v)
	if err != nil {
		s.logger.Error("broadcast: encode failed", zap.Error(err))
		return
	}
	for _, c := range s.clients {
		c.Handle.Send(frame)
	}
}
