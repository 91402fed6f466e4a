package room

import (
	"context"

	"github.com/corvino/textroom/internal/actorchan"
)

// Controller is the awaiting handle to a running room actor. Secret is
// published once at creation and never mutated afterward, so client actors
// may compare it directly on their hot path without a command round-trip
// (spec §4.4/§9).
type Controller struct {
	Secret  string
	mailbox *actorchan.Mailbox[command]
}

func (c *Controller) Status(ctx context.Context) (Info, error) {
	return actorchan.Call(ctx, c.mailbox, func(reply chan<- Info) command {
		return cmdStatus{reply: reply}
	})
}

func (c *Controller) Count(ctx context.Context) (int, error) {
	return actorchan.Call(ctx, c.mailbox, func(reply chan<- int) command {
		return cmdCount{reply: reply}
	})
}

func (c *Controller) Participants(ctx context.Context) ([]Participant, error) {
	return actorchan.Call(ctx, c.mailbox, func(reply chan<- []Participant) command {
		return cmdParticipants{reply: reply}
	})
}

// Photo returns the registered image URL for username, if any.
func (c *Controller) Photo(ctx context.Context, username string) (string, bool, error) {
	res, err := actorchan.Call(ctx, c.mailbox, func(reply chan<- photoResult) command {
		return cmdPhoto{username: username, reply: reply}
	})
	return res.url, res.ok, err
}

// LastAnnouncement returns the most recent announcement text for each
// requested type that has one; types with no announcement yet are omitted.
func (c *Controller) LastAnnouncement(ctx context.Context, types []string) (map[string]string, error) {
	return actorchan.Call(ctx, c.mailbox, func(reply chan<- map[string]string) command {
		return cmdLastAnnouncement{types: types, reply: reply}
	})
}

// NextID allocates the next monotonically increasing client identifier.
func (c *Controller) NextID(ctx context.Context) (uint64, error) {
	return actorchan.Call(ctx, c.mailbox, func(reply chan<- uint64) command {
		return cmdNextID{reply: reply}
	})
}

// AddClient registers client under its id, recording its photo if both a
// username and imageURL are present, and broadcasts the join event.
func (c *Controller) AddClient(ctx context.Context, client AttachedClient, imageURL string) error {
	_, err := actorchan.Call(ctx, c.mailbox, func(reply chan<- struct{}) command {
		return cmdAddClient{client: client, imageURL: imageURL, reply: reply}
	})
	return err
}

// Sender is the fire-and-forget handle a client actor holds to its room,
// exposing only the operations clients issue without awaiting a reply.
type Sender struct {
	mailbox *actorchan.Mailbox[command]
}

// Sender returns the fire-and-forget handle derived from c.
func (c *Controller) Sender() Sender {
	return Sender{mailbox: c.mailbox}
}

func (s Sender) SendMessage(sender Participant, msgType, text string) {
	actorchan.Cast(s.mailbox, cmdSendMessage{sender: sender, typ: msgType, text: text, reply: discard[struct{}]()})
}

func (s Sender) Announce(sender Participant, msgType, text string) {
	actorchan.Cast(s.mailbox, cmdAnnounce{sender: sender, typ: msgType, text: text, reply: discard[struct{}]()})
}

// Ban enqueues a ban of victim; from is the requester's username, if any.
func (s Sender) Ban(from *string, victim string) {
	cmd := cmdBan{victim: victim, reply: discard[struct{}]()}
	if from != nil {
		cmd.hasFrom = true
		cmd.from = *from
	}
	actorchan.Cast(s.mailbox, cmd)
}

func (s Sender) RemoveClient(id uint64) {
	actorchan.Cast(s.mailbox, cmdRemoveClient{id: id, reply: discard[struct{}]()})
}

func (s Sender) Destroy() {
	actorchan.Cast(s.mailbox, cmdDestroy{reply: discard[struct{}]()})
}

// discard returns a reply channel with room for exactly one value that
// nobody will ever read; a command passed to Cast still needs somewhere to
// put the reply since the command type is shared with the awaiting path.
func discard[T any]() chan<- T {
	return make(chan T, 1)
}
