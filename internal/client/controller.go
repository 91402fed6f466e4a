package client

import (
	"context"
	"time"

	"github.com/corvino/textroom/internal/actorchan"
)

// Controller is the awaiting handle to a running client actor, used by its
// own auxiliary workers (inbound stream, ping) to dispatch commands that
// need a reply.
type Controller struct {
	mailbox *actorchan.Mailbox[command]
}

func (c *Controller) OnMessageReceived(ctx context.Context, kind frameKind, payload []byte) {
	_, _ = actorchan.Call(ctx, c.mailbox, func(reply chan<- struct{}) command {
		return cmdOnMessageReceived{kind: kind, payload: payload, reply: reply}
	})
}

func (c *Controller) Send(ctx context.Context, payload []byte) error {
	_, err := actorchan.Call(ctx, c.mailbox, func(reply chan<- struct{}) command {
		return cmdSend{payload: payload, reply: reply}
	})
	return err
}

// SendPing returns whether the client should still be considered alive.
func (c *Controller) SendPing(ctx context.Context, now time.Time) (bool, error) {
	return actorchan.Call(ctx, c.mailbox, func(reply chan<- bool) command {
		return cmdSendPing{now: now, reply: reply}
	})
}

func (c *Controller) Leave(ctx context.Context) error {
	_, err := actorchan.Call(ctx, c.mailbox, func(reply chan<- struct{}) command {
		return cmdLeave{reply: reply}
	})
	return err
}

func (c *Controller) Close(ctx context.Context) error {
	_, err := actorchan.Call(ctx, c.mailbox, func(reply chan<- struct{}) command {
		return cmdClose{reply: reply}
	})
	return err
}

// Sender is the fire-and-forget handle the room actor holds to this client.
// It implements room.ClientHandle structurally, with no import of the room
// package needed.
type Sender struct {
	mailbox *actorchan.Mailbox[command]
}

// Sender returns the fire-and-forget handle derived from c.
func (c *Controller) Sender() Sender {
	return Sender{mailbox: c.mailbox}
}

func (s Sender) Send(frame []byte) {
	actorchan.Cast(s.mailbox, cmdSend{payload: frame, reply: discard[struct{}]()})
}

func (s Sender) Leave() {
	actorchan.Cast(s.mailbox, cmdLeave{reply: discard[struct{}]()})
}

func discard[T any]() chan<- T {
	return make(chan T, 1)
}
