package registry

import (
	"context"

	"github.com/corvino/textroom/internal/actorchan"
	"github.com/corvino/textroom/internal/room"
)

// Controller is the handle the HTTP layer holds to the service actor.
type Controller struct {
	mailbox *actorchan.Mailbox[command]
}

// CreateRoom registers a new room under cfg.UID, starting its actor. It
// fails with apperr.RoomAlreadyExists if the uid is already taken.
func (c *Controller) CreateRoom(ctx context.Context, cfg room.Config) error {
	err, callErr := actorchan.Call(ctx, c.mailbox, func(reply chan<- error) command {
		return cmdCreateRoom{cfg: cfg, reply: reply}
	})
	if callErr != nil {
		return callErr
	}
	return err
}

// Status returns a snapshot of every registered room.
func (c *Controller) Status(ctx context.Context) ([]room.Info, error) {
	return actorchan.Call(ctx, c.mailbox, func(reply chan<- []room.Info) command {
		return cmdStatus{reply: reply}
	})
}

// GetRoom returns the controller for uid, or apperr.RoomNotFound.
func (c *Controller) GetRoom(ctx context.Context, uid string) (*room.Controller, error) {
	res, err := actorchan.Call(ctx, c.mailbox, func(reply chan<- getRoomResult) command {
		return cmdGetRoom{uid: uid, reply: reply}
	})
	if err != nil {
		return nil, err
	}
	return res.controller, res.err
}

// DestroyRoom validates secret against the room's own and, if it matches,
// removes the registry entry and issues Destroy to the room actor.
func (c *Controller) DestroyRoom(ctx context.Context, uid, secret string) error {
	err, callErr := actorchan.Call(ctx, c.mailbox, func(reply chan<- error) command {
		return cmdDestroyRoom{uid: uid, secret: secret, reply: reply}
	})
	if callErr != nil {
		return callErr
	}
	return err
}
