package registry

import "github.com/corvino/textroom/internal/room"

// command is the sum type of operations a service actor's mailbox carries;
// see spec §4.1 and §4.6.
type command interface {
	isServiceCommand()
}

type cmdCreateRoom struct {
	cfg   room.Config
	reply chan<- error
}

type cmdStatus struct {
	reply chan<- []room.Info
}

type cmdGetRoom struct {
	uid   string
	reply chan<- getRoomResult
}

type getRoomResult struct {
	controller *room.Controller
	err        error
}

type cmdDestroyRoom struct {
	uid    string
	secret string
	reply  chan<- error
}

type cmdDetachRoom struct {
	uid string
}

func (cmdCreateRoom) isServiceCommand()  {}
func (cmdStatus) isServiceCommand()      {}
func (cmdGetRoom) isServiceCommand()     {}
func (cmdDestroyRoom) isServiceCommand() {}
func (cmdDetachRoom) isServiceCommand()  {}
