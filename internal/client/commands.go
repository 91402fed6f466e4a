package client

import "time"

// command is the sum type a client actor's mailbox carries; see spec §4.1
// and §4.4.
type command interface {
	isClientCommand()
}

// frameKind distinguishes the socket frame types OnMessageReceived cares
// about; binary and continuation frames are ignored entirely before this
// type is even constructed.
type frameKind int

const (
	frameText frameKind = iota
	framePing
	framePong
	frameClose
)

type cmdOnMessageReceived struct {
	kind    frameKind
	payload []byte
	reply   chan<- struct{}
}

type cmdSend struct {
	payload []byte
	reply   chan<- struct{}
}

type cmdSendPing struct {
	now   time.Time
	reply chan<- bool
}

type cmdLeave struct {
	reply chan<- struct{}
}

type cmdClose struct {
	reply chan<- struct{}
}

func (cmdOnMessageReceived) isClientCommand() {}
func (cmdSend) isClientCommand()             {}
func (cmdSendPing) isClientCommand()         {}
func (cmdLeave) isClientCommand()            {}
func (cmdClose) isClientCommand()            {}
