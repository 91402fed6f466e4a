package client

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/corvino/textroom/internal/room"
	"github.com/corvino/textroom/internal/wire"
)

// fakeConn is a test double for Conn: WriteMessage is recorded, ReadMessage
// blocks on a channel the test feeds (or never, if the test drives the
// actor directly via Controller.OnMessageReceived).
type fakeConn struct {
	mu      sync.Mutex
	writes  [][]byte
	closed  bool
	reads   chan fakeRead
	pongFn  func(string) error
}

type fakeRead struct {
	messageType int
	data        []byte
	err         error
}

func newFakeConn() *fakeConn {
	return &fakeConn{reads: make(chan fakeRead)}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	r, ok := <-c.reads
	if !ok {
		return 0, nil, websocket.ErrCloseSent
	}
	return r.messageType, r.data, r.err
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := append([]byte(nil), data...)
	c.writes = append(c.writes, cp)
	return nil
}

func (c *fakeConn) SetPongHandler(h func(string) error) { c.pongFn = h }

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) lastWrite() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.writes) == 0 {
		return nil
	}
	return c.writes[len(c.writes)-1]
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func ptr(s string) *string { return &s }

func newTestRoom(t *testing.T) *room.Controller {
	t.Helper()
	return room.Run(room.Config{UID: "test-room"}, zap.NewNop(), func() {})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, time.Millisecond)
}

func marshalMessage(msgType, text, transaction string) []byte {
	frame := struct {
		Kind string `json:"textroom"`
		wire.MessageRequest
	}{Kind: wire.KindMessage, MessageRequest: wire.MessageRequest{Type: msgType, Text: text, Transaction: transaction}}
	data, _ := json.Marshal(frame)
	return data
}

func marshalAnnouncement(secret, text, transaction string) []byte {
	frame := struct {
		Kind string `json:"textroom"`
		wire.AnnouncementRequest
	}{Kind: wire.KindAnnouncement, AnnouncementRequest: wire.AnnouncementRequest{Type: "announcement", Text: text, Secret: secret, Transaction: transaction}}
	data, _ := json.Marshal(frame)
	return data
}

func marshalBan(secret, username, transaction string) []byte {
	frame := struct {
		Kind string `json:"textroom"`
		wire.BanRequest
	}{Kind: wire.KindBan, BanRequest: wire.BanRequest{Username: username, Secret: secret, Transaction: transaction}}
	data, _ := json.Marshal(frame)
	return data
}

func marshalLeave(transaction string) []byte {
	frame := struct {
		Kind string `json:"textroom"`
		wire.LeaveRequest
	}{Kind: wire.KindLeave, LeaveRequest: wire.LeaveRequest{Transaction: transaction}}
	data, _ := json.Marshal(frame)
	return data
}

func TestMessageRequestDispatchesToRoom(t *testing.T) {
	roomCtrl := newTestRoom(t)
	conn := newFakeConn()
	me := room.Participant{Username: ptr("alice"), Display: ptr("Alice")}
	ctrl := Run(conn, roomCtrl, me, 1, time.Hour, zap.NewNop())

	ctrl.OnMessageReceived(context.Background(), frameText, marshalMessage("chat", "hello", ""))

	waitFor(t, func() bool {
		info, err := roomCtrl.Status(context.Background())
		return err == nil && info.Messages == 1
	})
	// A successful message send gets no response frame.
	assert.Nil(t, conn.lastWrite())
}

func TestAnnouncementSecretMismatchRespondsWithError(t *testing.T) {
	roomCtrl := room.Run(room.Config{UID: "test-room", Secret: "correct-secret"}, zap.NewNop(), func() {})
	conn := newFakeConn()
	me := room.Participant{Username: ptr("mod")}
	ctrl := Run(conn, roomCtrl, me, 1, time.Hour, zap.NewNop())

	ctrl.OnMessageReceived(context.Background(), frameText, marshalAnnouncement("wrong-secret", "hi", "txn-1"))

	var resp wire.Response
	require.NoError(t, json.Unmarshal(conn.lastWrite(), &resp))
	assert.Equal(t, "txn-1", resp.Transaction)
	assert.Equal(t, "Secret does not match.", resp.Error)

	info, err := roomCtrl.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, info.Messages)
}

func TestBanSecretMismatchRespondsWithError(t *testing.T) {
	roomCtrl := room.Run(room.Config{UID: "test-room", Secret: "correct-secret"}, zap.NewNop(), func() {})
	conn := newFakeConn()
	me := room.Participant{Username: ptr("mod")}
	ctrl := Run(conn, roomCtrl, me, 1, time.Hour, zap.NewNop())

	ctrl.OnMessageReceived(context.Background(), frameText, marshalBan("wrong-secret", "victim", "txn-2"))

	var resp wire.Response
	require.NoError(t, json.Unmarshal(conn.lastWrite(), &resp))
	assert.Equal(t, "txn-2", resp.Transaction)
	assert.Equal(t, "Secret does not match.", resp.Error)
}

func TestDecodeFailureRecoversTransaction(t *testing.T) {
	roomCtrl := newTestRoom(t)
	conn := newFakeConn()
	ctrl := Run(conn, roomCtrl, room.Participant{}, 1, time.Hour, zap.NewNop())

	malformed := []byte(`{"textroom":"bogusKind","transaction":"txn-3"}`)
	ctrl.OnMessageReceived(context.Background(), frameText, malformed)

	var resp wire.Response
	require.NoError(t, json.Unmarshal(conn.lastWrite(), &resp))
	assert.Equal(t, "txn-3", resp.Transaction)
	assert.NotEmpty(t, resp.Error)
}

func TestLeaveRespondsOkAndDetachesFromRoom(t *testing.T) {
	roomCtrl := newTestRoom(t)
	conn := newFakeConn()
	me := room.Participant{Username: ptr("alice")}
	ctrl := Run(conn, roomCtrl, me, 1, time.Hour, zap.NewNop())
	require.NoError(t, roomCtrl.AddClient(context.Background(), room.AttachedClient{ID: 1, Participant: me, Handle: ctrl.Sender()}, ""))

	ctrl.OnMessageReceived(context.Background(), frameText, marshalLeave("txn-4"))

	var resp wire.Response
	require.NoError(t, json.Unmarshal(conn.lastWrite(), &resp))
	assert.Equal(t, "txn-4", resp.Transaction)
	assert.Equal(t, "left", resp.Ok)
	waitFor(t, func() bool { return conn.isClosed() })
	waitFor(t, func() bool {
		info, err := roomCtrl.Status(context.Background())
		return err == nil && len(info.Participants) == 0
	})
}

func TestPingTimeoutClosesClient(t *testing.T) {
	roomCtrl := newTestRoom(t)
	conn := newFakeConn()
	ctrl := Run(conn, roomCtrl, room.Participant{}, 1, 10*time.Millisecond, zap.NewNop())

	alive, err := ctrl.SendPing(context.Background(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, alive)
	waitFor(t, func() bool { return conn.isClosed() })
}

func TestDetachIsIdempotent(t *testing.T) {
	roomCtrl := newTestRoom(t)
	conn := newFakeConn()
	ctrl := Run(conn, roomCtrl, room.Participant{}, 1, time.Hour, zap.NewNop())

	require.NoError(t, ctrl.Leave(context.Background()))
	require.NoError(t, ctrl.Leave(context.Background()))
	require.NoError(t, ctrl.Close(context.Background()))

	assert.True(t, conn.isClosed())
}
