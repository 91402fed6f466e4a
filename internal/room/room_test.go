package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeHandle records every frame sent to it and whether Leave was called.
type fakeHandle struct {
	sent [][]byte
	left bool
}

func (h *fakeHandle) Send(frame []byte) { h.sent = append(h.sent, frame) }
func (h *fakeHandle) Leave()            { h.left = true }

func ptr(s string) *string { return &s }

func newTestController(t *testing.T) (*Controller, *int) {
	t.Helper()
	destroyed := 0
	ctrl := Run(Config{UID: "test-room"}, zap.NewNop(), func() { destroyed++ })
	return ctrl, &destroyed
}

func ctx() context.Context {
	return context.Background()
}

// waitFor polls cond until it's true or the deadline passes; Sender methods
// enqueue via a background goroutine (actorchan.Cast), so landing is not
// synchronous with the call returning.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, time.Millisecond)
}

func TestAddClientBroadcastsPostInsertionCount(t *testing.T) {
	ctrl, _ := newTestController(t)

	h1 := &fakeHandle{}
	err := ctrl.AddClient(ctx(), AttachedClient{ID: 1, Participant: Participant{Username: ptr("alice")}, Handle: h1}, "")
	require.NoError(t, err)
	require.Len(t, h1.sent, 1)
	assert.Contains(t, string(h1.sent[0]), `"participants":1`)

	h2 := &fakeHandle{}
	err = ctrl.AddClient(ctx(), AttachedClient{ID: 2, Participant: Participant{Username: ptr("bob")}, Handle: h2}, "")
	require.NoError(t, err)
	assert.Contains(t, string(h1.sent[len(h1.sent)-1]), `"participants":2`)

	count, err := ctrl.Count(ctx())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRemoveClientBroadcastsPostRemovalCount(t *testing.T) {
	ctrl, _ := newTestController(t)

	h1 := &fakeHandle{}
	h2 := &fakeHandle{}
	require.NoError(t, ctrl.AddClient(ctx(), AttachedClient{ID: 1, Participant: Participant{Username: ptr("alice")}, Handle: h1}, ""))
	require.NoError(t, ctrl.AddClient(ctx(), AttachedClient{ID: 2, Participant: Participant{Username: ptr("bob")}, Handle: h2}, ""))

	ctrl.Sender().RemoveClient(1)
	waitFor(t, func() bool {
		count, err := ctrl.Count(ctx())
		return err == nil && count == 1
	})
	assert.Contains(t, string(h2.sent[len(h2.sent)-1]), `"participants":1`)
}

func TestAnnouncePreconditionRequiresUsername(t *testing.T) {
	ctrl, _ := newTestController(t)
	h := &fakeHandle{}
	require.NoError(t, ctrl.AddClient(ctx(), AttachedClient{ID: 1, Participant: Participant{Username: ptr("alice")}, Handle: h}, ""))

	ctrl.Sender().Announce(Participant{}, "announcement", "no username here")
	ctrl.Sender().Announce(Participant{Username: ptr("mod")}, "announcement", "hello room")

	waitFor(t, func() bool {
		info, err := ctrl.Status(ctx())
		return err == nil && info.Messages == 1
	})
}

func TestSendMessagePreconditionRequiresIdentity(t *testing.T) {
	ctrl, _ := newTestController(t)
	h := &fakeHandle{}
	require.NoError(t, ctrl.AddClient(ctx(), AttachedClient{ID: 1, Participant: Participant{Username: ptr("alice"), Display: ptr("Alice")}, Handle: h}, ""))

	ctrl.Sender().SendMessage(Participant{Username: ptr("noDisplay")}, "chat", "dropped")
	ctrl.Sender().SendMessage(Participant{Username: ptr("alice"), Display: ptr("Alice")}, "chat", "hi")

	waitFor(t, func() bool {
		info, err := ctrl.Status(ctx())
		return err == nil && info.Messages == 1
	})
}

func TestLastAnnouncementTracksTextNotType(t *testing.T) {
	ctrl, _ := newTestController(t)

	ctrl.Sender().Announce(Participant{Username: ptr("mod")}, "announcement", "first")
	ctrl.Sender().Announce(Participant{Username: ptr("mod")}, "announcement", "second")
	ctrl.Sender().Announce(Participant{Username: ptr("mod")}, "alert", "urgent")

	waitFor(t, func() bool {
		info, err := ctrl.Status(ctx())
		return err == nil && info.Messages == 3
	})

	out, err := ctrl.LastAnnouncement(ctx(), []string{"announcement", "alert", "missing"})
	require.NoError(t, err)
	assert.Equal(t, "second", out["announcement"])
	assert.Equal(t, "urgent", out["alert"])
	_, hasMissing := out["missing"]
	assert.False(t, hasMissing)
}

func TestBanSendsBannedAndLeaveOnlyToMatchingUsername(t *testing.T) {
	ctrl, _ := newTestController(t)
	hAlice := &fakeHandle{}
	hBob := &fakeHandle{}
	require.NoError(t, ctrl.AddClient(ctx(), AttachedClient{ID: 1, Participant: Participant{Username: ptr("alice")}, Handle: hAlice}, ""))
	require.NoError(t, ctrl.AddClient(ctx(), AttachedClient{ID: 2, Participant: Participant{Username: ptr("bob")}, Handle: hBob}, ""))

	ctrl.Sender().Ban(ptr("mod"), "alice")

	waitFor(t, func() bool { return hAlice.left })
	assert.False(t, hBob.left)
	require.NotEmpty(t, hAlice.sent)
	assert.Contains(t, string(hAlice.sent[len(hAlice.sent)-1]), `"banned"`)
}

func TestDestroyIsIdempotentAndInvokesOnDestroyOnce(t *testing.T) {
	ctrl, destroyed := newTestController(t)
	h := &fakeHandle{}
	require.NoError(t, ctrl.AddClient(ctx(), AttachedClient{ID: 1, Participant: Participant{Username: ptr("alice")}, Handle: h}, ""))

	ctrl.Sender().Destroy()
	ctrl.Sender().Destroy()

	waitFor(t, func() bool {
		info, err := ctrl.Status(ctx())
		return err == nil && len(info.Participants) == 0
	})

	// Give the second, redundant Destroy a moment to land too (it must be a
	// no-op) before asserting the callback fired exactly once.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, *destroyed)
	require.NotEmpty(t, h.sent)
	assert.Contains(t, string(h.sent[len(h.sent)-1]), `"destroyed"`)
}

func TestMessageCountIsMonotonic(t *testing.T) {
	ctrl, _ := newTestController(t)
	for i := 0; i < 5; i++ {
		ctrl.Sender().SendMessage(Participant{Username: ptr("alice"), Display: ptr("Alice")}, "chat", "hi")
	}
	waitFor(t, func() bool {
		info, err := ctrl.Status(ctx())
		return err == nil && info.Messages == 5
	})
}

func TestPhotoRegisteredOnlyWithUsernameAndImageURL(t *testing.T) {
	ctrl, _ := newTestController(t)
	h := &fakeHandle{}
	require.NoError(t, ctrl.AddClient(ctx(), AttachedClient{ID: 1, Participant: Participant{Username: ptr("alice")}, Handle: h}, "http://example.com/a.png"))

	url, ok, err := ctrl.Photo(ctx(), "alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/a.png", url)

	_, ok, err = ctrl.Photo(ctx(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}
