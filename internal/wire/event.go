package wire

import "encoding/json"

// Event kinds broadcast to every client attached to a room.
const (
	EventAnnouncement = "announcement"
	EventBanned       = "banned"
	EventDestroyed    = "destroyed"
	EventJoin         = "join"
	EventLeave        = "leave"
	EventMessage      = "message"
)

// AnnouncementEvent is broadcast when a moderator posts an announcement.
type AnnouncementEvent struct {
	Kind string `json:"textroom"`
	Date Time   `json:"date"`
	Text string `json:"text"`
	Type string `json:"type"`
}

func NewAnnouncementEvent(date Time, text, msgType string) AnnouncementEvent {
	return AnnouncementEvent{Kind: EventAnnouncement, Date: date, Text: text, Type: msgType}
}

// BannedEvent is sent only to the participant being removed by a ban.
type BannedEvent struct {
	Kind string `json:"textroom"`
}

func NewBannedEvent() BannedEvent {
	return BannedEvent{Kind: EventBanned}
}

// DestroyedEvent is the last event any participant sees from a room.
type DestroyedEvent struct {
	Kind string `json:"textroom"`
}

func NewDestroyedEvent() DestroyedEvent {
	return DestroyedEvent{Kind: EventDestroyed}
}

// JoinEvent is broadcast once a new participant has been inserted into the
// room; Participants is the post-insertion count.
type JoinEvent struct {
	Kind         string  `json:"textroom"`
	Username     *string `json:"username,omitempty"`
	Display      *string `json:"display,omitempty"`
	Participants int     `json:"participants"`
}

func NewJoinEvent(username, display *string, participants int) JoinEvent {
	return JoinEvent{Kind: EventJoin, Username: username, Display: display, Participants: participants}
}

// LeaveEvent is broadcast once a participant has been removed from the
// room (by leave, ban, or ping timeout); Participants is the
// post-removal count.
type LeaveEvent struct {
	Kind         string  `json:"textroom"`
	Username     *string `json:"username,omitempty"`
	Display      *string `json:"display,omitempty"`
	Participants int     `json:"participants"`
}

func NewLeaveEvent(username, display *string, participants int) LeaveEvent {
	return LeaveEvent{Kind: EventLeave, Username: username, Display: display, Participants: participants}
}

// MessageEvent is broadcast for a user-originated chat message.
type MessageEvent struct {
	Kind    string `json:"textroom"`
	From    string `json:"from"`
	Display string `json:"display"`
	Date    Time   `json:"date"`
	Text    string `json:"text"`
	Type    string `json:"type"`
}

func NewMessageEvent(from, display string, date Time, text, msgType string) MessageEvent {
	return MessageEvent{Kind: EventMessage, From: from, Display: display, Date: date, Text: text, Type: msgType}
}

// Encode serializes any event (or response) to its wire JSON form for a
// single Send to a client's outbound sink.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}
