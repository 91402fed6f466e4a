package wire

// Webhook textroom discriminator values. Moderation posts (room created,
// room destroyed, ban) always use WebhookModerate; user-originated posts use
// WebhookMessage/WebhookAnnouncement to match the post_types filter.
const (
	WebhookModerate     = "moderate"
	WebhookMessage      = "message"
	WebhookAnnouncement = "announcement"
)

// Moderation message types carried in a WebhookPayload whose Kind is
// WebhookModerate.
const (
	ModerationBan           = "ban"
	ModerationRoomCreated   = "room_created"
	ModerationRoomDestroyed = "room_destroyed"
)

// WebhookPayload is the body posted to a room's configured webhook sink.
// Distinct from the socket Event schemas: it always carries Room and From.
type WebhookPayload struct {
	Kind string `json:"textroom"`
	Room string `json:"room"`
	Type string `json:"type"`
	Text string `json:"text"`
	Date Time   `json:"date"`
	From string `json:"from"`
}

// NewMessagePost builds the webhook payload for a user-originated chat
// message.
func NewMessagePost(room, msgType, text string, date Time, from string) WebhookPayload {
	return WebhookPayload{Kind: WebhookMessage, Room: room, Type: msgType, Text: text, Date: date, From: from}
}

// NewAnnouncementPost builds the webhook payload for a moderator
// announcement.
func NewAnnouncementPost(room, msgType, text string, date Time, from string) WebhookPayload {
	return WebhookPayload{Kind: WebhookAnnouncement, Room: room, Type: msgType, Text: text, Date: date, From: from}
}

// NewBanPost builds the webhook moderation payload for a ban; from may be
// empty if the banning client had no username.
func NewBanPost(room, victim, from string, date Time) WebhookPayload {
	return WebhookPayload{Kind: WebhookModerate, Room: room, Type: ModerationBan, Text: victim, Date: date, From: from}
}

// NewRoomCreatedPost builds the webhook moderation payload emitted right
// after a room actor starts.
func NewRoomCreatedPost(room string, date Time) WebhookPayload {
	return WebhookPayload{Kind: WebhookModerate, Room: room, Type: ModerationRoomCreated, Date: date}
}

// NewRoomDestroyedPost builds the webhook moderation payload emitted as the
// last act of a room actor's Destroy.
func NewRoomDestroyedPost(room string, date Time) WebhookPayload {
	return WebhookPayload{Kind: WebhookModerate, Room: room, Type: ModerationRoomDestroyed, Date: date}
}
