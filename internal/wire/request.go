package wire

import "encoding/json"

// Request kinds, carried on the "textroom" discriminator field.
const (
	KindMessage      = "message"
	KindAnnouncement = "announcement"
	KindBan          = "ban"
	KindLeave        = "leave"
)

// Request is a decoded inbound frame from a participant. Exactly one of the
// typed fields is populated, selected by Kind.
type Request struct {
	Kind string

	Message      *MessageRequest
	Announcement *AnnouncementRequest
	Ban          *BanRequest
	Leave        *LeaveRequest
}

// Transaction returns the opaque echo token carried by whichever variant is
// populated, or "" if none was sent.
func (r Request) Transaction() string {
	switch r.Kind {
	case KindMessage:
		return r.Message.Transaction
	case KindAnnouncement:
		return r.Announcement.Transaction
	case KindBan:
		return r.Ban.Transaction
	case KindLeave:
		return r.Leave.Transaction
	default:
		return ""
	}
}

type MessageRequest struct {
	Type        string `json:"type"`
	Text        string `json:"text"`
	Transaction string `json:"transaction,omitempty"`
}

type AnnouncementRequest struct {
	Type        string `json:"type"`
	Text        string `json:"text"`
	Secret      string `json:"secret"`
	Transaction string `json:"transaction,omitempty"`
}

type BanRequest struct {
	Username    string `json:"username"`
	Secret      string `json:"secret"`
	Transaction string `json:"transaction,omitempty"`
}

type LeaveRequest struct {
	Transaction string `json:"transaction,omitempty"`
}

// discriminator peeks at the "textroom" tag without committing to a shape.
type discriminator struct {
	Kind        string `json:"textroom"`
	Transaction string `json:"transaction"`
}

// ParseRequest decodes a raw inbound frame into a typed Request. Fields
// absent from the frame decode as empty strings and are not rejected. If
// decoding fails (unknown or missing "textroom" value, a field of the wrong
// JSON type, malformed JSON),
// the returned error is non-nil and recoveredTransaction carries whatever
// transaction a lenient second-pass decode could pull out, matching the
// protocol's "recover just the transaction" decode-failure behavior.
func ParseRequest(raw []byte) (req Request, recoveredTransaction string, err error) {
	var tag discriminator
	if err := json.Unmarshal(raw, &tag); err != nil {
		return Request{}, recoverTransaction(raw), err
	}

	switch tag.Kind {
	case KindMessage:
		var m MessageRequest
		if err := json.Unmarshal(raw, &m); err != nil {
			return Request{}, recoverTransaction(raw), err
		}
		return Request{Kind: KindMessage, Message: &m}, "", nil
	case KindAnnouncement:
		var a AnnouncementRequest
		if err := json.Unmarshal(raw, &a); err != nil {
			return Request{}, recoverTransaction(raw), err
		}
		return Request{Kind: KindAnnouncement, Announcement: &a}, "", nil
	case KindBan:
		var b BanRequest
		if err := json.Unmarshal(raw, &b); err != nil {
			return Request{}, recoverTransaction(raw), err
		}
		return Request{Kind: KindBan, Ban: &b}, "", nil
	case KindLeave:
		var l LeaveRequest
		if err := json.Unmarshal(raw, &l); err != nil {
			return Request{}, recoverTransaction(raw), err
		}
		return Request{Kind: KindLeave, Leave: &l}, "", nil
	default:
		return Request{}, recoverTransaction(raw), &UnknownKindError{Kind: tag.Kind}
	}
}

// recoverTransaction attempts the lenient decode described in spec §4.2: if
// the full shape failed to parse, try to pull out just the transaction.
func recoverTransaction(raw []byte) string {
	var loose discriminator
	if err := json.Unmarshal(raw, &loose); err != nil {
		return ""
	}
	return loose.Transaction
}

// UnknownKindError is returned by ParseRequest when "textroom" names a value
// none of the four request kinds use.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return "unknown textroom request kind: " + e.Kind
}
