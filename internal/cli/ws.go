package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/corvino/textroom/internal/wire"
)

// wsURL converts the server's http(s) base URL into the ws(s) join URL for
// room, carrying query as the join parameters (username/display/imageUrl).
func wsURL(server, room string, query url.Values) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("parse server URL: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + room + "/join"
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// outboundAnnouncement and outboundBan add the "textroom" discriminator the
// wire.Request types only carry when decoding; see internal/wire/request.go.
type outboundAnnouncement struct {
	Kind string `json:"textroom"`
	wire.AnnouncementRequest
}

type outboundBan struct {
	Kind string `json:"textroom"`
	wire.BanRequest
}

// dialAndSendOne connects to room as a moderator (no username/display),
// sends frame, and waits briefly for a Response, skipping over the
// broadcast join event the server sends this connection about itself. A
// missing reply within the deadline is treated as success, since
// message/announcement/ban frames get no acknowledgement on success (only
// errors get a Response; see internal/client's handleText).
func dialAndSendOne(server, room string, frame any) error {
	target, err := wsURL(server, room, url.Values{})
	if err != nil {
		return err
	}
	conn, _, err := websocket.DefaultDialer.Dial(target, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	body, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// No reply within the deadline: treat as success.
			return nil
		}
		var peek struct {
			Kind string `json:"textroom"`
		}
		if json.Unmarshal(data, &peek) == nil && peek.Kind != "" {
			continue // a broadcast event, not our response
		}
		var resp wire.Response
		if json.Unmarshal(data, &resp) == nil && resp.Error != "" {
			return fmt.Errorf("%s", resp.Error)
		}
		return nil
	}
}
