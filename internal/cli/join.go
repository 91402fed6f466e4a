package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/corvino/textroom/internal/wire"
)

func newJoinCmd() *cobra.Command {
	var (
		username string
		display  string
		imageURL string
	)

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join a room as an interactive terminal chat client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoom(); err != nil {
				return err
			}
			return runJoin(flagServer, flagRoom, username, display, imageURL)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "participant username")
	cmd.Flags().StringVar(&display, "display", "", "participant display name")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "participant photo URL")
	return cmd
}

// runJoin dials the room's WebSocket, prints every event it receives, and
// sends each line of stdin as a chat message, grounded in the shape of the
// teacher's internal/daemon/wsconn.go connect loop but single-shot: an
// interactive session has no reason to reconnect after a deliberate close.
func runJoin(server, room, username, display, imageURL string) error {
	q := url.Values{}
	if username != "" {
		q.Set("username", username)
	}
	if display != "" {
		q.Set("display", display)
	}
	if imageURL != "" {
		q.Set("imageUrl", imageURL)
	}

	target, err := wsURL(server, room, q)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(target, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	fmt.Fprintf(os.Stderr, "joined %q as session %s, type to chat, Ctrl-D to leave\n", room, sessionID)

	done := make(chan struct{})
	go readLoop(conn, done)
	writeLoop(conn)
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	<-done
	return nil
}

func readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		fmt.Println(formatFrame(data))
	}
}

func writeLoop(conn *websocket.Conn) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		req := struct {
			Kind string `json:"textroom"`
			wire.MessageRequest
		}{
			Kind: wire.KindMessage,
			MessageRequest: wire.MessageRequest{
				Type: "chat",
				Text: line,
			},
		}
		body, err := json.Marshal(req)
		if err != nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
			return
		}
	}
}

// formatFrame renders an incoming event or response for a human reader.
func formatFrame(data []byte) string {
	var peek struct {
		Kind string `json:"textroom"`
	}
	if json.Unmarshal(data, &peek) != nil {
		return string(data)
	}
	switch peek.Kind {
	case wire.EventMessage:
		var e wire.MessageEvent
		if json.Unmarshal(data, &e) == nil {
			return fmt.Sprintf("[%s] %s: %s", e.Date.Format(time.Kitchen), e.From, e.Text)
		}
	case wire.EventAnnouncement:
		var e wire.AnnouncementEvent
		if json.Unmarshal(data, &e) == nil {
			return fmt.Sprintf("*** announcement (%s): %s", e.Type, e.Text)
		}
	case wire.EventJoin:
		var e wire.JoinEvent
		if json.Unmarshal(data, &e) == nil {
			return fmt.Sprintf("*** someone joined (%d participants)", e.Participants)
		}
	case wire.EventLeave:
		var e wire.LeaveEvent
		if json.Unmarshal(data, &e) == nil {
			return fmt.Sprintf("*** someone left (%d participants)", e.Participants)
		}
	case wire.EventBanned:
		return "*** you have been banned"
	case wire.EventDestroyed:
		return "*** room destroyed"
	}
	return string(data)
}
