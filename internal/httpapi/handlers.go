package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/corvino/textroom/internal/apperr"
	"github.com/corvino/textroom/internal/client"
	"github.com/corvino/textroom/internal/room"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleCreate matches "<uid>/create"; see spec §4.7 and original_source's
// CreateParams.
func (rt *Router) handleCreate(w http.ResponseWriter, r *http.Request, uid string, q queryParams) {
	secret, err := q.require("secret")
	if err != nil {
		writeError(w, err)
		return
	}
	cfg := room.Config{
		UID:       uid,
		Secret:    secret,
		Post:      q.get("post"),
		PostTypes: q.list("postTypes"),
	}
	if err := rt.registry.CreateRoom(r.Context(), cfg); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w)
}

// handleDestroy matches "<uid>/destroy".
func (rt *Router) handleDestroy(w http.ResponseWriter, r *http.Request, uid string, q queryParams) {
	secret, err := q.require("secret")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := rt.registry.DestroyRoom(r.Context(), uid, secret); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w)
}

// handleServiceStatus matches bare "/status".
func (rt *Router) handleServiceStatus(w http.ResponseWriter, r *http.Request) {
	infos, err := rt.registry.Status(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

// handleRoomStatus matches "<uid>/status".
func (rt *Router) handleRoomStatus(w http.ResponseWriter, r *http.Request, uid string) {
	ctrl, err := rt.registry.GetRoom(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	info, err := ctrl.Status(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleCount matches "<uid>/count".
func (rt *Router) handleCount(w http.ResponseWriter, r *http.Request, uid string) {
	ctrl, err := rt.registry.GetRoom(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	count, err := ctrl.Count(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Count int `json:"count"`
	}{Count: count})
}

// handleLastAnnouncement matches "<uid>/lastAnnouncement?types=a,b".
func (rt *Router) handleLastAnnouncement(w http.ResponseWriter, r *http.Request, uid string, q queryParams) {
	ctrl, err := rt.registry.GetRoom(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := ctrl.LastAnnouncement(r.Context(), q.list("types"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleParticipants matches "<uid>/participants".
func (rt *Router) handleParticipants(w http.ResponseWriter, r *http.Request, uid string) {
	ctrl, err := rt.registry.GetRoom(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	participants, err := ctrl.Participants(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, participants)
}

// handlePhoto matches "<uid>/photo?username=...", redirecting to the
// registered image URL or 404ing if none is registered.
func (rt *Router) handlePhoto(w http.ResponseWriter, r *http.Request, uid string, q queryParams) {
	username, err := q.require("username")
	if err != nil {
		writeError(w, err)
		return
	}
	ctrl, err := rt.registry.GetRoom(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	url, ok, err := ctrl.Photo(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, apperr.NotFound("photo not found"))
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// handleJoin matches "<uid>/join?username=...&display=...&imageUrl=...",
// upgrading the connection to a WebSocket and spawning a client actor.
func (rt *Router) handleJoin(w http.ResponseWriter, r *http.Request, uid string, q queryParams) {
	roomCtrl, err := rt.registry.GetRoom(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	me := room.Participant{
		Username: optionalString(q.get("username")),
		Display:  optionalString(q.get("display")),
	}
	imageURL := q.get("imageUrl")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		rt.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	id, err := roomCtrl.NextID(r.Context())
	if err != nil {
		_ = conn.Close()
		return
	}

	clientCtrl := client.Run(conn, roomCtrl, me, id, rt.pingInterval, rt.logger)
	_ = roomCtrl.AddClient(r.Context(), room.AttachedClient{
		ID:          id,
		Participant: me,
		Handle:      clientCtrl.Sender(),
	}, imageURL)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
